package arena

import "github.com/arenadoc/cdom/internal/debug"

// initialStringBytes is the floor the spec requires for the string region's
// first block (>= 16 KiB).
const initialStringBytes = 16 * 1024

// StringArena is a bump allocator for LongString byte payloads.
//
// Like Arena, it grows by appending fresh blocks rather than relocating
// existing ones, so that a []byte handed out by Alloc remains valid and at
// a fixed address for the life of the arena.
type StringArena struct {
	blocks [][]byte
	used   int
	count  int // total bytes allocated across all blocks, excluding NUL padding
}

// Count returns the number of string bytes allocated so far (excluding the
// trailing NUL byte each allocation carries).
func (a *StringArena) Count() int { return a.count }

// Alloc returns a writable region of length n+1: the caller fills in n
// bytes of string content and is responsible for writing the trailing NUL
// terminator into the final byte, exactly as the spec requires.
func (a *StringArena) Alloc(n int) []byte {
	need := n + 1

	if len(a.blocks) == 0 || a.used+need > len(a.blocks[len(a.blocks)-1]) {
		a.grow(need)
	}

	block := a.blocks[len(a.blocks)-1]
	region := block[a.used : a.used+need]
	a.used += need
	a.count += n

	debug.Log(nil, "alloc", "string %d bytes (count=%d)", n, a.count)

	return region
}

// Reserve ensures at least n further string bytes can be allocated without
// more than one additional block growth.
func (a *StringArena) Reserve(n int) {
	remaining := 0
	if len(a.blocks) != 0 {
		remaining = len(a.blocks[len(a.blocks)-1]) - a.used
	}
	if remaining >= n {
		return
	}
	a.grow(n - remaining)
}

func (a *StringArena) grow(extra int) {
	next := initialStringBytes
	if len(a.blocks) != 0 {
		next = len(a.blocks[len(a.blocks)-1]) * 2
	}
	for next < extra {
		next *= 2
	}

	block := make([]byte, next)
	a.blocks = append(a.blocks, block)
	a.used = 0

	debug.Log(nil, "grow", "string block %d:%d", len(a.blocks), next)
}
