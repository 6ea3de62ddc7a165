// Package arena implements the bump allocators a Document owns: a generic
// fixed-size-element arena (used for both 24-byte value nodes and object
// entries) and a string arena for variable-length LongString payloads.
//
// Both grow by doubling, in the style of flier-goutil's pkg/arena.Arena:
// each growth allocates a brand new block and appends it to a slice of
// blocks, so that once an element has been handed out, its address never
// changes for the life of the arena -- growth never relocates existing
// data. This is what lets a Document hand out raw pointers into its own
// arenas that stay valid until the whole document is discarded, and it is
// what the spec's "arena never relocates nodes during a single parse"
// invariant requires.
package arena

import (
	"unsafe"

	"github.com/arenadoc/cdom/internal/debug"
)

func sizeOf[T any](v T) uintptr { return unsafe.Sizeof(v) }

// Arena is a bump allocator for fixed-size values of type T.
//
// A zero Arena is empty and ready to use, matching flier-goutil's
// "zero Arena is ready to use" convention; use New for one that grows
// according to an explicit initial-bytes floor instead of a hard-coded
// default.
type Arena[T any] struct {
	blocks       [][]T
	used         int
	count        int
	initialElems int
}

// New returns an Arena[T] whose first block is sized to comfortably clear
// initialBytes (the spec's per-region floor: >= 64 KiB for nodes, >= 16
// KiB for strings).
func New[T any](initialBytes int) *Arena[T] {
	var zero T
	size := int(sizeOf(zero))
	if size == 0 {
		size = 1
	}

	elems := initialBytes / size
	if elems < 1 {
		elems = 1
	}
	// Round up to a power of two, matching the doubling growth policy.
	n := 1
	for n < elems {
		n *= 2
	}

	return &Arena[T]{initialElems: n}
}

// Count returns the number of elements allocated so far.
func (a *Arena[T]) Count() int { return a.count }

// Alloc returns a freshly zeroed T, allocated from the arena. The returned
// pointer remains valid for the life of the arena.
func (a *Arena[T]) Alloc() *T {
	if len(a.blocks) == 0 || a.used == len(a.blocks[len(a.blocks)-1]) {
		a.grow(0)
	}

	block := a.blocks[len(a.blocks)-1]
	v := &block[a.used]
	a.used++
	a.count++

	debug.Log(nil, "alloc", "%T %p (count=%d)", v, v, a.count)

	return v
}

// Reserve ensures that at least n further elements can be allocated
// without triggering more than one more block growth -- used by the
// parser when an input's byte length gives a usable upper bound on node
// count.
func (a *Arena[T]) Reserve(n int) {
	remaining := 0
	if len(a.blocks) != 0 {
		remaining = len(a.blocks[len(a.blocks)-1]) - a.used
	}
	if remaining >= n {
		return
	}
	a.grow(n - remaining)
}

// grow appends a new block sized to at least extra additional elements
// beyond whatever the doubling policy would already provide.
func (a *Arena[T]) grow(extra int) {
	next := a.initialElems
	if next == 0 {
		next = 64
	}
	if len(a.blocks) != 0 {
		next = len(a.blocks[len(a.blocks)-1]) * 2
	}
	for next < extra {
		next *= 2
	}

	block := make([]T, next)
	a.blocks = append(a.blocks, block)
	a.used = 0

	debug.Log(nil, "grow", "%T block %d:%d", block, len(a.blocks), next)
}
