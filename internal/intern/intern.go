// Package intern deduplicates repeated LongString payloads within a single
// parse, using the fast generic hasher from flier-goutil's own dependency
// graph (the same github.com/dolthub/maphash the teacher's swiss map uses).
//
// This sits strictly at allocation time. It is not a query-path index:
// Document objects are still looked up by linear scan, as the spec
// requires ("objects are small; no hash map"). What it buys is memory --
// JSON documents that are arrays of structurally similar objects tend to
// repeat the same key strings (and often the same short enum-like values)
// thousands of times; interning lets every repeat point at one arena
// allocation instead of paying for a fresh copy each time.
package intern

import "github.com/dolthub/maphash"

// Table is a per-Document interning table. It is not safe for concurrent
// use; each Document owns exactly one for its whole life, filled by the
// parse that built it (and by DeepClone when copying into it).
type Table struct {
	hasher maphash.Hasher[string]
	index  map[uint64][]entry
}

type entry struct {
	s    string
	addr uintptr
	n    int
}

// New returns a ready-to-use, empty interning table.
func New() *Table {
	return &Table{hasher: maphash.NewHasher[string]()}
}

// Lookup returns the arena address and byte length of a previously
// interned copy of s, if this table has seen s before.
func (t *Table) Lookup(s string) (addr uintptr, n int, ok bool) {
	if t.index == nil {
		return 0, 0, false
	}

	h := t.hasher.Hash(s)
	for _, e := range t.index[h] {
		if e.s == s {
			return e.addr, e.n, true
		}
	}
	return 0, 0, false
}

// Store records that s now lives at addr (n bytes, no trailing NUL
// counted) in the owning document's string arena, so a future Lookup of an
// identical string can be satisfied without another allocation.
func (t *Table) Store(s string, addr uintptr, n int) {
	if t.index == nil {
		t.index = make(map[uint64][]entry)
	}

	h := t.hasher.Hash(s)
	t.index[h] = append(t.index[h], entry{s: s, addr: addr, n: n})
}
