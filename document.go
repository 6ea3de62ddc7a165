package cdom

import (
	"unsafe"

	"github.com/google/uuid"

	"github.com/arenadoc/cdom/internal/arena"
	"github.com/arenadoc/cdom/internal/debug"
	"github.com/arenadoc/cdom/internal/intern"
	"github.com/arenadoc/cdom/internal/kernel"
)

const (
	initialNodeBytes = 64 * 1024
	initialEntrBytes = 16 * 1024
)

// Stats is a read-only snapshot of a Document's allocation and dispatch
// counters, exposed by Document.Stats.
type Stats struct {
	NodesAllocated   int
	EntriesAllocated int
	StringBytes      int
	FeaturesUsed     string
}

// Document owns everything a parse allocates: the node arena, the object
// entry arena, the string-payload arena, and a reference to the root
// value. Destroying a Document (letting it become unreachable) releases
// all three arenas as a unit; there is no per-node teardown.
//
// A Document is read-only once returned from a successful parse. Reads
// from multiple goroutines are safe as long as nothing allocates into its
// arenas concurrently -- the parser is the only writer, and it releases
// that capability on return.
type Document struct {
	id      uuid.UUID
	nodes   arena.Arena[Node]
	entries arena.Arena[objEntry]
	strings arena.StringArena
	interns *intern.Table
	root    *Node
}

// NewDocument returns an empty Document with its arenas pre-sized to the
// spec's contractual floors (>= 64 KiB for nodes, >= 16 KiB for strings).
// It is exported mainly for tests and direct tree construction; ordinary
// callers get a Document from ParseBytes/ParseString.
func NewDocument() *Document {
	d := &Document{
		id:      uuid.New(),
		interns: intern.New(),
	}
	d.nodes.Reserve(initialNodeBytes / NodeSize)
	d.entries.Reserve(initialEntrBytes / int(entrySize))
	d.strings.Reserve(initialEntrBytes)
	debug.Log([]any{"doc=%s", d.id.String()}, "new", "document created")
	return d
}

// entrySize approximates objEntry's size in bytes for Reserve's sizing
// heuristic; it needn't be exact since Reserve only affects how soon the
// arena grows, not correctness.
const entrySize = 24

// ID returns the Document's unique identifier, useful for correlating
// concurrent parses in debug logs.
func (d *Document) ID() uuid.UUID { return d.id }

// Root returns the document's root value. Root().Valid() is false for a
// freshly constructed, never-parsed-into Document.
func (d *Document) Root() Value {
	return Value{doc: d, node: d.root}
}

// Stats reports the document's current allocation counters and which CPU
// features the active kernel dispatch selected.
func (d *Document) Stats() Stats {
	return Stats{
		NodesAllocated:   d.nodes.Count(),
		EntriesAllocated: d.entries.Count(),
		StringBytes:      d.strings.Count(),
		FeaturesUsed:     activeFeatureSummary(),
	}
}

func (d *Document) allocNode() *Node {
	return d.nodes.Alloc()
}

func (d *Document) allocEntry() *objEntry {
	return d.entries.Alloc()
}

// internString returns a LongString-ready region for s, reusing a
// previous allocation with identical content if one exists in this
// document. Interning only happens at allocation time; lookups on the
// query path never consult it (objects remain a linear scan, per spec).
func (d *Document) internString(s []byte) (region []byte, reused bool) {
	if addr, n, ok := d.interns.Lookup(string(s)); ok {
		p := (*byte)(unsafe.Pointer(addr))
		return unsafe.Slice(p, n), true
	}
	region = d.strings.Alloc(len(s))
	copy(region, s)
	region[len(s)] = 0
	d.interns.Store(string(s), uintptr(unsafe.Pointer(&region[0])), len(s))
	return region, false
}

// activeFeatureSummary names the kernel set chosen for this process, for
// Document.Stats().
func activeFeatureSummary() string {
	return kernel.Active().Name
}
