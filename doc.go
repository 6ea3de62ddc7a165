// Package cdom parses JSON into a compact, arena-allocated document tree and
// serializes it back out.
//
// A Document owns three arenas: a node arena of fixed 24-byte value nodes,
// an arena of object key/value entry records, and a byte arena for string
// payloads too long to inline. All are freed as a single unit when the
// Document is discarded; individual nodes are never freed on their own.
//
// Parsing is single-threaded per Document: ParseBytes/ParseString build a
// tree with exclusive write access to their own arenas and return a
// read-only handle. Concurrent readers of an already-parsed Document are
// safe. The package-wide SIMD kernel dispatch table and CPU feature probe
// are initialized once, lazily, the first time any kernel is used, and are
// safe to race on by construction (see internal/kernel).
package cdom
