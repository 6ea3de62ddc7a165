// Package bom handles the two pieces of UTF-8 input hygiene that sit ahead
// of the recursive-descent parser: stripping an optional leading
// byte-order mark, and validating that the remaining bytes are well-formed
// UTF-8 (backing the spec's Utf8 error code, which spec.md lists but
// leaves unelaborated).
//
// Grounded on golang.org/x/text, pulled into this dependency graph by the
// TomTonic-multimap example; Validate uses it directly rather than
// unicode/utf8. Strip needs no decoder and is a plain prefix check.
package bom

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var marker = []byte{0xEF, 0xBB, 0xBF}

// Strip removes a leading UTF-8 byte-order mark from b, if present, and
// returns the remainder. RFC 8259 Appendix B says JSON text must not begin
// with a BOM, but accepting and discarding one is common practice for
// encoders that emit it regardless; the core parser never needs to see it.
func Strip(b []byte) []byte {
	if bytes.HasPrefix(b, marker) {
		return b[len(marker):]
	}
	return b
}

// Validate reports whether b is well-formed UTF-8, using
// golang.org/x/text/encoding/unicode's UTF-8 decoder. That decoder replaces
// each ill-formed sequence with U+FFFD instead of failing, so b is valid
// exactly when decoding leaves it byte-for-byte unchanged.
func Validate(b []byte) bool {
	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), b)
	return err == nil && bytes.Equal(out, b)
}
