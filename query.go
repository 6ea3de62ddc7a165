package cdom

import (
	"bytes"
	"iter"

	"github.com/arenadoc/cdom/pkg/xiter"
)

// Value is a handle to one node within a Document. It is a small value
// type (a document pointer plus a node pointer); copying a Value is cheap
// and safe, and a zero Value is a valid "no value" (Valid() returns
// false).
//
// Every accessor here returns a zero/false/empty result on a type
// mismatch instead of failing or panicking, matching the spec's stated
// policy: query functions never fail, eliminating null-check pyramids at
// the cost of silent type mismatches that tests must cover instead.
type Value struct {
	doc  *Document
	node *Node
}

// Valid reports whether v actually refers to a node (as opposed to a
// missing lookup result or an unparsed Document's root).
func (v Value) Valid() bool { return v.node != nil }

// Type reports v's public kind. A zero Value reports TypeNull.
func (v Value) Type() Type {
	if v.node == nil {
		return TypeNull
	}
	return v.node.tag().public()
}

// IsNull reports whether v is JSON null (or a zero Value).
func (v Value) IsNull() bool {
	return v.node == nil || v.node.tag() == tagNull
}

// Bool returns v's boolean value, or false if v is not a bool.
func (v Value) Bool() bool {
	return v.node != nil && v.node.tag() == tagTrue
}

// Int returns v's integer value, or 0 if v is not an Int. It does not
// coerce a Float value; use Float for that.
func (v Value) Int() int64 {
	if v.node == nil || v.node.tag() != tagInt {
		return 0
	}
	return intOf(v.node)
}

// Uint returns v's integer value as a uint64, clamping a negative Int to
// 0 rather than wrapping. It is 0 for any non-Int value; use Float for
// Float values.
func (v Value) Uint() uint64 {
	n := v.Int()
	if n < 0 {
		return 0
	}
	return uint64(n)
}

// Float returns v's numeric value as a float64, or 0 if v is neither Int
// nor Float. An Int value is widened; this is exact for magnitudes up to
// 2^53, and larger 60-bit values are rounded to the nearest float64.
func (v Value) Float() float64 {
	if v.node == nil {
		return 0
	}
	switch v.node.tag() {
	case tagFloat:
		return floatOf(v.node)
	case tagInt:
		return float64(intOf(v.node))
	default:
		return 0
	}
}

// Str returns v's string content, or "" if v is not a string.
func (v Value) Str() string {
	if v.node == nil {
		return ""
	}
	return nodeString(v.node)
}

func nodeString(n *Node) string {
	switch n.tag() {
	case tagShortString:
		return string(shortStringBytes(n.W0))
	case tagLongString:
		return string(longStringBytes(n))
	default:
		return ""
	}
}

// Len reports the number of bytes in a string, the number of elements in
// an array, or the number of members in an object. It is 0 for any other
// type.
func (v Value) Len() int {
	if v.node == nil {
		return 0
	}
	switch v.node.tag() {
	case tagShortString:
		return shortStringLen(v.node.W0)
	case tagLongString:
		return int(v.node.payload())
	case tagArray:
		n := 0
		for c := firstChild(v.node); c != nil; c = nextSibling(c) {
			n++
		}
		return n
	case tagObject:
		n := 0
		for e := firstEntry(v.node); e != nil; e = e.next {
			n++
		}
		return n
	default:
		return 0
	}
}

// Index returns the i-th element of an array value, by linear walk of
// the sibling list (arrays are not random-access internally). Returns an
// invalid Value if v is not an array or i is out of range.
func (v Value) Index(i int) Value {
	if v.node == nil || v.node.tag() != tagArray || i < 0 {
		return Value{}
	}
	j := 0
	for c := firstChild(v.node); c != nil; c = nextSibling(c) {
		if j == i {
			return Value{doc: v.doc, node: c}
		}
		j++
	}
	return Value{}
}

// Get looks up key in an object value by linear scan -- objects are
// expected to be small, so no hash index is maintained, matching the
// spec exactly. Returns an invalid Value if v is not an object or key is
// not present.
func (v Value) Get(key string) Value {
	if v.node == nil || v.node.tag() != tagObject {
		return Value{}
	}
	for e := firstEntry(v.node); e != nil; e = e.next {
		if nodeStringEqual(e.key, key) {
			return Value{doc: v.doc, node: e.value}
		}
	}
	return Value{}
}

// GetBytes looks up key in an object value exactly like Get, but takes the
// key as a byte slice rather than a string. It exists for callers holding
// an unprocessed key slice (e.g. a sub-slice of a larger buffer): it
// compares key bytes directly against each member's key, so no string
// conversion or copy of key is required.
func (v Value) GetBytes(key []byte) Value {
	if v.node == nil || v.node.tag() != tagObject {
		return Value{}
	}
	for e := firstEntry(v.node); e != nil; e = e.next {
		if nodeStringEqualBytes(e.key, key) {
			return Value{doc: v.doc, node: e.value}
		}
	}
	return Value{}
}

// nodeStringEqual reports whether n's string content equals s. The
// []byte-to-string comparison below is one of the Go compiler's
// recognized zero-allocation comparison forms, so a LongString's arena
// bytes are compared in place; a ShortString's bytes are first unpacked
// from W0 into a fresh slice by shortStringBytes.
func nodeStringEqual(n *Node, s string) bool {
	switch n.tag() {
	case tagShortString:
		return string(shortStringBytes(n.W0)) == s
	case tagLongString:
		return string(longStringBytes(n)) == s
	default:
		return false
	}
}

// nodeStringEqualBytes reports whether n's string content equals b.
func nodeStringEqualBytes(n *Node, b []byte) bool {
	switch n.tag() {
	case tagShortString:
		return bytes.Equal(shortStringBytes(n.W0), b)
	case tagLongString:
		return bytes.Equal(longStringBytes(n), b)
	default:
		return false
	}
}

// Children iterates an array's elements as (index, Value) pairs, or an
// object's members as (key, Value) pairs, in input order. It yields
// nothing for any other type. The key type is int for arrays and string
// for objects; callers that only handle one container kind can type-
// switch or simply ignore the key.
func (v Value) Children() iter.Seq2[any, Value] {
	return func(yield func(any, Value) bool) {
		if v.node == nil {
			return
		}
		switch v.node.tag() {
		case tagArray:
			i := 0
			for c := firstChild(v.node); c != nil; c = nextSibling(c) {
				if !yield(i, Value{doc: v.doc, node: c}) {
					return
				}
				i++
			}
		case tagObject:
			for e := firstEntry(v.node); e != nil; e = e.next {
				if !yield(nodeString(e.key), Value{doc: v.doc, node: e.value}) {
					return
				}
			}
		}
	}
}

// Keys iterates an array's indices or an object's member names, in input
// order, without materializing the corresponding values.
func (v Value) Keys() iter.Seq[any] {
	return xiter.Keys(v.Children())
}

// Values iterates an array's elements or an object's member values, in
// input order, discarding the index/key half of Children.
func (v Value) Values() iter.Seq[Value] {
	return xiter.Values(v.Children())
}

// Equal reports whether v and other are structurally equal: the same
// type (ShortString/LongString unified), the same scalar value, arrays
// that pairwise-equal element by element, and objects of the same size
// where every key on one side has an equal-valued match on the other
// (member order is irrelevant).
func (v Value) Equal(other Value) bool {
	at, bt := v.Type(), other.Type()
	if at != bt {
		return false
	}
	switch at {
	case TypeNull:
		return true
	case TypeBool:
		return v.Bool() == other.Bool()
	case TypeInt:
		return v.Int() == other.Int()
	case TypeFloat:
		return v.Float() == other.Float()
	case TypeString:
		return v.Str() == other.Str()
	case TypeArray:
		if v.Len() != other.Len() {
			return false
		}
		bc := firstChild(other.node)
		for ac := firstChild(v.node); ac != nil; ac = nextSibling(ac) {
			av := Value{doc: v.doc, node: ac}
			bv := Value{doc: other.doc, node: bc}
			if !av.Equal(bv) {
				return false
			}
			bc = nextSibling(bc)
		}
		return true
	case TypeObject:
		if v.Len() != other.Len() {
			return false
		}
		for e := firstEntry(v.node); e != nil; e = e.next {
			key := nodeString(e.key)
			av := Value{doc: v.doc, node: e.value}
			bv := other.Get(key)
			if !bv.Valid() || !av.Equal(bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone returns a new, independent Document holding a copy of v, defined
// as stringify-then-reparse: a deliberate simplification that trades
// allocation for zero ownership-graph copying code. Use DeepClone for a
// direct arena-to-arena structural copy when the extra allocation and
// text round-trip matter.
func (v Value) Clone() (*Document, error) {
	text, err := Stringify(v, Compact)
	if err != nil {
		return nil, err
	}
	return ParseString(text, ParseConfig{})
}

// DeepClone copies v's subtree directly into a fresh Document, walking
// the node graph and relocating child/sibling/entry references, without
// a stringify/reparse round trip. This is the optimization the design
// notes call out as preferable when clone performance matters.
func (v Value) DeepClone() *Document {
	dst := NewDocument()
	if v.node == nil {
		return dst
	}
	dst.root = deepCopyNode(dst, v.node)
	return dst
}

func deepCopyNode(dst *Document, src *Node) *Node {
	out := dst.allocNode()
	switch src.tag() {
	case tagNull, tagFalse, tagTrue:
		out.W0 = src.W0
	case tagInt:
		out.W0 = src.W0
	case tagFloat:
		out.W0 = src.W0
		out.W2 = src.W2
	case tagShortString:
		out.W0 = src.W0
	case tagLongString:
		b := longStringBytes(src)
		region, _ := dst.internString(b)
		setLongString(out, region, len(b))
	case tagArray:
		setContainer(tagArray, out)
		var head, tail *Node
		for c := firstChild(src); c != nil; c = nextSibling(c) {
			cp := deepCopyNode(dst, c)
			if head == nil {
				head = cp
			} else {
				setNextSibling(tail, cp)
			}
			tail = cp
		}
		setFirstChild(out, head)
	case tagObject:
		setContainer(tagObject, out)
		var head, tail *objEntry
		for e := firstEntry(src); e != nil; e = e.next {
			ne := dst.allocEntry()
			ne.key = deepCopyNode(dst, e.key)
			ne.value = deepCopyNode(dst, e.value)
			if head == nil {
				head = ne
			} else {
				tail.next = ne
			}
			tail = ne
		}
		setFirstEntry(out, head)
	}
	return out
}
