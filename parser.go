package cdom

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/arenadoc/cdom/internal/bom"
	"github.com/arenadoc/cdom/internal/kernel"
)

// parser is the recursive-descent context record: input bytes, cursor
// position, 1-based line/column, the document being built, the active
// options, and the current nesting depth.
type parser struct {
	input  []byte
	pos    int
	line   int
	col    int
	doc    *Document
	cfg    ParseConfig
	depth  int
	escBuf []byte // scratch space for materializing escaped string content before interning
}

// ParseBytes parses input as a JSON document under cfg, returning a
// read-only Document on success. On failure it returns nil and an *Error,
// which is also recorded in the calling goroutine's thread-local last-
// error slot (see LastError). No partial document is ever returned.
func ParseBytes(input []byte, cfg ParseConfig) (*Document, error) {
	input = bom.Strip(input)
	if len(input) == 0 {
		return nil, fail(Syntax, 0, 1, 1, "empty input")
	}
	if !bom.Validate(input) {
		return nil, fail(Utf8, 0, 1, 1, "input is not valid UTF-8")
	}

	doc := NewDocument()
	// A generous rough upper bound on node count; Reserve only changes how
	// soon the arena grows next, never correctness.
	doc.nodes.Reserve(len(input) / 2)

	p := &parser{input: input, line: 1, col: 1, doc: doc, cfg: cfg}
	p.skipWhitespace()
	root, perr := p.parseValue()
	if perr != nil {
		return nil, perr
	}
	p.skipWhitespace()
	if p.pos != len(p.input) {
		return nil, fail(Syntax, p.pos, p.line, p.col, "trailing content after root value")
	}

	doc.root = root
	return doc, nil
}

// ParseString is ParseBytes over a copy of s's UTF-8 bytes. As with
// ParseBytes, ParseOptions.InSitu has no effect.
func ParseString(s string, cfg ParseConfig) (*Document, error) {
	return ParseBytes([]byte(s), cfg)
}

func (p *parser) cur() (byte, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) advance() {
	c := p.input[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) advanceN(n int) {
	for i := 0; i < n; i++ {
		p.advance()
	}
}

func (p *parser) hasLiteralAt(pos int, lit string) bool {
	if pos+len(lit) > len(p.input) {
		return false
	}
	return string(p.input[pos:pos+len(lit)]) == lit
}

func (p *parser) skipWhitespace() {
	for {
		b, ok := p.cur()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			p.advance()
		default:
			return
		}
	}
}

func (p *parser) parseValue() (*Node, *Error) {
	b, ok := p.cur()
	if !ok {
		return nil, fail(Syntax, p.pos, p.line, p.col, "unexpected end of input")
	}

	switch {
	case b == 'n':
		return p.parseLiteral("null", tagNull)
	case b == 't':
		return p.parseLiteral("true", tagTrue)
	case b == 'f':
		return p.parseLiteral("false", tagFalse)
	case b == '"':
		return p.parseString()
	case b == '[':
		return p.parseArray()
	case b == '{':
		return p.parseObject()
	case b == 'I' && p.cfg.Options.Has(AllowInfNan):
		return p.parseSignedInfLiteral(false)
	case b == 'N' && p.cfg.Options.Has(AllowInfNan):
		return p.parseNaNLiteral()
	case b == '-':
		if p.cfg.Options.Has(AllowInfNan) && p.hasLiteralAt(p.pos+1, "Infinity") {
			p.advance()
			return p.parseSignedInfLiteral(true)
		}
		return p.parseNumber()
	case b >= '0' && b <= '9':
		return p.parseNumber()
	default:
		return nil, fail(Syntax, p.pos, p.line, p.col, "unexpected character %q", b)
	}
}

func (p *parser) parseLiteral(lit string, t tag) (*Node, *Error) {
	if !p.hasLiteralAt(p.pos, lit) {
		return nil, fail(Syntax, p.pos, p.line, p.col, "invalid literal, expected %q", lit)
	}
	p.advanceN(len(lit))
	n := p.doc.allocNode()
	n.W0 = makeWord0(t, 0)
	return n, nil
}

// parseSignedInfLiteral consumes "Infinity" (cursor already past any
// leading '-') and stores +/-Inf as a Float.
func (p *parser) parseSignedInfLiteral(neg bool) (*Node, *Error) {
	if !p.hasLiteralAt(p.pos, "Infinity") {
		return nil, fail(Syntax, p.pos, p.line, p.col, "invalid literal, expected \"Infinity\"")
	}
	p.advanceN(len("Infinity"))
	n := p.doc.allocNode()
	if neg {
		setFloat(n, math.Inf(-1))
	} else {
		setFloat(n, math.Inf(1))
	}
	return n, nil
}

func (p *parser) parseNaNLiteral() (*Node, *Error) {
	if !p.hasLiteralAt(p.pos, "NaN") {
		return nil, fail(Syntax, p.pos, p.line, p.col, "invalid literal, expected \"NaN\"")
	}
	p.advanceN(len("NaN"))
	n := p.doc.allocNode()
	setFloat(n, math.NaN())
	return n, nil
}

// parseNumber implements -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?,
// storing the result as Int when there is no fractional/exponent part and
// the value fits the 60-bit payload, and as Float otherwise.
func (p *parser) parseNumber() (*Node, *Error) {
	start, startLine, startCol := p.pos, p.line, p.col

	if b, ok := p.cur(); ok && b == '-' {
		p.advance()
	}

	b, ok := p.cur()
	if !ok || b < '0' || b > '9' {
		return nil, fail(Number, p.pos, p.line, p.col, "expected digit")
	}
	if b == '0' {
		p.advance()
		if b2, ok2 := p.cur(); ok2 && b2 >= '0' && b2 <= '9' {
			return nil, fail(Number, p.pos, p.line, p.col, "leading zero followed by digit")
		}
	} else {
		for {
			b, ok = p.cur()
			if !ok || b < '0' || b > '9' {
				break
			}
			p.advance()
		}
	}

	isFloat := false

	if b, ok := p.cur(); ok && b == '.' {
		isFloat = true
		p.advance()
		b2, ok2 := p.cur()
		if !ok2 || b2 < '0' || b2 > '9' {
			return nil, fail(Number, p.pos, p.line, p.col, "expected digit after decimal point")
		}
		for {
			b2, ok2 = p.cur()
			if !ok2 || b2 < '0' || b2 > '9' {
				break
			}
			p.advance()
		}
	}

	if b, ok := p.cur(); ok && (b == 'e' || b == 'E') {
		isFloat = true
		p.advance()
		if b2, ok2 := p.cur(); ok2 && (b2 == '+' || b2 == '-') {
			p.advance()
		}
		b2, ok2 := p.cur()
		if !ok2 || b2 < '0' || b2 > '9' {
			return nil, fail(Number, p.pos, p.line, p.col, "expected digit in exponent")
		}
		for {
			b2, ok2 = p.cur()
			if !ok2 || b2 < '0' || b2 > '9' {
				break
			}
			p.advance()
		}
	}

	text := p.input[start:p.pos]
	n := p.doc.allocNode()

	if !isFloat {
		if v, consumed, ok := kernel.Active().ParseInt(text); ok && consumed == len(text) && in60Range(v) {
			setInt(n, v)
			return n, nil
		}
		// Int64 overflow, 19+ digit integers, and values outside the
		// 60-bit range all fall back to float, per spec.
	}

	f, perr := strconv.ParseFloat(string(text), 64)
	if perr != nil {
		return nil, fail(Number, start, startLine, startCol, "invalid number literal: %v", perr)
	}
	setFloat(n, f)
	return n, nil
}

// parseString consumes a JSON string literal (the cursor must be at the
// opening '"') and returns a ShortString or LongString Node, using the
// spec's two-pass measure-then-materialize design.
func (p *parser) parseString() (*Node, *Error) {
	p.advance() // opening quote
	contentStart := p.pos

	length, hasEscape, perr := p.measureString()
	if perr != nil {
		return nil, perr
	}
	contentEnd := p.pos
	p.advance() // closing quote

	n := p.doc.allocNode()
	src := p.input[contentStart:contentEnd]

	if !hasEscape && length <= 7 {
		setShortString(n, src)
		return n, nil
	}

	content := src
	if hasEscape {
		if cap(p.escBuf) < length {
			p.escBuf = make([]byte, length)
		}
		content = p.escBuf[:length]
		materializeEscapes(src, content)
	}

	region, _ := p.doc.internString(content)
	setLongString(n, region, length)
	return n, nil
}

// measureString walks from the byte after the opening quote, using the
// scan_string kernel to skip unescaped runs, and returns the decoded byte
// length of the string plus whether any escape was seen. On return the
// cursor sits exactly on the closing '"'.
func (p *parser) measureString() (length int, hasEscape bool, err *Error) {
	k := kernel.Active()

	for {
		rest := p.input[p.pos:]
		if len(rest) == 0 {
			return 0, false, fail(String, p.pos, p.line, p.col, "unterminated string")
		}

		i := k.ScanString(rest)
		length += i
		p.pos += i
		p.col += i

		if i == len(rest) {
			return 0, false, fail(String, p.pos, p.line, p.col, "unterminated string")
		}

		c := p.input[p.pos]
		switch {
		case c == '"':
			return length, hasEscape, nil
		case c < 0x20:
			return 0, false, fail(String, p.pos, p.line, p.col, "control character in string")
		default: // c == '\\'
			hasEscape = true
			n, e := p.measureEscape()
			if e != nil {
				return 0, false, e
			}
			length += n
		}
	}
}

// measureEscape consumes one escape sequence (the cursor must be on the
// '\') and returns how many decoded UTF-8 bytes it contributes.
func (p *parser) measureEscape() (int, *Error) {
	p.advance() // backslash
	c, ok := p.cur()
	if !ok {
		return 0, fail(String, p.pos, p.line, p.col, "unterminated escape")
	}

	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		p.advance()
		return 1, nil
	case 'u':
		p.advance()
		hi, e := p.readHex4()
		if e != nil {
			return 0, e
		}
		switch {
		case hi >= 0xD800 && hi <= 0xDBFF:
			if !p.hasLiteralAt(p.pos, "\\u") {
				return 0, fail(String, p.pos, p.line, p.col, "unpaired high surrogate")
			}
			p.advanceN(2)
			lo, e2 := p.readHex4()
			if e2 != nil {
				return 0, e2
			}
			if lo < 0xDC00 || lo > 0xDFFF {
				return 0, fail(String, p.pos, p.line, p.col, "invalid low surrogate")
			}
			return 4, nil
		case hi >= 0xDC00 && hi <= 0xDFFF:
			return 0, fail(String, p.pos, p.line, p.col, "unpaired low surrogate")
		default:
			return utf8.RuneLen(rune(hi)), nil
		}
	default:
		return 0, fail(String, p.pos, p.line, p.col, "invalid escape \\%c", c)
	}
}

func (p *parser) readHex4() (uint16, *Error) {
	if p.pos+4 > len(p.input) {
		return 0, fail(String, p.pos, p.line, p.col, "incomplete \\u escape")
	}
	var v uint16
	for i := 0; i < 4; i++ {
		c := p.input[p.pos]
		d, ok := hexDigit(c)
		if !ok {
			return 0, fail(String, p.pos, p.line, p.col, "invalid hex digit in \\u escape")
		}
		v = v<<4 | uint16(d)
		p.advance()
	}
	return v, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// materializeEscapes re-walks src (the raw bytes between the quotes,
// already validated by measureString) and writes its decoded form into
// dst, which must be exactly len(dst) == the length measureString
// returned. Pass 1 already validated every escape, so this pass never
// fails.
func materializeEscapes(src, dst []byte) {
	k := kernel.Active()
	si, di := 0, 0

	for si < len(src) {
		i := k.ScanString(src[si:])
		copy(dst[di:di+i], src[si:si+i])
		si += i
		di += i
		if si >= len(src) {
			return
		}

		si++ // backslash
		switch src[si] {
		case '"':
			dst[di] = '"'
			di++
			si++
		case '\\':
			dst[di] = '\\'
			di++
			si++
		case '/':
			dst[di] = '/'
			di++
			si++
		case 'b':
			dst[di] = '\b'
			di++
			si++
		case 'f':
			dst[di] = '\f'
			di++
			si++
		case 'n':
			dst[di] = '\n'
			di++
			si++
		case 'r':
			dst[di] = '\r'
			di++
			si++
		case 't':
			dst[di] = '\t'
			di++
			si++
		case 'u':
			si++
			hi := decodeHex4(src[si : si+4])
			si += 4
			var cp rune
			if hi >= 0xD800 && hi <= 0xDBFF {
				si += 2 // "\u"
				lo := decodeHex4(src[si : si+4])
				si += 4
				cp = 0x10000 + (rune(hi)-0xD800)<<10 + (rune(lo) - 0xDC00)
			} else {
				cp = rune(hi)
			}
			di += utf8.EncodeRune(dst[di:], cp)
		}
	}
}

func decodeHex4(b []byte) uint16 {
	var v uint16
	for _, c := range b[:4] {
		d, _ := hexDigit(c)
		v = v<<4 | uint16(d)
	}
	return v
}

// parseArray consumes a JSON array (cursor on '[').
func (p *parser) parseArray() (*Node, *Error) {
	startPos, startLine, startCol := p.pos, p.line, p.col
	p.advance()
	p.depth++
	if p.cfg.MaxDepth > 0 && p.depth > p.cfg.MaxDepth {
		return nil, fail(Depth, startPos, startLine, startCol, "max nesting depth exceeded")
	}

	n := p.doc.allocNode()
	setContainer(tagArray, n)

	p.skipWhitespace()
	if b, ok := p.cur(); ok && b == ']' {
		p.advance()
		p.depth--
		return n, nil
	}

	var head, tail *Node
	for {
		p.skipWhitespace()
		v, perr := p.parseValue()
		if perr != nil {
			return nil, perr
		}
		if head == nil {
			head = v
		} else {
			setNextSibling(tail, v)
		}
		tail = v

		p.skipWhitespace()
		b, ok := p.cur()
		if !ok {
			return nil, fail(Syntax, p.pos, p.line, p.col, "unexpected end of input in array")
		}
		switch b {
		case ',':
			p.advance()
			p.skipWhitespace()
			if p.cfg.Options.Has(AllowTrailing) {
				if b2, ok2 := p.cur(); ok2 && b2 == ']' {
					p.advance()
					goto done
				}
			}
		case ']':
			p.advance()
			goto done
		default:
			return nil, fail(Syntax, p.pos, p.line, p.col, "expected ',' or ']'")
		}
	}
done:
	setFirstChild(n, head)
	p.depth--
	return n, nil
}

// parseObject consumes a JSON object (cursor on '{').
func (p *parser) parseObject() (*Node, *Error) {
	startPos, startLine, startCol := p.pos, p.line, p.col
	p.advance()
	p.depth++
	if p.cfg.MaxDepth > 0 && p.depth > p.cfg.MaxDepth {
		return nil, fail(Depth, startPos, startLine, startCol, "max nesting depth exceeded")
	}

	n := p.doc.allocNode()
	setContainer(tagObject, n)

	p.skipWhitespace()
	if b, ok := p.cur(); ok && b == '}' {
		p.advance()
		p.depth--
		return n, nil
	}

	var head, tail *objEntry
	for {
		p.skipWhitespace()
		b, ok := p.cur()
		if !ok || b != '"' {
			return nil, fail(Syntax, p.pos, p.line, p.col, "expected string key")
		}
		keyNode, perr := p.parseString()
		if perr != nil {
			return nil, perr
		}

		p.skipWhitespace()
		b, ok = p.cur()
		if !ok || b != ':' {
			return nil, fail(Syntax, p.pos, p.line, p.col, "expected ':'")
		}
		p.advance()

		p.skipWhitespace()
		v, perr := p.parseValue()
		if perr != nil {
			return nil, perr
		}

		e := p.doc.allocEntry()
		e.key = keyNode
		e.value = v
		if head == nil {
			head = e
		} else {
			tail.next = e
		}
		tail = e

		p.skipWhitespace()
		b, ok = p.cur()
		if !ok {
			return nil, fail(Syntax, p.pos, p.line, p.col, "unexpected end of input in object")
		}
		switch b {
		case ',':
			p.advance()
			p.skipWhitespace()
			if p.cfg.Options.Has(AllowTrailing) {
				if b2, ok2 := p.cur(); ok2 && b2 == '}' {
					p.advance()
					goto done
				}
			}
		case '}':
			p.advance()
			goto done
		default:
			return nil, fail(Syntax, p.pos, p.line, p.col, "expected ',' or '}'")
		}
	}
done:
	setFirstEntry(n, head)
	p.depth--
	return n, nil
}
