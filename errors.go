package cdom

import (
	"fmt"

	"github.com/arenadoc/cdom/internal/tlserror"
)

// Code classifies why an operation failed.
type Code uint8

const (
	Ok Code = iota
	Memory
	Syntax
	Depth
	Number
	String
	Utf8
	Io
	Type
)

func (c Code) String() string {
	switch c {
	case Ok:
		return "Ok"
	case Memory:
		return "Memory"
	case Syntax:
		return "Syntax"
	case Depth:
		return "Depth"
	case Number:
		return "Number"
	case String:
		return "String"
	case Utf8:
		return "Utf8"
	case Io:
		return "Io"
	case Type:
		return "Type"
	default:
		return fmt.Sprintf("Code(%d)", uint8(c))
	}
}

// Error is the surface of the last failure from a parse (or other fallible
// operation), carrying the byte position and 1-based line/column at which
// the failure was detected.
type Error struct {
	Code Code
	Pos  int
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s at %d:%d (byte %d): %s", e.Code, e.Line, e.Col, e.Pos, e.Msg)
}

// Is reports whether target is a *Error with the same Code, so callers can
// write errors.Is(err, &cdom.Error{Code: cdom.Syntax}) style comparisons
// without needing a dedicated sentinel per code.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// Sentinel errors for errors.Is comparisons against a failure's Code,
// ignoring position/message: errors.Is(err, cdom.ErrSyntax).
var (
	ErrMemory = &Error{Code: Memory}
	ErrSyntax = &Error{Code: Syntax}
	ErrDepth  = &Error{Code: Depth}
	ErrNumber = &Error{Code: Number}
	ErrString = &Error{Code: String}
	ErrUtf8   = &Error{Code: Utf8}
	ErrIo     = &Error{Code: Io}
	ErrType   = &Error{Code: Type}
)

// lastErr is the thread-local "last parse error" slot required by the
// spec's concurrency model: one record per goroutine, replaced by that
// goroutine's next failure. A successful call leaves it unchanged.
var lastErr = tlserror.NewSlot[Error]()

// LastError returns the calling goroutine's most recently recorded parse
// failure, if any.
func LastError() (*Error, bool) {
	return lastErr.Get()
}

func fail(code Code, pos, line, col int, format string, args ...any) *Error {
	e := &Error{
		Code: code,
		Pos:  pos,
		Line: line,
		Col:  col,
		Msg:  fmt.Sprintf(format, args...),
	}
	lastErr.Set(e)
	return e
}
