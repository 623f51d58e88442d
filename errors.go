package cfgkv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies why a parse failed. Every ErrorCode is itself an error,
// so callers can test with errors.Is(err, cfgkv.UnexpectedToken).
type ErrorCode int

const (
	// FileNoAccess means the input could not be opened or read.
	FileNoAccess ErrorCode = iota + 1
	// OutOfMemory means the input is larger than the WithMaxSize limit.
	OutOfMemory
	// UnexpectedEOF means the input ended inside a value or array.
	UnexpectedEOF
	// UnexpectedToken means a byte, or the end of input, did not fit the
	// grammar at that point.
	UnexpectedToken
	// InvalidKey means a line starts with an identifier byte that is not a
	// letter.
	InvalidKey
	// InvalidArrayElement wraps the error of an array element that failed
	// to parse.
	InvalidArrayElement
	// InvalidIntegerLiteral means a number run is not a valid decimal, hex
	// or octal integer, or does not fit in 64 bits.
	InvalidIntegerLiteral
	// InvalidDecimalLiteral means a number run holding a dot is not a valid
	// finite floating point number.
	InvalidDecimalLiteral
)

var codeNames = map[ErrorCode]string{
	FileNoAccess:          "FileNoAccess",
	OutOfMemory:           "OutOfMemory",
	UnexpectedEOF:         "UnexpectedEOF",
	UnexpectedToken:       "UnexpectedToken",
	InvalidKey:            "InvalidKey",
	InvalidArrayElement:   "InvalidArrayElement",
	InvalidIntegerLiteral: "InvalidIntegerLiteral",
	InvalidDecimalLiteral: "InvalidDecimalLiteral",
}

// Message returns the human readable description of c.
func (c ErrorCode) Message() string {
	switch c {
	case FileNoAccess:
		return "config file inaccessible"
	case OutOfMemory:
		return "out of memory"
	case UnexpectedEOF:
		return "unexpected end of file while parsing"
	case UnexpectedToken:
		return "unexpected token while parsing"
	case InvalidKey:
		return "configuration key must start with a letter"
	case InvalidArrayElement:
		return "array elements must follow this syntax: [ele1, ele2, ...]"
	case InvalidIntegerLiteral:
		return "invalid integer literal"
	case InvalidDecimalLiteral:
		return "invalid floating point literal"
	default:
		return "unknown error"
	}
}

func (c ErrorCode) Error() string { return c.Message() }

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// ParseError describes a failed parse. Line and Column are 1-based and point
// at the offending byte; Offset is its 0-based byte offset.
type ParseError struct {
	Code     ErrorCode
	Filename string
	Line     int
	Column   int
	Offset   int
	// Key is set when the failure happened inside an entry's value.
	Key string
	// Err is the underlying cause, if any (for example an *fs.PathError).
	Err error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Filename != "" {
		b.WriteString(e.Filename)
		b.WriteByte(':')
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", e.Line, e.Column)
	} else if e.Filename != "" {
		b.WriteByte(' ')
	}
	b.WriteString(e.Code.Message())
	if e.Key != "" {
		fmt.Fprintf(&b, " (key %q)", e.Key)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Code, e.Err}
	}
	return []error{e.Code}
}

// CodeOf returns the ErrorCode carried by err, or 0 when err is nil or does
// not carry one.
func CodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return 0
}

// Message returns the human readable message for code.
func Message(code ErrorCode) string { return code.Message() }
