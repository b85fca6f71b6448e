package parser

import (
	"errors"
	"fmt"
)

var (
	ErrNoActionFound    = errors.New("no Action line found in model output")
	ErrMalformed        = errors.New("malformed action expression")
	ErrPositional       = errors.New("positional arguments are not supported, use keyword arguments")
	ErrVariadic         = errors.New("variadic arguments are not supported")
	ErrNonConstant      = errors.New("argument values must be constant strings, numbers, booleans or null")
	ErrDuplicateKeyword = errors.New("keyword argument repeated")
)

// ParseError carries the rejection kind and the byte offset in the action
// line where it was detected. errors.Is matches it against its Kind.
type ParseError struct {
	Kind error
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%v at offset %d", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%v at offset %d: %s", e.Kind, e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newError(kind error, pos int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
