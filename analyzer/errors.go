package analyzer

import (
	"fmt"

	"github.com/owendewing/Harmony/syntax"
)

// ErrorKind classifies an analysis error.
type ErrorKind int

const (
	// DeclarationError covers duplicate and missing names and fields.
	DeclarationError ErrorKind = iota
	// TypeError covers every failed type check.
	TypeError
	// ScopeError is a statement used outside the construct it needs.
	ScopeError
	// CallError is a call to a non-function or with the wrong arity.
	CallError
)

func (k ErrorKind) String() string {
	switch k {
	case DeclarationError:
		return "DeclarationError"
	case TypeError:
		return "TypeError"
	case ScopeError:
		return "ScopeError"
	case CallError:
		return "CallError"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a semantic error. Analysis stops at the first one.
type Error struct {
	Kind    ErrorKind
	Pos     syntax.Position
	Message string
}

func errorf(kind ErrorKind, pos syntax.Position, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Message
}
