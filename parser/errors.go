/*
File   : proofcheck/parser/errors.go
Package: parser
*/
package parser

import (
	"errors"
	"fmt"
)

// SyntaxError is a single recoverable parse error: an unexpected token, a
// missing `prove`, an unknown theorem name, and so on. The parser collects
// these instead of stopping at the first one (see Parser.recoverToNextStatement).
type SyntaxError struct {
	Message      string
	Line, Column int

	// Wrapped, when set, is a sentinel (e.g. ErrUnknownTheorem) that
	// errors.Is/errors.As can see past this SyntaxError's own message.
	Wrapped error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func (e *SyntaxError) Unwrap() error { return e.Wrapped }

// ErrNoProve is returned (wrapped in a ParseErrors) when a unit never has a
// `prove` statement at its top level.
var ErrNoProve = errors.New("no 'prove' statement found")

// ErrUnknownTheorem is wrapped into a SyntaxError when `apply` names a
// theorem that was never declared or imported.
var ErrUnknownTheorem = errors.New("unknown theorem")

// ParseErrors aggregates every SyntaxError recorded during one parse. When
// the parse recorded no SyntaxError but the unit had no claim, it holds
// ErrNoProve alone; ErrNoProve is not added alongside other errors. A Unit
// is ill-formed iff this error set is non-empty.
type ParseErrors struct {
	Errors []error
}

func (e *ParseErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("found %d error(s):", len(e.Errors))
	for _, err := range e.Errors {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Unwrap exposes the individual errors to errors.Is/errors.As.
func (e *ParseErrors) Unwrap() []error { return e.Errors }
