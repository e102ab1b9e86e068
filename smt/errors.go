/*
File   : proofcheck/smt/errors.go
Package: smt
*/
package smt

import "fmt"

// TranslationError reports an AST node the translator could not lower: an
// unreachable state from a clean parse, but the parser's output is not
// itself verified, so the translator still guards against it (§4.3, §7).
type TranslationError struct {
	Node string
	Why  string
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("cannot translate %s: %s", e.Node, e.Why)
}
