/*
File   : proofcheck/smt/scope.go
Package: smt
*/
package smt

// Scope is a lexical scope chain mapping a free-variable name to the solver
// constant it was first declared as. The shape follows the teacher's
// scope-chain pattern (child scopes shadow parents, lookup walks up the
// chain): the bottom frame holds the proof unit's free variables, and each
// quantifier pushes a frame that shadows and is discarded once its body has
// been translated (§4.3, §9 "Shared environments during lowering").
type Scope struct {
	consts map[string]Const
	parent *Scope
}

// NewScope creates a scope with the given parent. Pass nil for the
// outermost (free-variable) scope of one translation.
func NewScope(parent *Scope) *Scope {
	return &Scope{consts: make(map[string]Const), parent: parent}
}

// Push returns a new child scope for a quantifier body.
func (s *Scope) Push() *Scope {
	return NewScope(s)
}

// Lookup searches this scope and its ancestors for name, innermost first,
// so a quantifier-bound variable shadows a free variable of the same name.
func (s *Scope) Lookup(name string) (Const, bool) {
	if c, ok := s.consts[name]; ok {
		return c, true
	}
	if s.parent != nil {
		return s.parent.Lookup(name)
	}
	return Const{}, false
}

// Declare binds name to a fresh constant of sort in this scope only, or
// returns the existing binding if name was already declared here. It never
// looks at ancestor scopes: a quantifier frame must always introduce its
// own constant even if an outer frame already bound the same name.
func (s *Scope) Declare(name string, sort Sort) Const {
	if c, ok := s.consts[name]; ok {
		return c
	}
	c := Const{Name: name, Sort: sort}
	s.consts[name] = c
	return c
}
