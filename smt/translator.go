/*
File   : proofcheck/smt/translator.go
Package: smt
*/
package smt

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/proofdsl/proofcheck/ast"
)

// half is the exponent sqrt lowers to (§4.3: "square root lowers to
// x^(1/2)").
var half = big.NewRat(1, 2)

// Translator lowers ast terms and formulas to this package's solver-level
// representation. A Translator is created fresh for each verification call
// (§5: no shared mutable state in the core) and is not safe for concurrent
// use.
type Translator struct {
	varTypes map[string]ast.VarType
	root     *Scope
	scope    *Scope
}

// NewTranslator creates a Translator whose free-variable sorts come from
// varTypes (absent entries default to Real, per §3).
func NewTranslator(varTypes map[string]ast.VarType) *Translator {
	root := NewScope(nil)
	return &Translator{varTypes: varTypes, root: root, scope: root}
}

func (tr *Translator) sortOf(name string) Sort {
	if tr.varTypes[name] == ast.Integer {
		return IntSort
	}
	return RealSort
}

// resolveVar returns name's solver constant: the innermost bound constant
// if a quantifier shadows it, otherwise the (possibly newly declared) free
// constant in the root scope.
func (tr *Translator) resolveVar(name string) Const {
	if c, ok := tr.scope.Lookup(name); ok {
		return c
	}
	return tr.root.Declare(name, tr.sortOf(name))
}

// FreeVars returns every free constant declared in the root scope so far,
// ordered by name for deterministic output (§4.4 "Determinism").
func (tr *Translator) FreeVars() []Const {
	out := make([]Const, 0, len(tr.root.consts))
	for _, c := range tr.root.consts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Formula lowers an ast.Formula to this package's Formula representation.
func (tr *Translator) Formula(f ast.Formula) (Formula, error) {
	switch n := f.(type) {
	case ast.Rel:
		lhs, err := tr.Term(n.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := tr.Term(n.Rhs)
		if err != nil {
			return nil, err
		}
		return Rel{Op: RelOp(n.Op), Lhs: lhs, Rhs: rhs}, nil

	case ast.And:
		if len(n.Args) == 0 {
			return BoolLit{Value: true}, nil
		}
		args := make([]Formula, len(n.Args))
		for i, a := range n.Args {
			t, err := tr.Formula(a)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return And{Args: args}, nil

	case ast.Or:
		if len(n.Args) == 0 {
			return BoolLit{Value: false}, nil
		}
		args := make([]Formula, len(n.Args))
		for i, a := range n.Args {
			t, err := tr.Formula(a)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return Or{Args: args}, nil

	case ast.Not:
		arg, err := tr.Formula(n.Arg)
		if err != nil {
			return nil, err
		}
		return Not{Arg: arg}, nil

	case ast.Implies:
		lhs, err := tr.Formula(n.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := tr.Formula(n.Rhs)
		if err != nil {
			return nil, err
		}
		return Implies{Lhs: lhs, Rhs: rhs}, nil

	case ast.Iff:
		// Lowered to (A -> B) and (B -> A), never to a one-way implication
		// (§9 REDESIGN FLAGS, `iff` aliasing).
		lhs, err := tr.Formula(n.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := tr.Formula(n.Rhs)
		if err != nil {
			return nil, err
		}
		return And{Args: []Formula{
			Implies{Lhs: lhs, Rhs: rhs},
			Implies{Lhs: rhs, Rhs: lhs},
		}}, nil

	case ast.Forall:
		return tr.quantifier(n.Vars, n.Body, false)

	case ast.Exists:
		return tr.quantifier(n.Vars, n.Body, true)

	default:
		return nil, &TranslationError{Node: fmt.Sprintf("%T", f), Why: "unknown formula kind"}
	}
}

func (tr *Translator) quantifier(names []string, body ast.Formula, existential bool) (Formula, error) {
	outer := tr.scope
	tr.scope = outer.Push()
	defer func() { tr.scope = outer }()

	bound := make([]Const, len(names))
	for i, name := range names {
		bound[i] = tr.scope.Declare(name, tr.sortOf(name))
	}

	lowered, err := tr.Formula(body)
	if err != nil {
		return nil, err
	}
	if existential {
		return Exists{Vars: bound, Body: lowered}, nil
	}
	return Forall{Vars: bound, Body: lowered}, nil
}

// Term lowers an ast.Term to this package's Term representation.
func (tr *Translator) Term(t ast.Term) (Term, error) {
	switch n := t.(type) {
	case ast.Number:
		v, ok := new(big.Rat).SetString(n.Value)
		if !ok {
			return nil, &TranslationError{Node: "Number", Why: fmt.Sprintf("invalid numeric literal %q", n.Value)}
		}
		return Lit{Value: v}, nil

	case ast.Var:
		return tr.resolveVar(n.Name), nil

	case ast.BinOp:
		left, err := tr.Term(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := tr.Term(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case "+":
			return Add{Args: []Term{left, right}}, nil
		case "-":
			return Sub{Left: left, Right: right}, nil
		case "*":
			return Mul{Args: []Term{left, right}}, nil
		case "/":
			return Div{Left: left, Right: right}, nil
		default:
			return nil, &TranslationError{Node: "BinOp", Why: fmt.Sprintf("unknown operator %q", n.Op)}
		}

	case ast.Neg:
		arg, err := tr.Term(n.Arg)
		if err != nil {
			return nil, err
		}
		return Neg{Arg: arg}, nil

	case ast.Pow:
		base, err := tr.Term(n.Base)
		if err != nil {
			return nil, err
		}
		exp, err := tr.Term(n.Exp)
		if err != nil {
			return nil, err
		}
		return Pow{Base: base, Exp: exp}, nil

	case ast.Abs:
		arg, err := tr.Term(n.Arg)
		if err != nil {
			return nil, err
		}
		return IfThenElse{
			Cond: Rel{Op: Ge, Lhs: arg, Rhs: Lit{Value: big.NewRat(0, 1)}},
			Then: arg,
			Else: Neg{Arg: arg},
		}, nil

	case ast.Sqrt:
		arg, err := tr.Term(n.Arg)
		if err != nil {
			return nil, err
		}
		return Pow{Base: arg, Exp: Lit{Value: half}}, nil

	case ast.Min:
		return tr.foldMinMax(n.Args, Le)

	case ast.Max:
		return tr.foldMinMax(n.Args, Ge)

	default:
		return nil, &TranslationError{Node: fmt.Sprintf("%T", t), Why: "unknown term kind"}
	}
}

// foldMinMax lowers min/max by folding left (§4.3): min(a,b) = if a<=b then
// a else b, then recurse; keep is the operator that selects the left
// operand (Le for min, Ge for max).
func (tr *Translator) foldMinMax(args []ast.Term, keep RelOp) (Term, error) {
	if len(args) < 2 {
		return nil, &TranslationError{Node: "Min/Max", Why: "requires at least 2 arguments"}
	}
	acc, err := tr.Term(args[0])
	if err != nil {
		return nil, err
	}
	for _, next := range args[1:] {
		rhs, err := tr.Term(next)
		if err != nil {
			return nil, err
		}
		acc = IfThenElse{
			Cond: Rel{Op: keep, Lhs: acc, Rhs: rhs},
			Then: acc,
			Else: rhs,
		}
	}
	return acc, nil
}
