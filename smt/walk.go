/*
File   : proofcheck/smt/walk.go
Package: smt
*/
package smt

import "sort"

// FreeConsts returns, in name order, every constant referenced in formula
// that is not bound by an enclosing Forall/Exists in the same formula —
// i.e. the constants a solver must declare before asserting it. A bounded
// brute-force solver (smt/refsolver) uses this to know which variables it
// must enumerate; a real SMT binding would use it to emit declare-const
// commands.
func FreeConsts(formula Formula) []Const {
	seen := make(map[string]Const)
	walkFormula(formula, make(map[string]bool), seen)

	out := make([]Const, 0, len(seen))
	for _, c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func walkFormula(f Formula, bound map[string]bool, seen map[string]Const) {
	switch n := f.(type) {
	case BoolLit:
	case Rel:
		walkTerm(n.Lhs, bound, seen)
		walkTerm(n.Rhs, bound, seen)
	case And:
		for _, a := range n.Args {
			walkFormula(a, bound, seen)
		}
	case Or:
		for _, a := range n.Args {
			walkFormula(a, bound, seen)
		}
	case Not:
		walkFormula(n.Arg, bound, seen)
	case Implies:
		walkFormula(n.Lhs, bound, seen)
		walkFormula(n.Rhs, bound, seen)
	case Forall:
		walkQuantifier(n.Vars, n.Body, bound, seen)
	case Exists:
		walkQuantifier(n.Vars, n.Body, bound, seen)
	}
}

func walkQuantifier(vars []Const, body Formula, bound map[string]bool, seen map[string]Const) {
	inner := make(map[string]bool, len(bound)+len(vars))
	for k := range bound {
		inner[k] = true
	}
	for _, v := range vars {
		inner[v.Name] = true
	}
	walkFormula(body, inner, seen)
}

func walkTerm(t Term, bound map[string]bool, seen map[string]Const) {
	switch n := t.(type) {
	case Const:
		if !bound[n.Name] {
			seen[n.Name] = n
		}
	case Lit:
	case Add:
		for _, a := range n.Args {
			walkTerm(a, bound, seen)
		}
	case Sub:
		walkTerm(n.Left, bound, seen)
		walkTerm(n.Right, bound, seen)
	case Mul:
		for _, a := range n.Args {
			walkTerm(a, bound, seen)
		}
	case Div:
		walkTerm(n.Left, bound, seen)
		walkTerm(n.Right, bound, seen)
	case Pow:
		walkTerm(n.Base, bound, seen)
		walkTerm(n.Exp, bound, seen)
	case Neg:
		walkTerm(n.Arg, bound, seen)
	case IfThenElse:
		walkFormula(n.Cond, bound, seen)
		walkTerm(n.Then, bound, seen)
		walkTerm(n.Else, bound, seen)
	}
}
