/*
File   : proofcheck/cmd/proofcheck/astjson.go
Package: main
*/
package main

import "github.com/proofdsl/proofcheck/ast"

// unitToJSON renders a Unit as a plain JSON-able value. ast.Formula and
// ast.Term are closed interfaces with no exported fields of their own, so
// encoding/json can't tell their concrete variants apart on its own; this
// walks the tree and tags every node with its "kind" so the structure
// survives the round trip to JSON.
func unitToJSON(u *ast.Unit) map[string]any {
	theorems := make(map[string]any, len(u.Theorems))
	for name, th := range u.Theorems {
		theorems[name] = map[string]any{
			"assumptions": formulasToJSON(th.Assumptions),
			"conclusion":  formulaToJSON(th.Conclusion),
		}
	}

	return map[string]any{
		"vars":        u.Vars,
		"var_types":   u.VarTypes,
		"assumptions": formulasToJSON(u.Assumptions),
		"steps":       stepsToJSON(u.Steps),
		"claim":       formulaToJSON(u.Claim),
		"theorems":    theorems,
	}
}

func stepsToJSON(steps []ast.Step) []any {
	out := make([]any, len(steps))
	for i, s := range steps {
		if s.IsCases() {
			out[i] = map[string]any{"kind": "cases", "cases": casesToJSON(s.Cases)}
			continue
		}
		out[i] = map[string]any{"kind": "have", "formula": formulaToJSON(s.Formula)}
	}
	return out
}

func casesToJSON(cases []ast.Case) []any {
	out := make([]any, len(cases))
	for i, c := range cases {
		out[i] = map[string]any{
			"condition": formulaToJSON(c.Condition),
			"steps":     stepsToJSON(c.Steps),
		}
	}
	return out
}

func formulasToJSON(formulas []ast.Formula) []any {
	out := make([]any, len(formulas))
	for i, f := range formulas {
		out[i] = formulaToJSON(f)
	}
	return out
}

func formulaToJSON(f ast.Formula) map[string]any {
	switch n := f.(type) {
	case ast.Rel:
		return map[string]any{"kind": "rel", "op": string(n.Op), "lhs": termToJSON(n.Lhs), "rhs": termToJSON(n.Rhs)}
	case ast.And:
		return map[string]any{"kind": "and", "args": formulasToJSON(n.Args)}
	case ast.Or:
		return map[string]any{"kind": "or", "args": formulasToJSON(n.Args)}
	case ast.Not:
		return map[string]any{"kind": "not", "arg": formulaToJSON(n.Arg)}
	case ast.Implies:
		return map[string]any{"kind": "implies", "lhs": formulaToJSON(n.Lhs), "rhs": formulaToJSON(n.Rhs)}
	case ast.Iff:
		return map[string]any{"kind": "iff", "lhs": formulaToJSON(n.Lhs), "rhs": formulaToJSON(n.Rhs)}
	case ast.Forall:
		return map[string]any{"kind": "forall", "vars": n.Vars, "body": formulaToJSON(n.Body)}
	case ast.Exists:
		return map[string]any{"kind": "exists", "vars": n.Vars, "body": formulaToJSON(n.Body)}
	default:
		return map[string]any{"kind": "unknown"}
	}
}

func termToJSON(t ast.Term) map[string]any {
	switch n := t.(type) {
	case ast.Number:
		return map[string]any{"kind": "number", "value": n.Value}
	case ast.Var:
		return map[string]any{"kind": "var", "name": n.Name}
	case ast.BinOp:
		return map[string]any{"kind": "binop", "op": n.Op, "left": termToJSON(n.Left), "right": termToJSON(n.Right)}
	case ast.Neg:
		return map[string]any{"kind": "neg", "arg": termToJSON(n.Arg)}
	case ast.Pow:
		return map[string]any{"kind": "pow", "base": termToJSON(n.Base), "exp": termToJSON(n.Exp)}
	case ast.Abs:
		return map[string]any{"kind": "abs", "arg": termToJSON(n.Arg)}
	case ast.Sqrt:
		return map[string]any{"kind": "sqrt", "arg": termToJSON(n.Arg)}
	case ast.Min:
		return map[string]any{"kind": "min", "args": termsToJSON(n.Args)}
	case ast.Max:
		return map[string]any{"kind": "max", "args": termsToJSON(n.Args)}
	default:
		return map[string]any{"kind": "unknown"}
	}
}

func termsToJSON(terms []ast.Term) []any {
	out := make([]any, len(terms))
	for i, t := range terms {
		out[i] = termToJSON(t)
	}
	return out
}
