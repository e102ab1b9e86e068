/*
File   : proofcheck/smt/refsolver/refsolver.go
Package: refsolver
*/

// Package refsolver is a bounded, deterministic reference implementation of
// smt.Solver. It is not a general decision procedure (§1, §6): it decides
// satisfiability by brute-force enumeration of every free and
// quantifier-bound constant over a small fixed domain, so it can miss
// counterexamples or spuriously report unsat outside that domain. It exists
// for the test suite and for the CLI/HTTP collaborators when no external
// solver binary is configured.
package refsolver

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/proofdsl/proofcheck/smt"
)

// Bounds of the brute-force search space. Integers are checked at every
// point in [intLo, intHi]; reals are checked at every multiple of realStep
// in [realLo, realHi]. Both are small enough that an exhaustive search over
// a handful of free variables finishes quickly, and generous enough to
// catch the off-by-one and sign mistakes the test suite is built to catch.
const (
	intLo, intHi         = -5, 5
	realLo, realHi       = -5.0, 5.0
	realStep             = 0.5
	equalityTolerance    = 1e-9
	maxQuantifierSamples = 21 // len(domain(RealSort))
)

// Solver is a bounded brute-force implementation of smt.Solver.
type Solver struct{}

// New creates a Solver. It carries no configuration and no state between
// calls.
func New() *Solver { return &Solver{} }

// CheckSat decides formula by enumerating every assignment of its free
// constants (smt.FreeConsts) over the bounded domain for each constant's
// sort, short-circuiting on the first satisfying assignment.
func (s *Solver) CheckSat(ctx context.Context, formula smt.Formula) (*smt.Result, error) {
	consts := smt.FreeConsts(formula)
	assignment := make(map[string]float64, len(consts))

	model, found, err := search(ctx, formula, consts, 0, assignment)
	if err != nil {
		return nil, err
	}
	if found {
		return &smt.Result{Status: smt.Sat, Model: model}, nil
	}
	return &smt.Result{Status: smt.Unsat}, nil
}

func search(ctx context.Context, formula smt.Formula, consts []smt.Const, idx int, assignment map[string]float64) (smt.Model, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if idx == len(consts) {
		ok, err := evalFormula(formula, assignment)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		return renderModel(consts, assignment), true, nil
	}

	c := consts[idx]
	for _, v := range domain(c.Sort) {
		assignment[c.Name] = v
		model, found, err := search(ctx, formula, consts, idx+1, assignment)
		if err != nil {
			return nil, false, err
		}
		if found {
			return model, true, nil
		}
	}
	delete(assignment, c.Name)
	return nil, false, nil
}

func renderModel(consts []smt.Const, assignment map[string]float64) smt.Model {
	model := make(smt.Model, len(consts))
	for _, c := range consts {
		model[c.Name] = formatValue(c.Sort, assignment[c.Name])
	}
	return model
}

func formatValue(sort smt.Sort, v float64) string {
	if sort == smt.IntSort {
		return strconv.FormatInt(int64(math.Round(v)), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func domain(sort smt.Sort) []float64 {
	if sort == smt.IntSort {
		out := make([]float64, 0, intHi-intLo+1)
		for i := intLo; i <= intHi; i++ {
			out = append(out, float64(i))
		}
		return out
	}
	out := make([]float64, 0, maxQuantifierSamples)
	for v := realLo; v <= realHi+1e-9; v += realStep {
		out = append(out, v)
	}
	return out
}

func evalFormula(f smt.Formula, env map[string]float64) (bool, error) {
	switch n := f.(type) {
	case smt.BoolLit:
		return n.Value, nil

	case smt.Rel:
		lhs, err := evalTerm(n.Lhs, env)
		if err != nil {
			return false, err
		}
		rhs, err := evalTerm(n.Rhs, env)
		if err != nil {
			return false, err
		}
		return compare(n.Op, lhs, rhs), nil

	case smt.And:
		for _, a := range n.Args {
			ok, err := evalFormula(a, env)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case smt.Or:
		for _, a := range n.Args {
			ok, err := evalFormula(a, env)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case smt.Not:
		ok, err := evalFormula(n.Arg, env)
		if err != nil {
			return false, err
		}
		return !ok, nil

	case smt.Implies:
		lhs, err := evalFormula(n.Lhs, env)
		if err != nil {
			return false, err
		}
		if !lhs {
			return true, nil
		}
		return evalFormula(n.Rhs, env)

	case smt.Forall:
		return evalQuantifier(n.Vars, n.Body, env, true)

	case smt.Exists:
		return evalQuantifier(n.Vars, n.Body, env, false)

	default:
		return false, fmt.Errorf("refsolver: unsupported formula node %T", f)
	}
}

// evalQuantifier enumerates the same bounded domain used for free
// variables. It is sound only within that domain: a universal claim true
// on every sampled point but false at some unsampled one is reported as
// true, and an existential witness outside the domain is never found. This
// is the chief limitation that keeps this package a reference solver rather
// than a general decision procedure.
func evalQuantifier(vars []smt.Const, body smt.Formula, env map[string]float64, universal bool) (bool, error) {
	return enumerate(vars, 0, env, func(env map[string]float64) (bool, error) {
		return evalFormula(body, env)
	}, universal)
}

// enumerate binds vars[idx:] one at a time and recurses, restoring each
// binding to whatever env held before this call (or removing it if absent)
// once the loop over that variable's domain finishes. A quantifier-bound
// name may coincide with a free constant's name elsewhere in the same
// formula (e.g. `forall x. ...` nested under an outer free `x`); restoring
// rather than unconditionally deleting keeps that outer binding intact for
// sibling and parent evaluation once this quantifier's search returns.
func enumerate(vars []smt.Const, idx int, env map[string]float64, check func(map[string]float64) (bool, error), universal bool) (bool, error) {
	if idx == len(vars) {
		return check(env)
	}
	v := vars[idx]
	prior, hadPrior := env[v.Name]
	restore := func() {
		if hadPrior {
			env[v.Name] = prior
		} else {
			delete(env, v.Name)
		}
	}

	for _, val := range domain(v.Sort) {
		env[v.Name] = val
		ok, err := enumerate(vars, idx+1, env, check, universal)
		if err != nil {
			restore()
			return false, err
		}
		if universal && !ok {
			restore()
			return false, nil
		}
		if !universal && ok {
			restore()
			return true, nil
		}
	}
	restore()
	return universal, nil
}

func compare(op smt.RelOp, lhs, rhs float64) bool {
	switch op {
	case smt.Lt:
		return lhs < rhs-equalityTolerance
	case smt.Le:
		return lhs <= rhs+equalityTolerance
	case smt.Eq:
		return math.Abs(lhs-rhs) <= equalityTolerance
	case smt.Ne:
		return math.Abs(lhs-rhs) > equalityTolerance
	case smt.Gt:
		return lhs > rhs+equalityTolerance
	case smt.Ge:
		return lhs >= rhs-equalityTolerance
	default:
		return false
	}
}

func evalTerm(t smt.Term, env map[string]float64) (float64, error) {
	switch n := t.(type) {
	case smt.Const:
		v, ok := env[n.Name]
		if !ok {
			return 0, fmt.Errorf("refsolver: unassigned constant %q", n.Name)
		}
		return v, nil

	case smt.Lit:
		f, _ := n.Value.Float64()
		return f, nil

	case smt.Add:
		sum := 0.0
		for _, a := range n.Args {
			v, err := evalTerm(a, env)
			if err != nil {
				return 0, err
			}
			sum += v
		}
		return sum, nil

	case smt.Sub:
		l, err := evalTerm(n.Left, env)
		if err != nil {
			return 0, err
		}
		r, err := evalTerm(n.Right, env)
		if err != nil {
			return 0, err
		}
		return l - r, nil

	case smt.Mul:
		prod := 1.0
		for _, a := range n.Args {
			v, err := evalTerm(a, env)
			if err != nil {
				return 0, err
			}
			prod *= v
		}
		return prod, nil

	case smt.Div:
		l, err := evalTerm(n.Left, env)
		if err != nil {
			return 0, err
		}
		r, err := evalTerm(n.Right, env)
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return 0, fmt.Errorf("refsolver: division by zero")
		}
		return l / r, nil

	case smt.Pow:
		base, err := evalTerm(n.Base, env)
		if err != nil {
			return 0, err
		}
		exp, err := evalTerm(n.Exp, env)
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil

	case smt.Neg:
		v, err := evalTerm(n.Arg, env)
		if err != nil {
			return 0, err
		}
		return -v, nil

	case smt.IfThenElse:
		cond, err := evalFormula(n.Cond, env)
		if err != nil {
			return 0, err
		}
		if cond {
			return evalTerm(n.Then, env)
		}
		return evalTerm(n.Else, env)

	default:
		return 0, fmt.Errorf("refsolver: unsupported term node %T", t)
	}
}
