/*
File   : proofcheck/parser/parser_test.go
Package: parser
*/
package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdsl/proofcheck/ast"
)

func TestParse_SimpleClaim(t *testing.T) {
	unit, err := Parse(`
assume x > 0
prove x >= 0
`, "")
	require.NoError(t, err)
	require.Len(t, unit.Assumptions, 1)
	assert.Equal(t, ast.Rel{Op: ast.Gt, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "0"}}, unit.Assumptions[0])
	assert.Equal(t, ast.Rel{Op: ast.Ge, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "0"}}, unit.Claim)
	assert.Equal(t, []string{"x"}, unit.Vars)
}

func TestParse_KeywordAliasesReadNaturally(t *testing.T) {
	unit, err := Parse(`
suppose x > 0
therefore x >= 0
`, "")
	require.NoError(t, err)
	assert.Equal(t, ast.Rel{Op: ast.Gt, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "0"}}, unit.Assumptions[0])
	assert.NotNil(t, unit.Claim)
}

func TestParse_ChainedComparisonDesugarsToConjunction(t *testing.T) {
	unit, err := Parse(`
let x : Real
assume 0 < x <= 10
prove x > -1
`, "")
	require.NoError(t, err)
	want := ast.And{Args: []ast.Formula{
		ast.Rel{Op: ast.Lt, Lhs: ast.Number{Value: "0"}, Rhs: ast.Var{Name: "x"}},
		ast.Rel{Op: ast.Le, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "10"}},
	}}
	assert.Equal(t, want, unit.Assumptions[0])
}

func TestParse_IffIsItsOwnConnective(t *testing.T) {
	unit, err := Parse(`
let x : Real
prove x > 0 iff x + 1 > 1
`, "")
	require.NoError(t, err)
	iff, ok := unit.Claim.(ast.Iff)
	require.True(t, ok, "expected claim to be an ast.Iff, got %T", unit.Claim)
	assert.Equal(t, ast.Rel{Op: ast.Gt, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "0"}}, iff.Lhs)
}

func TestParse_LetSetMembershipSynthesisesConstraint(t *testing.T) {
	cases := []struct {
		decl     string
		wantType ast.VarType
		want     ast.Formula
	}{
		{"let x in Z", ast.Integer, nil},
		{"let x in Z+", ast.Integer, ast.Rel{Op: ast.Gt, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "0"}}},
		{"let x in N", ast.Integer, ast.Rel{Op: ast.Ge, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "0"}}},
		{"let x in N+", ast.Integer, ast.Rel{Op: ast.Gt, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "0"}}},
		{"let x in R+", ast.Real, ast.Rel{Op: ast.Gt, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "0"}}},
		{"let x in Q", ast.Real, nil},
	}
	for _, c := range cases {
		src := c.decl + "\nprove x = x\n"
		unit, err := Parse(src, "")
		require.NoError(t, err, c.decl)
		assert.Equal(t, c.wantType, unit.TypeOf("x"), c.decl)
		if c.want == nil {
			assert.Empty(t, unit.Assumptions, c.decl)
		} else {
			require.Len(t, unit.Assumptions, 1, c.decl)
			assert.Equal(t, c.want, unit.Assumptions[0], c.decl)
		}
	}
}

func TestParse_FirstDeclaredTypeIsNotDowngraded(t *testing.T) {
	unit, err := Parse(`
let x : Int
let x : Real
prove x = x
`, "")
	require.NoError(t, err)
	assert.Equal(t, ast.Integer, unit.TypeOf("x"))
}

func TestParse_UndeclaredVariableDefaultsToReal(t *testing.T) {
	unit, err := Parse(`
prove x = x
`, "")
	require.NoError(t, err)
	assert.Equal(t, ast.Real, unit.TypeOf("x"))
}

func TestParse_TheoremAndApply(t *testing.T) {
	unit, err := Parse(`
theorem doubling:
  assume x > 0
  prove x + x > x

apply doubling
prove true
`, "")
	require.NoError(t, err)
	require.Len(t, unit.Assumptions, 1)
	implies, ok := unit.Assumptions[0].(ast.Implies)
	require.True(t, ok)
	assert.Equal(t, unit.Theorems["doubling"].Conclusion, implies.Rhs)
}

func TestParse_ApplyUnknownTheoremIsAnError(t *testing.T) {
	_, err := Parse(`
apply nonsense
prove true
`, "")
	require.Error(t, err)
	var perr *ParseErrors
	require.True(t, errors.As(err, &perr))
	assert.True(t, errors.Is(err, ErrUnknownTheorem))
}

func TestParse_CasesBlock(t *testing.T) {
	unit, err := Parse(`
let x : Real
cases:
case x >= 0:
  have abs(x) = x
case x < 0:
  have abs(x) = -x
prove abs(x) >= 0
`, "")
	require.NoError(t, err)
	require.Len(t, unit.Steps, 1)
	require.True(t, unit.Steps[0].IsCases())
	require.Len(t, unit.Steps[0].Cases, 2)
	assert.Len(t, unit.Steps[0].Cases[0].Steps, 1)
	assert.Len(t, unit.Steps[0].Cases[1].Steps, 1)
}

func TestParse_CasesBlockRequiresAtLeastOneCase(t *testing.T) {
	_, err := Parse(`
cases:
prove true
`, "")
	require.Error(t, err)
}

func TestParse_NoProveIsAnError(t *testing.T) {
	_, err := Parse(`assume x > 0`, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoProve))
}

func TestParse_DuplicateProveIsAnError(t *testing.T) {
	_, err := Parse(`
prove x = x
prove x = x
`, "")
	require.Error(t, err)
}

func TestParse_MultipleErrorsAreCollectedNotJustTheFirst(t *testing.T) {
	_, err := Parse(`
assume )
prove (
`, "")
	require.Error(t, err)
	var perr *ParseErrors
	require.True(t, errors.As(err, &perr))
	assert.GreaterOrEqual(t, len(perr.Errors), 2)
}

func TestParse_FunctionArityIsEnforced(t *testing.T) {
	_, err := Parse(`
let x : Real
prove abs(x, x) = x
`, "")
	require.Error(t, err)

	_, err = Parse(`
let x : Real
prove min(x) = x
`, "")
	require.Error(t, err)
}

func TestParse_ParenthesisedFormulaGroup(t *testing.T) {
	unit, err := Parse(`
let x : Real
prove (x > 0 or x < 0) and x != 0
`, "")
	require.NoError(t, err)
	and, ok := unit.Claim.(ast.And)
	require.True(t, ok)
	require.Len(t, and.Args, 2)
	_, isOr := and.Args[0].(ast.Or)
	assert.True(t, isOr)
}

func TestParse_TermParenthesesAheadOfRelationStillWork(t *testing.T) {
	unit, err := Parse(`
let x : Real
let y : Real
prove (x + y) > x
`, "")
	require.NoError(t, err)
	rel, ok := unit.Claim.(ast.Rel)
	require.True(t, ok)
	_, isBinOp := rel.Lhs.(ast.BinOp)
	assert.True(t, isBinOp)
}

func TestParse_AbsoluteValuePipeNotation(t *testing.T) {
	unit, err := Parse(`
let x : Real
prove |x| >= 0
`, "")
	require.NoError(t, err)
	rel, ok := unit.Claim.(ast.Rel)
	require.True(t, ok)
	assert.Equal(t, ast.Abs{Arg: ast.Var{Name: "x"}}, rel.Lhs)
}

func TestParse_QuantifierBindsWholeRemainingFormula(t *testing.T) {
	unit, err := Parse(`
prove forall x . x > 0 implies x >= 0
`, "")
	require.NoError(t, err)
	forall, ok := unit.Claim.(ast.Forall)
	require.True(t, ok)
	_, isImplies := forall.Body.(ast.Implies)
	assert.True(t, isImplies, "quantifier body should capture the whole implication, got %T", forall.Body)
}

func TestParse_ImportingTheSameFileTwiceMergesItsTheoremsOnce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.proof"), []byte(`
theorem helper:
  assume x > 0
  prove x + x > x
`), 0o644))

	unit, err := Parse(`
import "lib.proof"
import "lib.proof"
apply helper
prove true
`, dir)
	require.NoError(t, err)
	require.Contains(t, unit.Theorems, "helper")

	implies, ok := unit.Assumptions[0].(ast.Implies)
	require.True(t, ok)
	assert.Equal(t, unit.Theorems["helper"].Conclusion, implies.Rhs)
}

func TestParse_CyclicImportsTerminate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.proof"), []byte(`
import "b.proof"
theorem fromA:
  prove true
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.proof"), []byte(`
import "a.proof"
theorem fromB:
  prove true
`), 0o644))

	unit, err := Parse(`
import "a.proof"
prove true
`, dir)
	require.NoError(t, err)
	assert.Contains(t, unit.Theorems, "fromA")
	assert.Contains(t, unit.Theorems, "fromB")
}
