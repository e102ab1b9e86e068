/*
File   : proofcheck/smt/translator_test.go
Package: smt
*/
package smt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdsl/proofcheck/ast"
)

func TestTranslator_NumberIsExactRational(t *testing.T) {
	tr := NewTranslator(nil)
	term, err := tr.Term(ast.Number{Value: "0.1"})
	require.NoError(t, err)
	lit, ok := term.(Lit)
	require.True(t, ok)
	assert.Equal(t, big.NewRat(1, 10), lit.Value)
}

func TestTranslator_SameVariableReusesSameConstant(t *testing.T) {
	tr := NewTranslator(map[string]ast.VarType{"x": ast.Integer})
	a, err := tr.Term(ast.Var{Name: "x"})
	require.NoError(t, err)
	b, err := tr.Term(ast.Var{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, Const{Name: "x", Sort: IntSort}, a)
}

func TestTranslator_UntypedVariableDefaultsToReal(t *testing.T) {
	tr := NewTranslator(nil)
	term, err := tr.Term(ast.Var{Name: "y"})
	require.NoError(t, err)
	assert.Equal(t, Const{Name: "y", Sort: RealSort}, term)
}

func TestTranslator_IffLowersToBothDirections(t *testing.T) {
	tr := NewTranslator(nil)
	f, err := tr.Formula(ast.Iff{
		Lhs: ast.Rel{Op: ast.Gt, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "0"}},
		Rhs: ast.Rel{Op: ast.Ge, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "-1"}},
	})
	require.NoError(t, err)
	and, ok := f.(And)
	require.True(t, ok)
	require.Len(t, and.Args, 2)
	first, ok := and.Args[0].(Implies)
	require.True(t, ok)
	second, ok := and.Args[1].(Implies)
	require.True(t, ok)
	assert.Equal(t, first.Lhs, second.Rhs)
	assert.Equal(t, first.Rhs, second.Lhs)
}

func TestTranslator_AbsLowersToConditional(t *testing.T) {
	tr := NewTranslator(nil)
	term, err := tr.Term(ast.Abs{Arg: ast.Var{Name: "x"}})
	require.NoError(t, err)
	ite, ok := term.(IfThenElse)
	require.True(t, ok)
	rel, ok := ite.Cond.(Rel)
	require.True(t, ok)
	assert.Equal(t, Ge, rel.Op)
}

func TestTranslator_MinFoldsLeftAcrossAllArguments(t *testing.T) {
	tr := NewTranslator(nil)
	term, err := tr.Term(ast.Min{Args: []ast.Term{
		ast.Var{Name: "a"}, ast.Var{Name: "b"}, ast.Var{Name: "c"},
	}})
	require.NoError(t, err)
	outer, ok := term.(IfThenElse)
	require.True(t, ok)
	_, innerIsIte := outer.Then.(IfThenElse)
	assert.True(t, innerIsIte, "expected min to fold left across 3 arguments")
}

func TestTranslator_MinMaxRejectSingleArgument(t *testing.T) {
	tr := NewTranslator(nil)
	_, err := tr.Term(ast.Min{Args: []ast.Term{ast.Var{Name: "a"}}})
	require.Error(t, err)
}

func TestTranslator_QuantifierBoundVariableShadowsFree(t *testing.T) {
	tr := NewTranslator(map[string]ast.VarType{"x": ast.Integer})

	// Reference x freely first, declaring it Int in the root scope.
	_, err := tr.Term(ast.Var{Name: "x"})
	require.NoError(t, err)

	f, err := tr.Formula(ast.Forall{
		Vars: []string{"x"},
		Body: ast.Rel{Op: ast.Gt, Lhs: ast.Var{Name: "x"}, Rhs: ast.Number{Value: "0"}},
	})
	require.NoError(t, err)
	forall, ok := f.(Forall)
	require.True(t, ok)
	require.Len(t, forall.Vars, 1)

	rel := forall.Body.(Rel)
	boundConst := rel.Lhs.(Const)
	assert.Equal(t, forall.Vars[0], boundConst)

	// After the quantifier, the scope is restored: a fresh reference to x
	// resolves back to the original free constant.
	again, err := tr.Term(ast.Var{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, Const{Name: "x", Sort: IntSort}, again)
}

func TestTranslator_EmptyConjunctionAndDisjunctionAreBooleanLiterals(t *testing.T) {
	tr := NewTranslator(nil)
	trueF, err := tr.Formula(ast.And{})
	require.NoError(t, err)
	assert.Equal(t, BoolLit{Value: true}, trueF)

	falseF, err := tr.Formula(ast.Or{})
	require.NoError(t, err)
	assert.Equal(t, BoolLit{Value: false}, falseF)
}

func TestFreeConsts_ExcludesQuantifierBoundVariables(t *testing.T) {
	tr := NewTranslator(nil)
	f, err := tr.Formula(ast.Forall{
		Vars: []string{"x"},
		Body: ast.Rel{Op: ast.Gt, Lhs: ast.Var{Name: "x"}, Rhs: ast.Var{Name: "y"}},
	})
	require.NoError(t, err)

	free := FreeConsts(f)
	require.Len(t, free, 1)
	assert.Equal(t, "y", free[0].Name)
}
