/*
File   : proofcheck/verify/driver.go
Package: verify
*/
package verify

import (
	"context"
	"errors"
	"fmt"

	"github.com/proofdsl/proofcheck/ast"
	"github.com/proofdsl/proofcheck/smt"
)

// Driver runs the "prove P from A" pattern over a proof unit: every
// obligation becomes a satisfiability check of assumptions ∧ ¬goal against
// Solver. A Driver is cheap to construct and holds no state across calls
// (§5): create one per verification request.
type Driver struct {
	Solver smt.Solver
}

// NewDriver creates a Driver backed by solver.
func NewDriver(solver smt.Solver) *Driver {
	return &Driver{Solver: solver}
}

// Verify checks unit's intermediate steps (if any), case exhaustiveness (if
// any), and its final claim, in the order and with the promotion rules of
// §4.4. It returns a non-nil error only when ctx was cancelled or its
// deadline expired mid-verification; any other failure (a malformed
// translation, a solver error) is captured in the returned Result instead
// so the caller always gets a complete per-step account.
func (d *Driver) Verify(ctx context.Context, unit *ast.Unit) (*Result, error) {
	tr := smt.NewTranslator(unit.VarTypes)

	live := append([]ast.Formula(nil), unit.Assumptions...)
	stepResults := make([]StepResult, len(unit.Steps))

	for i, step := range unit.Steps {
		if step.IsCases() {
			result, err := d.verifyCases(ctx, tr, live, step.Cases)
			if err != nil {
				return nil, err
			}
			stepResults[i] = *result
			continue
		}

		status, model, err := d.checkImplied(ctx, tr, live, step.Formula)
		if err != nil {
			if isContextErr(err) {
				return nil, err
			}
			stepResults[i] = StepResult{Status: Errored, Message: err.Error()}
			continue
		}
		stepResults[i] = StepResult{Status: status, Model: model}
		if status == Proven {
			live = append(live, step.Formula)
		}
	}

	status, model, err := d.checkImplied(ctx, tr, live, unit.Claim)
	if err != nil {
		if isContextErr(err) {
			return nil, err
		}
		return &Result{
			OK:      false,
			Status:  Errored,
			Message: err.Error(),
			Steps:   stepResults,
		}, nil
	}

	return &Result{
		OK:     status == Proven,
		Status: status,
		Model:  model,
		Steps:  stepResults,
	}, nil
}

// verifyCases verifies each branch of a cases block under its own added
// condition, with facts accepted inside a case discarded once that case
// ends (§4.4: they never leak into later cases or the outer live
// assumptions). It separately checks that the conditions are exhaustive
// given live.
func (d *Driver) verifyCases(ctx context.Context, tr *smt.Translator, live []ast.Formula, cases []ast.Case) (*StepResult, error) {
	caseResults := make([]CaseResult, len(cases))
	conditions := make([]ast.Formula, len(cases))

	for i, c := range cases {
		conditions[i] = c.Condition
		caseLive := append(append([]ast.Formula(nil), live...), c.Condition)

		subResults := make([]StepResult, len(c.Steps))
		for j, sub := range c.Steps {
			if sub.IsCases() {
				nested, err := d.verifyCases(ctx, tr, caseLive, sub.Cases)
				if err != nil {
					return nil, err
				}
				subResults[j] = *nested
				continue
			}
			status, model, err := d.checkImplied(ctx, tr, caseLive, sub.Formula)
			if err != nil {
				if isContextErr(err) {
					return nil, err
				}
				subResults[j] = StepResult{Status: Errored, Message: err.Error()}
				continue
			}
			subResults[j] = StepResult{Status: status, Model: model}
			if status == Proven {
				caseLive = append(caseLive, sub.Formula)
			}
		}
		caseResults[i] = CaseResult{Steps: subResults}
	}

	var exhaustiveGoal ast.Formula
	if len(conditions) == 1 {
		exhaustiveGoal = conditions[0]
	} else {
		exhaustiveGoal = ast.Or{Args: conditions}
	}
	exhaustStatus, _, err := d.checkImplied(ctx, tr, live, exhaustiveGoal)
	if err != nil {
		if isContextErr(err) {
			return nil, err
		}
		return &StepResult{Status: Errored, Message: err.Error(), Cases: caseResults}, nil
	}
	exhaustive := exhaustStatus == Proven

	return &StepResult{Status: Proven, Cases: caseResults, Exhaustive: &exhaustive}, nil
}

// checkImplied decides whether goal follows from assumptions by checking
// satisfiability of assumptions ∧ ¬goal: unsat means proven, sat means
// disproven (with the model as counterexample), unknown stays unknown.
func (d *Driver) checkImplied(ctx context.Context, tr *smt.Translator, assumptions []ast.Formula, goal ast.Formula) (Status, smt.Model, error) {
	obligation := ast.Formula(ast.And{
		Args: append(append([]ast.Formula(nil), assumptions...), ast.Not{Arg: goal}),
	})

	lowered, err := tr.Formula(obligation)
	if err != nil {
		return Errored, nil, fmt.Errorf("translation error: %w", err)
	}

	result, err := d.Solver.CheckSat(ctx, lowered)
	if err != nil {
		if isContextErr(err) {
			return Errored, nil, err
		}
		return Errored, nil, fmt.Errorf("solver error: %w", err)
	}

	switch result.Status {
	case smt.Unsat:
		return Proven, nil, nil
	case smt.Sat:
		return Disproven, result.Model, nil
	default:
		return Unknown, nil, nil
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
