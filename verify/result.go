/*
File   : proofcheck/verify/result.go
Package: verify
*/

// Package verify implements the verification driver: it sequences solver
// queries for a proof unit's intermediate steps, case exhaustiveness, and
// final claim, and assembles them into one structured verdict (§4.4).
package verify

import "github.com/proofdsl/proofcheck/smt"

// Status is the outcome of one obligation: a step, a case, an
// exhaustiveness check, or the final claim.
type Status string

const (
	Proven    Status = "proven"
	Disproven Status = "disproven"
	Unknown   Status = "unknown"
	Errored   Status = "error"
)

// StepResult mirrors one element of a proof unit's Steps, one-to-one
// (§4.4). Exactly one of the plain-formula fields or the Cases field is
// populated, matching ast.Step's own either/or shape.
type StepResult struct {
	Status  Status
	Model   smt.Model // non-nil only when Status == Disproven
	Message string    // populated for Errored

	Cases      []CaseResult // non-nil for a cases step
	Exhaustive *bool        // non-nil for a cases step
}

// CaseResult is one branch's outcome within a cases step.
type CaseResult struct {
	Steps []StepResult
}

// Result is the verdict for an entire proof unit.
type Result struct {
	OK      bool
	Status  Status
	Model   smt.Model
	Message string
	Steps   []StepResult
}
