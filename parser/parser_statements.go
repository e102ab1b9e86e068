/*
File   : proofcheck/parser/parser_statements.go
Package: parser
*/
package parser

import (
	"github.com/proofdsl/proofcheck/ast"
	"github.com/proofdsl/proofcheck/lexer"
)

// parseStatement dispatches on the current token's kind to one of the
// statement productions in §4.2.
func (p *Parser) parseStatement() error {
	tok := p.current()

	switch tok.Kind {
	case lexer.ASSUME:
		p.advance()
		f, err := p.parseFormula()
		if err != nil {
			return err
		}
		p.assumptions = append(p.assumptions, f)
		return nil

	case lexer.PROVE:
		p.advance()
		f, err := p.parseFormula()
		if err != nil {
			return err
		}
		if p.haveClaim {
			return p.errorf(tok, "duplicate 'prove' statement")
		}
		p.claim = f
		p.haveClaim = true
		return nil

	case lexer.HAVE, lexer.ASSERT:
		p.advance()
		f, err := p.parseFormula()
		if err != nil {
			return err
		}
		p.steps = append(p.steps, ast.Step{Formula: f})
		return nil

	case lexer.LET:
		return p.parseLet()

	case lexer.THEOREM:
		return p.parseTheorem()

	case lexer.APPLY:
		return p.parseApply()

	case lexer.IMPORT:
		return p.parseImport()

	case lexer.CASES:
		return p.parseCases()

	default:
		return p.errorf(tok, "expected statement keyword (assume/suppose, prove/show, "+
			"have/so, let/define, theorem/lemma, apply/use, import, or cases), got %s", tok.Kind)
	}
}

// parseLet parses `let x [: Int|Real] [in SET[+]] [= expr]`, recording x's
// type and synthesising any set-membership constraint as an assumption
// (§3 invariants: a variable's first declared type cannot be downgraded).
func (p *Parser) parseLet() error {
	p.advance() // consume 'let'
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return err
	}
	name := nameTok.Literal

	varType := ast.Real
	var constraint *ast.Rel

	if p.check(lexer.COLON) {
		p.advance()
		t := p.current()
		switch t.Kind {
		case lexer.INT:
			p.advance()
			varType = ast.Integer
		case lexer.REAL:
			p.advance()
			varType = ast.Real
		default:
			return p.errorf(t, "expected 'Int' or 'Real', got %s", t.Kind)
		}
	}

	if p.check(lexer.IN) {
		p.advance()
		setTok, err := p.expect(lexer.SET)
		if err != nil {
			return p.errorf(p.current(), "expected set name (R, Z, N, Q), got %s", p.current().Kind)
		}
		positive := false
		if p.check(lexer.PLUS) {
			p.advance()
			positive = true
		}
		varType, constraint = membershipConstraint(name, setTok.Literal, positive)
	}

	if p.check(lexer.EQ) {
		p.advance()
		if _, err := p.parseExpr(); err != nil {
			return err
		}
	}

	p.recordVar(name)
	if _, alreadyTyped := p.varTypes[name]; !alreadyTyped {
		p.varTypes[name] = varType // first-declared type wins; later `let` never downgrades it
	}

	if constraint != nil {
		p.assumptions = append(p.assumptions, *constraint)
	}
	return nil
}

// membershipConstraint maps a set name (R, Z, N, Q) and its optional `+`
// suffix to the variable's sort and the relational assumption to
// synthesise, per §3: `in N` => x >= 0; `in Z+`/`N+`/`R+`/`Q+` => x > 0.
func membershipConstraint(name, set string, positive bool) (ast.VarType, *ast.Rel) {
	v := ast.Var{Name: name}
	zero := ast.Number{Value: "0"}

	switch set {
	case "Z":
		if positive {
			return ast.Integer, &ast.Rel{Op: ast.Gt, Lhs: v, Rhs: zero}
		}
		return ast.Integer, nil
	case "N":
		if positive {
			return ast.Integer, &ast.Rel{Op: ast.Gt, Lhs: v, Rhs: zero}
		}
		return ast.Integer, &ast.Rel{Op: ast.Ge, Lhs: v, Rhs: zero}
	case "Q":
		if positive {
			return ast.Real, &ast.Rel{Op: ast.Gt, Lhs: v, Rhs: zero}
		}
		return ast.Real, nil
	default: // "R"
		if positive {
			return ast.Real, &ast.Rel{Op: ast.Gt, Lhs: v, Rhs: zero}
		}
		return ast.Real, nil
	}
}

// parseTheorem parses `theorem N: ...` as a nested parse: its own
// assumptions and claim are collected in isolation, then stashed into
// p.theorems[N] before the outer assumptions/claim are restored.
func (p *Parser) parseTheorem() error {
	p.advance() // consume 'theorem'
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return err
	}
	p.skipNewlines()

	savedAssumptions, savedClaim, savedHaveClaim := p.assumptions, p.claim, p.haveClaim
	p.assumptions = nil
	p.claim = nil
	p.haveClaim = false

	for !p.check(lexer.EOF) && !p.haveClaim {
		if err := p.parseStatement(); err != nil {
			p.assumptions, p.claim, p.haveClaim = savedAssumptions, savedClaim, savedHaveClaim
			return err
		}
		p.skipNewlines()
	}

	if !p.haveClaim {
		err := p.errorf(nameTok, "theorem '%s' has no 'prove' statement", nameTok.Literal)
		p.assumptions, p.claim, p.haveClaim = savedAssumptions, savedClaim, savedHaveClaim
		return err
	}

	p.theorems[nameTok.Literal] = ast.Theorem{
		Assumptions: p.assumptions,
		Conclusion:  p.claim,
	}

	p.assumptions, p.claim, p.haveClaim = savedAssumptions, savedClaim, savedHaveClaim
	return nil
}

// parseApply parses `apply N`, injecting N's implication form
// (conj(assumptions) -> conclusion, or just conclusion if N had none) into
// the current assumption list.
func (p *Parser) parseApply() error {
	tok := p.advance() // consume 'apply'
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return err
	}
	theorem, ok := p.theorems[nameTok.Literal]
	if !ok {
		return p.errorfWrap(tok, ErrUnknownTheorem, "unknown theorem: %s", nameTok.Literal)
	}

	if len(theorem.Assumptions) == 0 {
		p.assumptions = append(p.assumptions, theorem.Conclusion)
		return nil
	}
	var lhs ast.Formula
	if len(theorem.Assumptions) == 1 {
		lhs = theorem.Assumptions[0]
	} else {
		lhs = ast.And{Args: theorem.Assumptions}
	}
	p.assumptions = append(p.assumptions, ast.Implies{Lhs: lhs, Rhs: theorem.Conclusion})
	return nil
}

// parseCases parses a `cases: case C1: ... case C2: ...` block into a
// single Step carrying the per-case conditions and sub-steps (§4.2).
func (p *Parser) parseCases() error {
	p.advance() // consume 'cases'
	if _, err := p.expect(lexer.COLON); err != nil {
		return err
	}
	p.skipNewlines()

	var cases []ast.Case
	for p.check(lexer.CASE) {
		caseTok := p.advance()
		condition, err := p.parseFormula()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return err
		}
		p.skipNewlines()

		var steps []ast.Step
		blockEnders := []lexer.TokenKind{
			lexer.CASE, lexer.EOF, lexer.PROVE, lexer.ASSUME, lexer.LET, lexer.THEOREM,
			lexer.IMPORT, lexer.CASES,
		}
		for !p.check(blockEnders...) {
			if p.check(lexer.HAVE, lexer.ASSERT) {
				p.advance()
				f, err := p.parseFormula()
				if err != nil {
					return err
				}
				steps = append(steps, ast.Step{Formula: f})
				p.skipNewlines()
				continue
			}
			if p.check(lexer.NEWLINE) {
				p.advance()
				continue
			}
			break
		}
		_ = caseTok
		cases = append(cases, ast.Case{Condition: condition, Steps: steps})
	}

	if len(cases) == 0 {
		return p.errorf(p.current(), "cases block requires at least one 'case'")
	}

	p.steps = append(p.steps, ast.Step{Cases: cases})
	return nil
}
