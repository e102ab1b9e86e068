/*
File   : proofcheck/parser/parser_expressions.go
Package: parser
*/
package parser

import (
	"github.com/proofdsl/proofcheck/ast"
	"github.com/proofdsl/proofcheck/lexer"
)

// relOpTokens maps a relational punctuation token to its ast.RelOp.
var relOpTokens = map[lexer.TokenKind]ast.RelOp{
	lexer.LT: ast.Lt, lexer.LE: ast.Le, lexer.EQ: ast.Eq,
	lexer.NE: ast.Ne, lexer.GT: ast.Gt, lexer.GE: ast.Ge,
}

// parseFormula is the entry point for the formula grammar (§4.2), from
// loosest to tightest: iff -> implies -> or -> and -> not -> quantifier ->
// relation -> (arithmetic term grammar).
func (p *Parser) parseFormula() (ast.Formula, error) {
	return p.parseIff()
}

// parseIff parses `A iff B`. Kept as its own production rather than folded
// into parseImplies so the translator can lower it to a genuine
// biconditional instead of the one-way implication the `iff`-aliasing bug
// produced (see REDESIGN FLAGS).
func (p *Parser) parseIff() (ast.Formula, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	if p.check(lexer.IFF) {
		p.advance()
		right, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		return ast.Iff{Lhs: left, Rhs: right}, nil
	}
	return left, nil
}

// parseImplies parses right-associative implication.
func (p *Parser) parseImplies() (ast.Formula, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.check(lexer.IMPLIES, lexer.IMPLIESOP) {
		p.advance()
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return ast.Implies{Lhs: left, Rhs: right}, nil
	}
	return left, nil
}

// parseOr parses disjunction, flattening a chain of `or` into one Or node.
func (p *Parser) parseOr() (ast.Formula, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	args := []ast.Formula{left}
	for p.check(lexer.OR) {
		p.advance()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return ast.Or{Args: args}, nil
}

// parseAnd parses conjunction, flattening a chain of `and` into one And node.
func (p *Parser) parseAnd() (ast.Formula, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	args := []ast.Formula{left}
	for p.check(lexer.AND) {
		p.advance()
		next, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return ast.And{Args: args}, nil
}

// parseNot parses negation.
func (p *Parser) parseNot() (ast.Formula, error) {
	if p.check(lexer.NOT) {
		p.advance()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return ast.Not{Arg: arg}, nil
	}
	return p.parseQuantifier()
}

// parseQuantifier parses `forall v1, v2, ... . F` / `exists ... . F`. The
// body is parsed via parseFormula (the topmost entry), so a quantifier
// swallows everything up to the enclosing paren or end of statement,
// matching the "quantifier binds outermost" rule of §4.2 even though this
// production sits in the middle of the recursive-descent chain.
func (p *Parser) parseQuantifier() (ast.Formula, error) {
	if p.check(lexer.FORALL, lexer.EXISTS) {
		kind := p.advance().Kind

		var names []string
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		names = append(names, nameTok.Literal)
		for p.check(lexer.COMMA) {
			p.advance()
			nameTok, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			names = append(names, nameTok.Literal)
		}
		if _, err := p.expect(lexer.DOT); err != nil {
			return nil, err
		}

		for _, n := range names {
			p.recordVar(n)
		}

		body, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		if kind == lexer.FORALL {
			return ast.Forall{Vars: names, Body: body}, nil
		}
		return ast.Exists{Vars: names, Body: body}, nil
	}
	return p.parseFormulaGroupOrRelation()
}

// parseFormulaGroupOrRelation disambiguates `(` between a grouped formula
// — `(x > 0 or x < 0)` — and a term-parenthesis that is itself the left
// side of a relation — `(x + y) > z`. Both start identically, so this
// tries the formula interpretation first and backtracks to the relation
// grammar (whose own atom rule parses term-parens) if it doesn't cleanly
// close with `)`.
func (p *Parser) parseFormulaGroupOrRelation() (ast.Formula, error) {
	if p.check(lexer.LPAREN) {
		save := p.pos
		p.advance()
		inner, err := p.parseFormula()
		if err == nil && p.check(lexer.RPAREN) {
			p.advance()
			return inner, nil
		}
		p.pos = save
	}
	return p.parseRelation()
}

// parseRelation parses a relation, including chained comparisons, which
// desugar structurally into a conjunction of the individual links (§4.2):
// `0 < x <= y` becomes `(0 < x) and (x <= y)`, never an algebraic rewrite.
// `true` and `false` are accepted here as the nullary relation literals.
func (p *Parser) parseRelation() (ast.Formula, error) {
	if p.check(lexer.TRUE) {
		p.advance()
		return ast.True(), nil
	}
	if p.check(lexer.FALSE) {
		p.advance()
		return ast.False(), nil
	}

	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if !p.check(lexer.LT, lexer.LE, lexer.EQ, lexer.NE, lexer.GT, lexer.GE) {
		return nil, p.errorf(p.current(), "expected a relational operator, got %s", p.current().Kind)
	}

	var links []ast.Formula
	current := left
	for {
		op, ok := relOpTokens[p.current().Kind]
		if !ok {
			break
		}
		p.advance()
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		links = append(links, ast.Rel{Op: op, Lhs: current, Rhs: right})
		current = right
	}

	if len(links) == 1 {
		return links[0], nil
	}
	return ast.And{Args: links}, nil
}
