/*
File   : proofcheck/parser/parser_arithmetic.go
Package: parser
*/
package parser

import (
	"github.com/proofdsl/proofcheck/ast"
	"github.com/proofdsl/proofcheck/lexer"
)

// parseExpr parses the arithmetic term grammar's loosest tier: left
// associative `+`/`-`.
func (p *Parser) parseExpr() (ast.Term, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.PLUS, lexer.MINUS) {
		op := p.advance().Kind
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		sym := "+"
		if op == lexer.MINUS {
			sym = "-"
		}
		left = ast.BinOp{Op: sym, Left: left, Right: right}
	}
	return left, nil
}

// parseMul parses left-associative `*`/`/`.
func (p *Parser) parseMul() (ast.Term, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.STAR, lexer.SLASH) {
		op := p.advance().Kind
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		sym := "*"
		if op == lexer.SLASH {
			sym = "/"
		}
		left = ast.BinOp{Op: sym, Left: left, Right: right}
	}
	return left, nil
}

// parsePower parses right-associative `^`, binding tighter than `*`/`/` but
// looser than unary `-` (its base comes from parseUnary), so that `-x^2`
// reads as `(-x)^2`.
func (p *Parser) parsePower() (ast.Term, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.check(lexer.CARET) {
		p.advance()
		exp, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return ast.Pow{Base: base, Exp: exp}, nil
	}
	return base, nil
}

// parseUnary parses prefix `-`.
func (p *Parser) parseUnary() (ast.Term, error) {
	if p.check(lexer.MINUS) {
		p.advance()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Neg{Arg: arg}, nil
	}
	return p.parseAtom()
}

// parseAtom parses the tightest-binding term forms: numeric literals,
// variables, function calls (abs/sqrt/min/max), parenthesised
// sub-expressions, and `|x|` absolute value.
func (p *Parser) parseAtom() (ast.Term, error) {
	tok := p.current()

	switch tok.Kind {
	case lexer.NUMBER:
		p.advance()
		return ast.Number{Value: tok.Literal}, nil

	case lexer.IDENT:
		p.advance()
		p.recordVar(tok.Literal)
		return ast.Var{Name: tok.Literal}, nil

	case lexer.FUNC:
		return p.parseFuncCall()

	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.PIPE:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.PIPE); err != nil {
			return nil, err
		}
		return ast.Abs{Arg: inner}, nil

	default:
		return nil, p.errorf(tok, "expected a number, variable, function call, or parenthesised "+
			"expression, got %s (%q)", tok.Kind, tok.Literal)
	}
}

// parseFuncCall parses `name(arg, arg, ...)` and enforces each builtin's
// arity (§3): abs and sqrt take exactly one argument, min and max take two
// or more.
func (p *Parser) parseFuncCall() (ast.Term, error) {
	tok := p.advance() // the FUNC token
	name := tok.Literal

	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var args []ast.Term
	if !p.check(lexer.RPAREN) {
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, first)
		for p.check(lexer.COMMA) {
			p.advance()
			next, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, next)
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	switch name {
	case "abs":
		if len(args) != 1 {
			return nil, p.errorf(tok, "abs() takes exactly 1 argument, got %d", len(args))
		}
		return ast.Abs{Arg: args[0]}, nil
	case "sqrt":
		if len(args) != 1 {
			return nil, p.errorf(tok, "sqrt() takes exactly 1 argument, got %d", len(args))
		}
		return ast.Sqrt{Arg: args[0]}, nil
	case "min":
		if len(args) < 2 {
			return nil, p.errorf(tok, "min() takes at least 2 arguments, got %d", len(args))
		}
		return ast.Min{Args: args}, nil
	case "max":
		if len(args) < 2 {
			return nil, p.errorf(tok, "max() takes at least 2 arguments, got %d", len(args))
		}
		return ast.Max{Args: args}, nil
	default:
		return nil, p.errorf(tok, "unknown function: %s", name)
	}
}
