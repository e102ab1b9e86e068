/*
File   : proofcheck/parser/parser.go
Package: parser
*/

// Package parser implements a recursive-descent parser for the proof DSL,
// producing an ast.Unit from a lexer.Token stream. It follows the
// teacher's Pratt-adjacent structure (a statement-level outer loop with a
// precedence-climbing expression/formula grammar) but keeps parser state as
// a small set of accumulator fields rather than a general-purpose
// environment, since the DSL has no runtime values to track.
package parser

import (
	"fmt"
	"path/filepath"

	"github.com/proofdsl/proofcheck/ast"
	"github.com/proofdsl/proofcheck/lexer"
)

// importState is the small mutable side channel shared across a main parse
// and every nested parse it triggers via `import`, tracking which files
// have already been merged so cycles terminate and re-imports are no-ops
// (see ast.Theorem and §4.2 of the design).
type importState struct {
	imported map[string]bool
}

// Parser holds the state of one parse: its token stream, cursor, and the
// accumulators a Unit is built from. Statement handlers mutate only these
// accumulator fields; nothing here is shared across unrelated parses
// except the importState side channel threaded into nested imports.
type Parser struct {
	tokens []lexer.Token
	pos    int

	vars        map[string]bool
	varOrder    []string
	varTypes    map[string]ast.VarType
	assumptions []ast.Formula
	steps       []ast.Step
	claim       ast.Formula
	haveClaim   bool
	theorems    map[string]ast.Theorem

	basePath string
	imports  *importState
	errors   []error
}

// New creates a Parser over tokens. basePath is the directory used to
// resolve relative `import` paths; pass "" for DSL source with no file
// origin (import will then resolve relative to the current directory).
func New(tokens []lexer.Token, basePath string) *Parser {
	return &Parser{
		tokens:   tokens,
		vars:     make(map[string]bool),
		varTypes: make(map[string]ast.VarType),
		theorems: make(map[string]ast.Theorem),
		basePath: basePath,
		imports:  &importState{imported: make(map[string]bool)},
	}
}

// Parse parses a proof source string into a Unit. It tokenizes the source,
// then runs the statement loop. A lexical error is fatal and returned
// immediately (unrecoverable, per §4.1); parse errors are collected and
// reported together as a *ParseErrors once the loop ends.
func Parse(source, basePath string) (*ast.Unit, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := New(tokens, basePath)
	return p.Parse()
}

// Parse runs the statement loop over p's token stream and returns the
// resulting Unit. See Package doc and §4.2 for the grammar.
func (p *Parser) Parse() (*ast.Unit, error) {
	p.skipNewlines()
	for !p.check(lexer.EOF) {
		if err := p.parseStatement(); err != nil {
			p.errors = append(p.errors, err)
			p.recoverToNextStatement()
		}
		p.skipNewlines()
	}

	if len(p.errors) > 0 {
		return nil, &ParseErrors{Errors: p.errors}
	}
	if !p.haveClaim {
		return nil, &ParseErrors{Errors: []error{ErrNoProve}}
	}

	unit := &ast.Unit{
		Vars:        append([]string(nil), p.varOrder...),
		VarTypes:    p.varTypes,
		Assumptions: p.assumptions,
		Steps:       p.steps,
		Claim:       p.claim,
		Theorems:    p.theorems,
	}
	return unit, nil
}

// parseLibrary parses source as a theorem library: statements are
// processed exactly as in Parse, but no `prove` is required and only the
// resulting theorem table is meaningful to the caller (see parseImport).
func (p *Parser) parseLibrary() error {
	p.skipNewlines()
	for !p.check(lexer.EOF) {
		if err := p.parseStatement(); err != nil {
			return err
		}
		p.skipNewlines()
	}
	return nil
}

// --- token navigation -------------------------------------------------

func (p *Parser) current() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) peek(offset int) lexer.Token {
	idx := p.pos + offset
	if idx < len(p.tokens) {
		return p.tokens[idx]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kinds ...lexer.TokenKind) bool {
	cur := p.current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return tok, p.errorf(tok, "expected %s, got %s (%q)", kind, tok.Kind, tok.Literal)
	}
	return p.advance(), nil
}

func (p *Parser) skipNewlines() {
	for p.check(lexer.NEWLINE) {
		p.advance()
	}
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...any) error {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Line: tok.Line, Column: tok.Column}
}

// errorfWrap is errorf plus a sentinel that errors.Is/errors.As can reach
// through the resulting SyntaxError.
func (p *Parser) errorfWrap(tok lexer.Token, wrapped error, format string, args ...any) error {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Line: tok.Line, Column: tok.Column, Wrapped: wrapped}
}

// recoverToNextStatement implements the parser's error-recovery strategy
// (§4.2): skip tokens until a newline is directly followed by a
// statement-starting keyword, then resume the outer loop there.
func (p *Parser) recoverToNextStatement() {
	starters := map[lexer.TokenKind]bool{
		lexer.ASSUME: true, lexer.PROVE: true, lexer.HAVE: true, lexer.ASSERT: true,
		lexer.LET: true, lexer.THEOREM: true, lexer.APPLY: true, lexer.IMPORT: true,
		lexer.CASES: true, lexer.EOF: true,
	}
	for !p.check(lexer.EOF) {
		if p.check(lexer.NEWLINE) {
			p.advance()
			if starters[p.current().Kind] {
				return
			}
			continue
		}
		p.advance()
	}
}

// recordVar adds name to the variable set in first-seen order, without
// touching its type (see recordVarType for the no-downgrade rule).
func (p *Parser) recordVar(name string) {
	if !p.vars[name] {
		p.vars[name] = true
		p.varOrder = append(p.varOrder, name)
	}
}

// resolveImportPath joins a raw import literal against basePath, matching
// the teacher-adjacent python reference's os.path.join + normpath
// resolution (see parser_import.go).
func resolveImportPath(basePath, raw string) string {
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(basePath, raw))
}
