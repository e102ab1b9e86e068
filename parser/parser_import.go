/*
File   : proofcheck/parser/parser_import.go
Package: parser
*/
package parser

import (
	"os"
	"path/filepath"

	"github.com/proofdsl/proofcheck/lexer"
)

// parseImport parses `import "path"` in a single pass: resolve the path
// relative to the importer's directory, skip it if already imported in
// this parse session (idempotent, cycle-safe), otherwise mark it imported,
// parse it as a library (recursing into its own imports), and merge only
// its theorem table.
func (p *Parser) parseImport() error {
	p.advance() // consume 'import'
	pathTok, err := p.expect(lexer.STRING)
	if err != nil {
		return err
	}

	resolved := resolveImportPath(p.basePath, pathTok.Literal)
	if p.imports.imported[resolved] {
		return nil // already imported: no-op
	}
	p.imports.imported[resolved] = true

	source, err := os.ReadFile(resolved)
	if err != nil {
		return p.errorf(pathTok, "error importing %s: %v", resolved, err)
	}

	tokens, lexErr := lexer.Tokenize(string(source))
	if lexErr != nil {
		return p.errorf(pathTok, "error importing %s: %v", resolved, lexErr)
	}

	lib := New(tokens, filepath.Dir(resolved))
	lib.imports = p.imports // share the cycle-tracking side channel

	if err := lib.parseLibrary(); err != nil {
		return p.errorf(pathTok, "error importing %s: %v", resolved, err)
	}

	for name, theorem := range lib.theorems {
		p.theorems[name] = theorem
	}
	return nil
}
