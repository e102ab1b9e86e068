/*
File   : proofcheck/cmd/proofcheck/ast.go
Package: main
*/
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/proofdsl/proofcheck/parser"
)

var astCommand = &cli.Command{
	Name:      "ast",
	Usage:     "parse a proof DSL file and print its AST as JSON",
	ArgsUsage: "<file>",
	Action:    runAST,
}

func runAST(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return cli.Exit("proofcheck ast: missing <file> argument", 2)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading %s: %v", path, err), 2)
	}

	unit, err := parser.Parse(string(source), filepath.Dir(path))
	if err != nil {
		return cli.Exit(fmt.Sprintf("parse error: %v", err), 2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(unitToJSON(unit))
}
