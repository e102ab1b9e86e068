/*
File   : proofcheck/cmd/proofcheck/verify.go
Package: main
*/
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/proofdsl/proofcheck/parser"
	"github.com/proofdsl/proofcheck/smt/refsolver"
	"github.com/proofdsl/proofcheck/verify"
)

var verifyCommand = &cli.Command{
	Name:      "verify",
	Usage:     "parse and verify a proof DSL file",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "print the verdict as JSON"},
	},
	Action: runVerify,
}

func runVerify(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return cli.Exit("proofcheck verify: missing <file> argument", 2)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading %s: %v", path, err), 2)
	}

	unit, err := parser.Parse(string(source), filepath.Dir(path))
	if err != nil {
		return cli.Exit(fmt.Sprintf("parse error: %v", err), 2)
	}

	driver := verify.NewDriver(refsolver.New())
	result, err := driver.Verify(ctx, unit)
	if err != nil {
		return cli.Exit(fmt.Sprintf("verify error: %v", err), 2)
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printVerdict(os.Stdout, result)
	}

	if !result.OK {
		return cli.Exit("", 1)
	}
	return nil
}

func printVerdict(w *os.File, result *verify.Result) {
	switch result.Status {
	case verify.Proven:
		color.New(color.FgGreen).Fprintln(w, "proven")
	case verify.Disproven:
		color.New(color.FgRed).Fprintf(w, "disproven: %v\n", result.Model)
	default:
		color.New(color.FgYellow).Fprintf(w, "%s: %s\n", result.Status, result.Message)
	}

	for i, step := range result.Steps {
		fmt.Fprintf(w, "  step %d: %s\n", i+1, step.Status)
	}
}
