/*
File   : proofcheck/cmd/proofcheck/repl.go
Package: main
*/
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/proofdsl/proofcheck/repl"
)

const (
	replLine    = "--------------------------------------------------"
	replVersion = "0.1.0"
	replAuthor  = "proofcheck"
	replLicense = "MIT"
	replPrompt  = "proof >>> "
)

var replCommand = &cli.Command{
	Name:   "repl",
	Usage:  "start an interactive proof session",
	Action: runRepl,
}

func runRepl(ctx context.Context, cmd *cli.Command) error {
	session := repl.NewRepl(asciiBanner, replVersion, replAuthor, replLine, replLicense, replPrompt)
	session.Start(os.Stdin, os.Stdout)
	return nil
}
