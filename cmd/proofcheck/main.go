/*
File   : proofcheck/cmd/proofcheck/main.go
Package: main
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

const asciiBanner = `
 ____                   __    ____ _               _
|  _ \ _ __ ___   ___  / _|  / ___| |__   ___  ___| | __
| |_) | '__/ _ \ / _ \| |_  | |   | '_ \ / _ \/ __| |/ /
|  __/| | | (_) | (_) |  _| | |___| | | |  __/ (__|   <
|_|   |_|  \___/ \___/|_|    \____|_| |_|\___|\___|_|\_\
`

func main() {
	app := &cli.Command{
		Name:  "proofcheck",
		Usage: "parse and verify proof DSL sources",
		Commands: []*cli.Command{
			verifyCommand,
			astCommand,
			replCommand,
			libraryCommand,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "proofcheck: %v\n", err)
		os.Exit(1)
	}
}
