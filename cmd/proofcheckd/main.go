/*
File   : proofcheck/cmd/proofcheckd/main.go
Package: main
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "proofcheckd",
		Usage: "run the proof DSL verification HTTP service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "address to listen on"},
			&cli.StringFlag{Name: "examples", Value: "examples", Usage: "directory of canned DSL snippets served by GET /examples"},
		},
		Action: runServe,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "proofcheckd: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	server := newServer(cmd.String("examples"))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /check", server.handleCheck)
	mux.HandleFunc("GET /examples", server.handleExamples)

	addr := cmd.String("addr")
	fmt.Printf("proofcheckd listening on %s\n", addr)
	return http.ListenAndServe(addr, mux)
}
