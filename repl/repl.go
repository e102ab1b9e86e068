/*
File   : proofcheck/repl/repl.go
Package: repl
*/

// Package repl implements a stateful Read-Eval-Print loop for the proof
// DSL: it accumulates `let`/`assume`/`have`/`cases` lines until the user
// types a `prove` line, then parses and verifies everything typed so far
// as one unit and resets for the next proof (§6). Line editing and
// history come from chzyer/readline and verdict coloring from
// fatih/color, in the teacher's palette: proven in green, disproven in
// red, unknown or error in yellow.
package repl

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/proofdsl/proofcheck/parser"
	"github.com/proofdsl/proofcheck/smt/refsolver"
	"github.com/proofdsl/proofcheck/verify"
)

var (
	blueColor   = color.New(color.FgBlue)
	greenColor  = color.New(color.FgGreen)
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// proveLine matches a line that starts a `prove` statement, the trigger
// that closes the current accumulated unit and runs it.
var proveLine = regexp.MustCompile(`^\s*prove\b`)

// Repl holds the cosmetic configuration of one interactive session: the
// banner shown at startup, version/author/license strings, the separator
// line, and the prompt. None of it is proof state; that lives in the
// buffer built up inside Start.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl creates a Repl with the given display configuration.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Enter let/assume/have/cases lines, then a prove line to check them")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the main loop: read a line, accumulate it, and on a `prove`
// line verify everything accumulated since the last verdict.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	driver := verify.NewDriver(refsolver.New())
	var buffer []string

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		trimmed := strings.Trim(line, " \t\r\n")
		if trimmed == "" {
			continue
		}
		if trimmed == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		buffer = append(buffer, line)

		if proveLine.MatchString(trimmed) {
			r.verifyAndReset(writer, driver, &buffer)
		}
	}
}

// verifyAndReset parses *buffer as one proof unit, runs it through
// driver, prints the colored verdict, and clears *buffer for the next
// proof regardless of outcome.
func (r *Repl) verifyAndReset(writer io.Writer, driver *verify.Driver, buffer *[]string) {
	source := strings.Join(*buffer, "\n")
	*buffer = nil

	unit, err := parser.Parse(source, "")
	if err != nil {
		redColor.Fprintf(writer, "[PARSE ERROR] %v\n", err)
		return
	}

	result, err := driver.Verify(context.Background(), unit)
	if err != nil {
		redColor.Fprintf(writer, "[VERIFY ERROR] %v\n", err)
		return
	}

	switch result.Status {
	case verify.Proven:
		greenColor.Fprintf(writer, "proven\n")
	case verify.Disproven:
		redColor.Fprintf(writer, "disproven: %s\n", formatModel(result.Model))
	default:
		yellowColor.Fprintf(writer, "%s\n", result.Status)
	}
}

func formatModel(model map[string]string) string {
	if len(model) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(model))
	for name, value := range model {
		parts = append(parts, fmt.Sprintf("%s=%s", name, value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
