/*
File   : proofcheck/cmd/proofcheck/library.go
Package: main
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/proofdsl/proofcheck/catalog"
)

// dbFlag names the SQLite file backing the catalog. It defaults to a file
// in the current directory so running `proofcheck library` from a proof
// project's root just works without configuration.
var dbFlag = &cli.StringFlag{
	Name:  "db",
	Value: "proofcheck-catalog.db",
	Usage: "path to the theorem catalog's SQLite file",
}

var libraryCommand = &cli.Command{
	Name:  "library",
	Usage: "manage the cached theorem library catalog",
	Flags: []cli.Flag{dbFlag},
	Commands: []*cli.Command{
		libraryAddCommand,
		libraryListCommand,
		libraryRemoveCommand,
	},
}

var libraryAddCommand = &cli.Command{
	Name:      "add",
	Usage:     "cache a theorem library file under a name",
	ArgsUsage: "<name> <file>",
	Flags:     []cli.Flag{dbFlag},
	Action:    runLibraryAdd,
}

func runLibraryAdd(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().Get(0)
	path := cmd.Args().Get(1)
	if name == "" || path == "" {
		return cli.Exit("proofcheck library add: usage: add <name> <file>", 2)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading %s: %v", path, err), 2)
	}

	store, err := catalog.Open(cmd.String("db"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("opening catalog: %v", err), 1)
	}
	defer store.Close()

	hash, err := store.Put(name, string(source))
	if err != nil {
		return cli.Exit(fmt.Sprintf("caching %s: %v", name, err), 1)
	}

	fmt.Printf("cached %s (%s)\n", name, hash[:12])
	return nil
}

var libraryListCommand = &cli.Command{
	Name:   "list",
	Usage:  "list cached theorem libraries",
	Flags:  []cli.Flag{dbFlag},
	Action: runLibraryList,
}

func runLibraryList(ctx context.Context, cmd *cli.Command) error {
	store, err := catalog.Open(cmd.String("db"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("opening catalog: %v", err), 1)
	}
	defer store.Close()

	entries, err := store.List()
	if err != nil {
		return cli.Exit(fmt.Sprintf("listing catalog: %v", err), 1)
	}

	if len(entries) == 0 {
		fmt.Println("(empty)")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s\t%s\t%s\n", e.Name, e.Hash[:12], e.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

var libraryRemoveCommand = &cli.Command{
	Name:      "remove",
	Usage:     "remove a cached theorem library",
	ArgsUsage: "<name>",
	Flags:     []cli.Flag{dbFlag},
	Action:    runLibraryRemove,
}

func runLibraryRemove(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return cli.Exit("proofcheck library remove: missing <name> argument", 2)
	}

	store, err := catalog.Open(cmd.String("db"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("opening catalog: %v", err), 1)
	}
	defer store.Close()

	if err := store.Remove(name); err != nil {
		return cli.Exit(fmt.Sprintf("removing %s: %v", name, err), 1)
	}
	fmt.Printf("removed %s\n", name)
	return nil
}
