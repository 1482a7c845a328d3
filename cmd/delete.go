package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investmap"
	"github.com/google/subcommands"
)

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove a purchase or a sale" }
func (*deleteCmd) Usage() string {
	return `investmap delete <id>

  Removes the record for good.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one record id")
		return subcommands.ExitUsageError
	}
	id, err := investmap.ParseID(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	table, err := a.table(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading assets: %v\n", err)
		return exitStatus(err)
	}
	defer table.Close()

	if err := table.Delete(ctx, id); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting asset: %v\n", err)
		return exitStatus(err)
	}
	fmt.Printf("Deleted asset #%d\n", id)
	return subcommands.ExitSuccess
}
