package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investmap"
	"github.com/etnz/investmap/renderer"
	"github.com/google/subcommands"
)

type refreshCmd struct{}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "refresh the current price of up to 8 records" }
func (*refreshCmd) Usage() string {
	return `investmap refresh <id>...

  Selects the records and asks the server to refresh the current price of
  their stock tags, then displays the list again. At most 8 records can be
  selected at once.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: expecting at least one record id")
		return subcommands.ExitUsageError
	}
	var ids []investmap.ID
	for _, arg := range f.Args() {
		id, err := investmap.ParseID(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		ids = append(ids, id)
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

	if err := refreshIDs(ctx, table, ids); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitStatus(err)
	}
	printMarkdown(renderer.AssetsMarkdown(table.Summary(), renderer.Options{Formatter: a.formatter()}))
	return subcommands.ExitSuccess
}

// refreshIDs selects ids, skipping those already selected, and refreshes the
// selection. Nothing is sent when a selection fails.
func refreshIDs(ctx context.Context, table *investmap.Table, ids []investmap.ID) error {
	for _, id := range ids {
		if table.Selection().Has(id) {
			continue
		}
		if _, err := table.Toggle(id); err != nil {
			table.ClearSelection()
			return err
		}
	}
	issued, err := table.RefreshSelected(ctx)
	if err != nil {
		return err
	}
	if !issued {
		return fmt.Errorf("nothing to refresh: %w", investmap.ErrNotFound)
	}
	return nil
}
