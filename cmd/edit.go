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

// editCmd holds the flags for the 'edit' subcommand.
type editCmd struct {
	assetFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change a purchase or a sale" }
func (*editCmd) Usage() string {
	return `investmap edit [-tag <tag>] [-exchange <exchange>] [-price <price>] [-quantity <quantity>] <id>

  Changes the fields given as flags, the others keep their current value.
`
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	current, ok := investmap.Find(table.Records(), id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: asset %d: %v\n", id, investmap.ErrNotFound)
		return subcommands.ExitFailure
	}
	in, err := c.merge(current).input()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := table.Update(ctx, id, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating asset: %v\n", err)
		return exitStatus(err)
	}
	printMarkdown(renderer.AssetsMarkdown(table.Summary(), renderer.Options{Formatter: a.formatter()}))
	return subcommands.ExitSuccess
}

// merge fills the fields left empty with the values of r.
func (c *editCmd) merge(r investmap.AssetRecord) *assetFlags {
	merged := c.assetFlags
	if merged.tag == "" {
		merged.tag = r.StockTag
	}
	if merged.exchange == "" {
		merged.exchange = r.Exchange
	}
	if merged.price == "" {
		merged.price = r.Price.Decimal().String()
	}
	if merged.quantity == "" {
		merged.quantity = r.Quantity.String()
	}
	return &merged
}
