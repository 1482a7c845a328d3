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

// assetFlags are the form fields of a purchase, a sale or an edit.
type assetFlags struct {
	tag      string
	exchange string
	price    string
	quantity string
}

func (a *assetFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.tag, "tag", "", "stock tag, for instance AAPL")
	f.StringVar(&a.exchange, "exchange", "", "exchange the stock is listed on, for instance NASDAQ")
	f.StringVar(&a.price, "price", "", "price per unit, a dot or a comma as decimal separator")
	f.StringVar(&a.quantity, "quantity", "", "number of units")
}

func (a *assetFlags) input() (investmap.AssetInput, error) {
	return investmap.ParseAssetInput(a.tag, a.exchange, a.price, a.quantity)
}

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	assetFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a purchase" }
func (*addCmd) Usage() string {
	return `investmap add -tag <tag> -exchange <exchange> -price <price> -quantity <quantity>

  Records the purchase of a quantity of a stock at a price.
`
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return submitAsset(ctx, &c.assetFlags, "adding asset", (*investmap.Table).Add)
}

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	assetFlags
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale" }
func (*sellCmd) Usage() string {
	return `investmap sell -tag <tag> -exchange <exchange> -price <price> -quantity <quantity>

  Records the sale of a quantity of a stock at a price.
`
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return submitAsset(ctx, &c.assetFlags, "selling asset", (*investmap.Table).Sell)
}

// submitAsset validates the form, sends it with submit and prints the new list.
func submitAsset(ctx context.Context, form *assetFlags, what string, submit func(*investmap.Table, context.Context, investmap.AssetInput) error) subcommands.ExitStatus {
	in, err := form.input()
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

	if err := submit(table, ctx, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
		return exitStatus(err)
	}
	printMarkdown(renderer.AssetsMarkdown(table.Summary(), renderer.Options{Formatter: a.formatter()}))
	return subcommands.ExitSuccess
}
