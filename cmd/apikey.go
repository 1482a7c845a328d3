package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// apikeyCmd is the top-level command for the market data API key.
type apikeyCmd struct{}

func (*apikeyCmd) Name() string     { return "apikey" }
func (*apikeyCmd) Synopsis() string { return "show or store the market data API key" }
func (*apikeyCmd) Usage() string {
	return `apikey <subcommand>

The server refreshes current prices with the market data API key of the user.
`
}
func (c *apikeyCmd) SetFlags(f *flag.FlagSet) {}

func (c *apikeyCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "apikey")
	commander.Register(&apikeyGetCmd{}, "")
	commander.Register(&apikeySetCmd{}, "")
	return commander.Execute(ctx, args...)
}

type apikeyGetCmd struct{}

func (*apikeyGetCmd) Name() string     { return "get" }
func (*apikeyGetCmd) Synopsis() string { return "print the stored API key" }
func (*apikeyGetCmd) Usage() string {
	return `investmap apikey get
`
}
func (c *apikeyGetCmd) SetFlags(f *flag.FlagSet) {}

func (c *apikeyGetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if _, err := a.resume(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	key, err := a.client.APIKey(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting API key: %v\n", err)
		return exitStatus(err)
	}
	fmt.Println(key)
	return subcommands.ExitSuccess
}

type apikeySetCmd struct{}

func (*apikeySetCmd) Name() string     { return "set" }
func (*apikeySetCmd) Synopsis() string { return "store the API key" }
func (*apikeySetCmd) Usage() string {
	return `investmap apikey set <key>
`
}
func (c *apikeySetCmd) SetFlags(f *flag.FlagSet) {}

func (c *apikeySetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one API key")
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if _, err := a.resume(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if _, err := a.client.SaveAPIKey(ctx, f.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving API key: %v\n", err)
		return exitStatus(err)
	}
	fmt.Println("API key saved")
	return subcommands.ExitSuccess
}
