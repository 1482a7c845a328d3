package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/investmap"
	"github.com/etnz/investmap/renderer"
	"github.com/google/subcommands"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	watch    bool
	selected string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the assets and the portfolio totals" }
func (*listCmd) Usage() string {
	return `investmap list [-watch] [-select <id>,<id>...]

  Displays every purchase and sale with its investment and profit or loss,
  then the portfolio totals. With -watch, the list is loaded again every
  refresh interval until interrupted.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.watch, "watch", false, "reload the list every refresh interval")
	f.StringVar(&c.selected, "select", "", "comma separated record ids to mark as selected")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sel, err := parseSelection(c.selected)
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

	opts := renderer.Options{Selected: sel, Formatter: a.formatter()}
	printMarkdown(renderer.AssetsMarkdown(table.Summary(), opts))
	if !c.watch {
		return subcommands.ExitSuccess
	}

	err = table.Watch(ctx, a.config.Refresh.GetInterval(), func(s *investmap.Summary) {
		printMarkdown(renderer.AssetsMarkdown(s, opts))
	})
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(os.Stderr, "Error watching assets: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseSelection parses comma or space separated record ids.
func parseSelection(s string) (*investmap.Selection, error) {
	var ids []investmap.ID
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		id, err := investmap.ParseID(field)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return investmap.NewSelection(ids...)
}
