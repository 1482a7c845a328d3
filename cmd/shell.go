package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/investmap"
	"github.com/etnz/investmap/renderer"
	"github.com/google/subcommands"
)

type shellCmd struct{}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "open an interactive session on the portfolio" }
func (*shellCmd) Usage() string {
	return `investmap shell

  Reads commands from the standard input, one per line. Type 'help' to list
  them. The list is reloaded after every change and every refresh interval.
`
}

func (c *shellCmd) SetFlags(f *flag.FlagSet) {}

func (c *shellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	go func() {
		if err := table.Watch(ctx, a.config.Refresh.GetInterval(), nil); err != nil {
			a.logger.Debug().Err(err).Msg("watch stopped")
		}
	}()

	sh := &shell{table: table, out: os.Stdout, formatter: a.formatter(), render: renderMarkdown}
	sh.list()
	if err := sh.run(ctx, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

const shellHelp = `Commands:
  list                                           print the assets and the totals
  toggle <id>                                    select or unselect a record for refresh
  clear                                          empty the selection
  refresh                                        refresh the current price of the selection
  add <tag> <exchange> <price> <quantity>        record a purchase
  sell <tag> <exchange> <price> <quantity>       record a sale
  edit <id> <tag> <exchange> <price> <quantity>  change a record
  delete <id>                                    remove a record
  help                                           print this help
  quit                                           end the session
`

// shell is a line oriented session over one table. The selection lives in
// the table and persists from one line to the next.
type shell struct {
	table     *investmap.Table
	out       io.Writer
	formatter *money.Formatter
	render    func(string) string
}

// errQuit ends the session.
var errQuit = errors.New("quit")

// run executes the commands read from in until quit, the end of in, or ctx is done.
func (sh *shell) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		err := sh.exec(ctx, strings.Fields(scanner.Text()))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(sh.out, "Error: %v\n", err)
		}
	}
}

// exec runs a single command line.
func (sh *shell) exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}
	name, args := strings.ToLower(args[0]), args[1:]
	switch name {
	case "list", "ls":
		sh.list()
		return nil

	case "toggle", "select":
		if len(args) != 1 {
			return errors.New("usage: toggle <id>")
		}
		id, err := investmap.ParseID(args[0])
		if err != nil {
			return err
		}
		selected, err := sh.table.Toggle(id)
		if err != nil {
			return err
		}
		state := "unselected"
		if selected {
			state = "selected"
		}
		fmt.Fprintf(sh.out, "#%d %s (%d/%d)\n", id, state, sh.table.Selection().Len(), investmap.MaxSelection)
		return nil

	case "clear":
		sh.table.ClearSelection()
		fmt.Fprintln(sh.out, "Selection cleared")
		return nil

	case "refresh":
		issued, err := sh.table.RefreshSelected(ctx)
		if err != nil {
			return err
		}
		if !issued {
			fmt.Fprintln(sh.out, "Nothing to refresh, toggle some records first")
			return nil
		}
		sh.list()
		return nil

	case "add", "sell":
		if len(args) != 4 {
			return fmt.Errorf("usage: %s <tag> <exchange> <price> <quantity>", name)
		}
		in, err := investmap.ParseAssetInput(args[0], args[1], args[2], args[3])
		if err != nil {
			return err
		}
		submit := sh.table.Add
		if name == "sell" {
			submit = sh.table.Sell
		}
		if err := submit(ctx, in); err != nil {
			return err
		}
		sh.list()
		return nil

	case "edit":
		if len(args) != 5 {
			return errors.New("usage: edit <id> <tag> <exchange> <price> <quantity>")
		}
		id, err := investmap.ParseID(args[0])
		if err != nil {
			return err
		}
		in, err := investmap.ParseAssetInput(args[1], args[2], args[3], args[4])
		if err != nil {
			return err
		}
		if err := sh.table.Update(ctx, id, in); err != nil {
			return err
		}
		sh.list()
		return nil

	case "delete", "rm":
		if len(args) != 1 {
			return errors.New("usage: delete <id>")
		}
		id, err := investmap.ParseID(args[0])
		if err != nil {
			return err
		}
		if err := sh.table.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "Deleted asset #%d\n", id)
		return nil

	case "help", "?":
		fmt.Fprint(sh.out, shellHelp)
		return nil

	case "quit", "exit":
		return errQuit

	default:
		return fmt.Errorf("unknown command %q, type 'help' to list the commands", name)
	}
}

// list prints the assets with the current selection.
func (sh *shell) list() {
	doc := renderer.AssetsMarkdown(sh.table.Summary(), renderer.Options{
		Selected:  sh.table.Selection(),
		Formatter: sh.formatter,
	})
	fmt.Fprint(sh.out, sh.render(doc))
}
