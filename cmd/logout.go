package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investmap/session"
	"github.com/google/subcommands"
)

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "close the current session" }
func (*logoutCmd) Usage() string {
	return `investmap logout

  Tells the server the session ends and forgets the local token, even when
  the server cannot be reached.
`
}

func (c *logoutCmd) SetFlags(f *flag.FlagSet) {}

func (c *logoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	if _, err := a.resume(); err == nil {
		if err := a.client.Logout(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("server logout failed")
		}
	} else if !errors.Is(err, session.ErrNoSession) {
		a.logger.Debug().Err(err).Msg("skipping server logout")
	}

	if err := a.store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing session: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Logged out")
	return subcommands.ExitSuccess
}
