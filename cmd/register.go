package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// registerCmd holds the flags for the 'register' subcommand.
type registerCmd struct {
	email    string
	password string
	username string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create an account on the investmap server" }
func (*registerCmd) Usage() string {
	return `investmap register -email <email> -username <name> [-password <password>]

  Creates an account. Use 'investmap login' afterwards to open a session.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email of the new account")
	f.StringVar(&c.username, "username", "", "User name of the new account")
	f.StringVar(&c.password, "password", "", "Password of the new account (read from stdin if empty)")
}

func (c *registerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.username == "" {
		fmt.Fprintln(os.Stderr, "Error: -email and -username are required")
		return subcommands.ExitUsageError
	}
	password, err := secret(c.password, "Password: ", os.Stdin, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	msg, err := a.client.Register(ctx, c.email, password, c.username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error registering: %v\n", err)
		return exitStatus(err)
	}
	fmt.Println(msg)
	return subcommands.ExitSuccess
}
