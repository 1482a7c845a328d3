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

	"github.com/etnz/investmap/session"
	"github.com/google/subcommands"
)

// loginCmd holds the flags for the 'login' subcommand.
type loginCmd struct {
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "open a session on the investmap server" }
func (*loginCmd) Usage() string {
	return `investmap login -email <email> [-password <password>]

  Authenticates on the server and saves the session token for the next
  commands. The password is read from the standard input when not given.
  Sessions last 30 minutes.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email of the account")
	f.StringVar(&c.password, "password", "", "Password of the account (read from stdin if empty)")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" {
		fmt.Fprintln(os.Stderr, "Error: -email is required")
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

	token, err := a.client.Login(ctx, c.email, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error logging in: %v\n", err)
		return exitStatus(err)
	}
	sess := &session.Session{Token: token, Email: c.email, SavedAt: timeNow()}
	if err := a.store.Save(sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Logged in as %s\n", c.email)
	if exp, ok := sess.ExpiresAt(); ok {
		fmt.Printf("Session expires at %s\n", exp.Local().Format("15:04:05"))
	}
	return subcommands.ExitSuccess
}

// secret returns value, or a line read from in after printing prompt to out.
func secret(value, prompt string, in io.Reader, out io.Writer) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty password")
	}
	return line, nil
}
