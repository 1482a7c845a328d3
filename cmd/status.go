package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/investmap/session"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show the configuration and the session" }
func (*statusCmd) Usage() string {
	return `investmap status

  Shows the server, the session file and whether the session is still valid.
  It does not contact the server.
`
}

func (c *statusCmd) SetFlags(f *flag.FlagSet) {}

func (c *statusCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	sess, err := a.store.Load()
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(statusMarkdown(a.config, sess))
	return subcommands.ExitSuccess
}

// statusMarkdown describes the configuration and sess, which may be nil.
func statusMarkdown(config *Config, sess *session.Session) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Status")

	rows := [][]string{
		{"Server", config.Server.URL},
		{"Session file", config.Session.Path},
		{"Refresh interval", config.Refresh.GetInterval().String()},
	}
	switch {
	case sess == nil:
		rows = append(rows, []string{"Session", "none, please login"})
	case sess.Expired(timeNow()):
		rows = append(rows, []string{"Session", "expired, please login again"})
	default:
		state := "active"
		if exp, ok := sess.ExpiresAt(); ok {
			state = "active until " + exp.Local().Format("15:04:05")
		}
		rows = append(rows,
			[]string{"Session", state},
			[]string{"Email", sess.Email},
			[]string{"User id", strconv.Itoa(sess.UserID())},
		)
	}
	doc.Table(md.TableSet{Header: []string{"Setting", "Value"}, Rows: rows})
	return doc.String()
}
