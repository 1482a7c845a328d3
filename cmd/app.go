// Package cmd implements the CLI application to track a portfolio stored on
// an investmap server.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/investmap"
	"github.com/etnz/investmap/client"
	"github.com/etnz/investmap/session"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&loginCmd{}, "session")
	c.Register(&registerCmd{}, "session")
	c.Register(&logoutCmd{}, "session")
	c.Register(&statusCmd{}, "session")
	c.Register(&apikeyCmd{}, "session")

	c.Register(&listCmd{}, "assets")
	c.Register(&addCmd{}, "assets")
	c.Register(&sellCmd{}, "assets")
	c.Register(&editCmd{}, "assets")
	c.Register(&deleteCmd{}, "assets")
	c.Register(&refreshCmd{}, "assets")
	c.Register(&chartCmd{}, "assets")
	c.Register(&shellCmd{}, "assets")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", "", "Path to the TOML configuration file (default $XDG_CONFIG_HOME/investmap/config.toml)")
	serverURL   = flag.String("server", "", "URL of the investmap server")
	sessionFile = flag.String("session-file", "", "Path to the file holding the session token")
	currency    = flag.String("currency", "", "ISO currency code whose symbol is added to amounts")
	verbose     = flag.Bool("v", false, "Print debug logs")
)

// timeNow is replaced in tests.
var timeNow = time.Now

// currentFlags returns the global flags as parsed.
func currentFlags() globalFlags {
	return globalFlags{
		config:      *configFile,
		server:      *serverURL,
		sessionFile: *sessionFile,
		currency:    *currency,
		verbose:     *verbose,
	}
}

// app bundles what a subcommand needs to talk to the server.
type app struct {
	config *Config
	logger zerolog.Logger
	store  *session.Store
	client *client.Client
}

// newApp resolves the configuration and builds the client.
func newApp() (*app, error) {
	config, err := resolveConfig(currentFlags(), os.Getenv)
	if err != nil {
		return nil, err
	}
	return newAppFrom(config), nil
}

func newAppFrom(config *Config) *app {
	logger := newLogger(config.Log, os.Stderr)
	return &app{
		config: config,
		logger: logger,
		store:  session.NewStore(config.Session.Path),
		client: client.NewClient(
			client.WithBaseURL(config.Server.URL),
			client.WithTimeout(config.Client.GetTimeout()),
			client.WithRateLimit(config.Client.RateLimit),
			client.WithLogger(logger),
		),
	}
}

// resume loads the saved session into the client.
func (a *app) resume() (*session.Session, error) {
	sess, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	if sess.Expired(timeNow()) {
		return sess, fmt.Errorf("session expired, please login again: %w", investmap.ErrAuth)
	}
	a.client.SetToken(sess.Token)
	return sess, nil
}

// table resumes the session and returns a loaded table.
func (a *app) table(ctx context.Context) (*investmap.Table, error) {
	if _, err := a.resume(); err != nil {
		return nil, err
	}
	t := investmap.NewTable(a.client, investmap.WithLogger(a.logger))
	if err := t.Load(ctx); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

// formatter returns the amount formatter for the configured currency.
func (a *app) formatter() *money.Formatter {
	return investmap.NewFormatter(a.config.Display.Currency)
}

// exitStatus maps an error to the exit status of a subcommand.
func exitStatus(err error) subcommands.ExitStatus {
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.Is(err, investmap.ErrValidation), errors.Is(err, investmap.ErrLimitExceeded):
		return subcommands.ExitUsageError
	default:
		return subcommands.ExitFailure
	}
}

// renderMarkdown renders markdown for the terminal, falling back to the raw text.
func renderMarkdown(doc string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(160))
	if err != nil {
		return doc + "\n"
	}
	out, err := r.Render(doc)
	if err != nil {
		return doc + "\n"
	}
	return out
}

// printMarkdown prints doc rendered for the terminal.
func printMarkdown(doc string) { fmt.Print(renderMarkdown(doc)) }
