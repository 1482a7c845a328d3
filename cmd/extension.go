package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// extensionPrefix names the executables that extend investmap: the unknown
// subcommand "foo" runs "investmap-foo".
const extensionPrefix = "investmap-"

// RunExtension attempts to find and execute an external investmap-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(ctx context.Context, subcommand string, args []string) (bool, int) {
	config, err := resolveConfig(currentFlags(), os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return true, 1
	}
	return runExtension(ctx, config, subcommand, args, os.Stdin, os.Stdout, os.Stderr)
}

func runExtension(ctx context.Context, config *Config, subcommand string, args []string, stdin io.Reader, stdout, stderr io.Writer) (bool, int) {
	logger := newLogger(config.Log, stderr)
	name := extensionPrefix + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		logger.Debug().Err(err).Str("extension", name).Msg("extension not found in PATH")
		return false, 0
	}

	cmd := exec.CommandContext(ctx, lp, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// The resolved settings come last so that they win over the inherited ones.
	cmd.Env = append(os.Environ(), config.Environ()...)

	logger.Debug().Str("extension", lp).Strs("args", args).Msg("running extension")
	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) && exitError.ExitCode() >= 0 {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
