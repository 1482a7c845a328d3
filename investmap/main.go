// Command investmap tracks a portfolio of listed assets stored on an
// investmap server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/investmap/cmd"
	"github.com/etnz/investmap/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	completion(commander).Complete("investmap")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(ctx, name, flag.Args()[1:]); found {
			stop()
			os.Exit(code)
		}
	}
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}

// registered reports whether name is a subcommand of c.
func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		if sub.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the command line for shell completion.
func completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		root.Sub[sub.Name()] = &complete.Command{
			Flags: flagPredictors(fs),
			Args:  argsPredictor(sub.Name(), c),
		}
	})
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

func argsPredictor(name string, c *subcommands.Commander) complete.Predictor {
	switch name {
	case "help":
		var names predict.Set
		c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
			names = append(names, sub.Name())
		})
		return names
	case "topic":
		topics, _ := docs.GetAllTopics()
		return predict.Set(append(topics, "readme", "*"))
	case "apikey":
		return predict.Set{"get", "set"}
	default:
		return predict.Nothing
	}
}
