package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/pocketpilot/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command tree for shell completion. It runs (and
// exits) only when the shell asks for completions.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"serve": {
			Flags: map[string]complete.Predictor{
				"http": predict.Something,
			},
		},
		"plan": {
			Flags: map[string]complete.Predictor{
				"m":      predict.Something,
				"income": predict.Something,
				"upside": predict.Something,
				"mode":   predict.Set{"balanced", "aggressive", "conservative"},
				"big":    predict.Something,
			},
		},
		"networth": {},
		"close":    {},
		"topic": {
			Args: predict.Set{"tabs", "planning", "months", "api", "assist", "readme", "*"},
		},
		"assist":   {},
		"help":     {},
		"flags":    {},
		"commands": {},
	},
	Flags: map[string]complete.Predictor{
		"sheet-id":     predict.Something,
		"sheets-token": predict.Nothing,
	},
}

func main() {
	completion.Complete("pp")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
