package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"slices"

	"github.com/etnz/gbce/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Flags(flag.CommandLine)
	cmd.Register(commander)

	cmd.Completion(flag.CommandLine).Complete("gbce")

	flag.Parse()
	if err := cmd.Configure(flag.CommandLine); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	if name := flag.Arg(0); name != "" && !isBuiltin(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// isBuiltin reports whether name is a command compiled in gbce.
func isBuiltin(name string) bool {
	if slices.Contains([]string{"help", "flags", "commands"}, name) {
		return true
	}
	return slices.ContainsFunc(cmd.Commands, func(c subcommands.Command) bool { return c.Name() == name })
}
