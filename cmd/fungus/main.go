// cmd/fungus/main.go
package main

import (
	"fmt"
	"os"

	"github.com/krobbi/fungus/internal/commands"
	ferrors "github.com/krobbi/fungus/internal/errors"
)

const version = "0.1.0"

// commandAliases maps short forms to their full subcommand name.
var commandAliases = map[string]string{
	"r": "run",
	"d": "dump",
	"g": "debug",
	"i": "repl",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		os.Exit(1)
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}
	args = args[1:]

	var err error
	switch cmd {
	case "--help", "-h", "help":
		showUsage()
		return
	case "--version", "-v", "version":
		fmt.Println("fungus " + version)
		return
	case "run":
		err = runCommand(args)
	case "dump":
		err = dumpCommand(args)
	case "debug":
		err = commands.DebugCommand(firstArg(args))
	case "repl":
		err = commands.ReplCommand()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s (see 'fungus help')\n", cmd)
		os.Exit(1)
	}

	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func runCommand(args []string) error {
	opts := commands.RunOptions{}
	var positional []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--inspect":
			if i+1 >= len(args) {
				return ferrors.NewUsageError("--inspect requires an address")
			}
			i++
			opts.InspectAddr = args[i]
		case "--trace":
			if i+2 >= len(args) {
				return ferrors.NewUsageError("--trace requires a driver and a data source name")
			}
			opts.TraceDriver = args[i+1]
			opts.TraceDSN = args[i+2]
			i += 2
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) != 1 {
		return ferrors.NewUsageError("usage: fungus run <file> [--inspect addr] [--trace driver dsn]")
	}
	opts.Path = positional[0]
	return commands.RunCommand(opts)
}

func dumpCommand(args []string) error {
	if len(args) != 1 {
		return ferrors.NewUsageError("usage: fungus dump <file>")
	}
	return commands.DumpCommand(args[0])
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func reportError(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
}

func showUsage() {
	fmt.Println("fungus — an optimizing Befunge-93 interpreter")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fungus run <file>                      Run a program                        (alias: r)")
	fmt.Println("  fungus run <file> --inspect <addr>      ...and serve a live inspector on addr")
	fmt.Println("  fungus run <file> --trace <driver> <dsn> ...and persist recompilations")
	fmt.Println("  fungus dump <file>                      Print the optimized program          (alias: d)")
	fmt.Println("  fungus debug <file>                     Step through a program interactively  (alias: g)")
	fmt.Println("  fungus repl                              Start the line-at-a-time REPL         (alias: i)")
	fmt.Println()
	fmt.Println("  fungus help                             Show this help")
	fmt.Println("  fungus --version                        Show the version")
}
