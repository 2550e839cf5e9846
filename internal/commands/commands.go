// Package commands implements the fungus CLI's subcommands. Each function
// takes the subcommand's already-parsed arguments and returns an error
// to report at the process boundary; it never calls os.Exit itself.
package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/krobbi/fungus/internal/debugger"
	ferrors "github.com/krobbi/fungus/internal/errors"
	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/inspector"
	"github.com/krobbi/fungus/internal/interp"
	"github.com/krobbi/fungus/internal/optimizer"
	"github.com/krobbi/fungus/internal/parser"
	"github.com/krobbi/fungus/internal/pcstate"
	"github.com/krobbi/fungus/internal/repl"
	"github.com/krobbi/fungus/internal/tracedb"
)

// maxRecompilations bounds how many times a single run will rebuild its
// Program before giving up, so a program that never stops self-modifying
// cannot wedge the CLI in a silent infinite loop.
const maxRecompilations = 10000

// RunOptions configures RunCommand.
type RunOptions struct {
	Path string

	// InspectAddr, if non-empty, serves a live dump-and-event view of the
	// running program at this address (e.g. "127.0.0.1:8765").
	InspectAddr string

	// TraceDriver and TraceDSN, if TraceDriver is non-empty, persist every
	// recompilation to a SQL database ("sqlite", "postgres", or "mysql").
	TraceDriver string
	TraceDSN    string
}

// RunCommand interprets a source file to completion, following any
// self-modification recompilations along the way.
func RunCommand(opts RunOptions) error {
	g, err := loadGrid(opts.Path)
	if err != nil {
		return err
	}

	store, err := openTraceStore(opts.TraceDriver, opts.TraceDSN)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	var insp *inspector.Server
	defer func() {
		if insp != nil {
			insp.Stop(context.Background())
		}
	}()

	seed := pcstate.Default
	for i := 0; i < maxRecompilations; i++ {
		program, _ := parser.Parse(g, seed)
		optimizer.Optimize(program, g)

		if opts.InspectAddr != "" {
			if insp == nil {
				insp = inspector.New(opts.InspectAddr, program)
				if err := insp.Start(); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "inspector listening on %s\n", opts.InspectAddr)
			} else {
				insp.SetProgram(program)
			}
		}

		vm := interp.New(g, os.Stdin, os.Stdout)
		r, recompile := vm.Run(program)
		if !recompile {
			return nil
		}

		if store != nil {
			if err := store.Record(tracedb.Event{
				Source:        opts.Path,
				WriteX:        r.WriteX,
				WriteY:        r.WriteY,
				SeedX:         r.Seed.X,
				SeedY:         r.Seed.Y,
				SeedMode:      r.Seed.Mode.String(),
				SeedDirection: r.Seed.Direction.String(),
				OccurredAt:    time.Now(),
			}); err != nil {
				fmt.Fprintf(os.Stderr, "tracedb: %v\n", err)
			}
		}
		if insp != nil {
			insp.Broadcast(fmt.Sprintf("recompile at %d,%d, resuming from %s", r.WriteX, r.WriteY, r.Seed))
		}

		seed = r.Seed
	}

	return fmt.Errorf("exceeded %s recompilations without terminating", humanize.Comma(maxRecompilations))
}

// DumpCommand parses and optimizes a source file and writes the resulting
// Program's deterministic text dump to standard output.
func DumpCommand(path string) error {
	g, err := loadGrid(path)
	if err != nil {
		return err
	}

	program, _ := parser.Parse(g, pcstate.Default)
	optimizer.Optimize(program, g)

	fmt.Println(program.String())
	fmt.Fprintf(os.Stderr, "%s blocks\n", humanize.Comma(int64(len(program.Blocks))))
	return nil
}

// DebugCommand runs a source file under the interactive stepper, following
// recompilations across debugging sessions until the program ends or the
// user quits.
func DebugCommand(path string) error {
	g, err := loadGrid(path)
	if err != nil {
		return err
	}

	seed := pcstate.Default
	for i := 0; i < maxRecompilations; i++ {
		program, _ := parser.Parse(g, seed)
		vm := interp.New(g, os.Stdin, os.Stdout)
		dbg := debugger.New(g, vm, os.Stdout)

		nextSeed, recompile := dbg.Run(program, seed)
		if !recompile {
			return nil
		}
		seed = nextSeed
	}

	return fmt.Errorf("exceeded %s recompilations without terminating", humanize.Comma(maxRecompilations))
}

// ReplCommand starts the interactive line-at-a-time mode.
func ReplCommand() error {
	repl.Start()
	return nil
}

func loadGrid(path string) (*grid.Grid, error) {
	if path == "" {
		return nil, ferrors.NewUsageError("a source file path is required")
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.NewSourceError(path, err)
	}
	return grid.New(string(source)), nil
}

func openTraceStore(driver, dsn string) (*tracedb.Store, error) {
	if driver == "" {
		return nil, nil
	}
	return tracedb.Open(driver, dsn)
}
