// Package debugger provides an interactive, breakpoint-driven stepper over
// a parsed Program. It drives interp.Interpreter one block at a time
// rather than letting it run to completion, so it always debugs the
// unoptimized graph — one block per grid cell — which keeps breakpoint
// coordinates meaningful to someone reading the source grid.
package debugger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/interp"
	"github.com/krobbi/fungus/internal/ir"
	"github.com/krobbi/fungus/internal/pcstate"
)

// DebugState is the stepper's current mode.
type DebugState int

const (
	Paused DebugState = iota
	Running
	StepInto
	Terminated
)

// Breakpoint pauses the stepper whenever execution reaches the block
// keyed to a given grid position, regardless of the direction or mode the
// PC arrives with.
type Breakpoint struct {
	ID       int
	X, Y     int
	Enabled  bool
	HitCount int
}

// Debugger steps a Program one block at a time, checking breakpoints and
// accepting commands between blocks.
type Debugger struct {
	grid  *grid.Grid
	vm    *interp.Interpreter
	out   io.Writer
	in    *bufio.Reader
	state DebugState

	breakpoints map[int]*Breakpoint
	nextBpID    int
}

// New creates a Debugger that steps over g using vm for execution,
// reading commands from stdin and writing transcript output to out.
func New(g *grid.Grid, vm *interp.Interpreter, out io.Writer) *Debugger {
	return &Debugger{
		grid:        g,
		vm:          vm,
		out:         out,
		in:          bufio.NewReader(os.Stdin),
		state:       Paused,
		breakpoints: make(map[int]*Breakpoint),
		nextBpID:    1,
	}
}

// AddBreakpoint registers a breakpoint at a grid position and returns its
// ID.
func (d *Debugger) AddBreakpoint(x, y int) int {
	bp := &Breakpoint{ID: d.nextBpID, X: x, Y: y, Enabled: true}
	d.breakpoints[d.nextBpID] = bp
	fmt.Fprintf(d.out, "breakpoint %d set at %d,%d\n", bp.ID, x, y)
	d.nextBpID++
	return bp.ID
}

// RemoveBreakpoint deletes a breakpoint by ID.
func (d *Debugger) RemoveBreakpoint(id int) bool {
	if bp, ok := d.breakpoints[id]; ok {
		delete(d.breakpoints, id)
		fmt.Fprintf(d.out, "breakpoint %d removed\n", bp.ID)
		return true
	}
	fmt.Fprintf(d.out, "breakpoint %d not found\n", id)
	return false
}

// ListBreakpoints prints every registered breakpoint.
func (d *Debugger) ListBreakpoints() {
	if len(d.breakpoints) == 0 {
		fmt.Fprintln(d.out, "no breakpoints set")
		return
	}
	for id := 1; id < d.nextBpID; id++ {
		bp, ok := d.breakpoints[id]
		if !ok {
			continue
		}
		status := "enabled"
		if !bp.Enabled {
			status = "disabled"
		}
		fmt.Fprintf(d.out, "  %d: %d,%d (%s) hits: %d\n", bp.ID, bp.X, bp.Y, status, bp.HitCount)
	}
}

func (d *Debugger) breakpointAt(x, y int) *Breakpoint {
	for _, bp := range d.breakpoints {
		if bp.Enabled && bp.X == x && bp.Y == y {
			return bp
		}
	}
	return nil
}

// Run steps program from seed, interleaving breakpoint checks and
// recompilation the same way interp.Run would, but pausing at every
// breakpoint or single-stepped block to read a command from the user. It
// returns a recompile seed and true if a self-modification ended the run
// early, or false once the program reaches End or the user quits.
func (d *Debugger) Run(program *ir.Program, seed pcstate.State) (pcstate.State, bool) {
	fmt.Fprintln(d.out, "fungus debugger — paused before the seed state. type 'help' for commands.")
	label := ir.StateLabel(seed)

	for d.state != Terminated {
		state := label.State()
		if bp := d.breakpointAt(state.X, state.Y); bp != nil {
			bp.HitCount++
			fmt.Fprintf(d.out, "\nbreakpoint %d hit at %d,%d\n", bp.ID, state.X, state.Y)
			d.state = Paused
		}

		if d.state == Paused || d.state == StepInto {
			d.showLocation(state)
			d.state = Paused
			d.prompt()
			if d.state == Terminated {
				return pcstate.State{}, false
			}
		}

		next, r, recompile, ended := d.vm.StepBlock(program, label)
		if recompile {
			d.vm.Flush()
			fmt.Fprintf(d.out, "\nself-modification detected at %d,%d; recompiling from %s\n", r.WriteX, r.WriteY, r.Seed)
			return r.Seed, true
		}
		if ended {
			d.vm.Flush()
			fmt.Fprintln(d.out, "\nprogram terminated")
			d.state = Terminated
			return pcstate.State{}, false
		}
		label = next
	}

	return pcstate.State{}, false
}

func (d *Debugger) showLocation(state pcstate.State) {
	value, _ := d.grid.Get(state.X, state.Y)
	fmt.Fprintf(d.out, "-> %d,%d %q (%s, %s)\n", state.X, state.Y, value.PrintableASCII(), state.Mode, state.Direction)
}

// prompt reads and executes commands until one resumes execution (running
// or single-stepping) or terminates the session.
func (d *Debugger) prompt() {
	for {
		fmt.Fprint(d.out, "(fungus-debug) ")
		line, err := d.in.ReadString('\n')
		if err != nil && line == "" {
			d.state = Terminated
			return
		}
		d.execute(strings.TrimSpace(line))
		if d.state != Paused {
			return
		}
	}
}

func (d *Debugger) execute(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "help", "h":
		d.showHelp()
	case "break", "b":
		if len(fields) != 3 {
			fmt.Fprintln(d.out, "usage: break <x> <y>")
			return
		}
		x, xerr := strconv.Atoi(fields[1])
		y, yerr := strconv.Atoi(fields[2])
		if xerr != nil || yerr != nil {
			fmt.Fprintln(d.out, "invalid coordinates")
			return
		}
		d.AddBreakpoint(x, y)
	case "delete":
		if len(fields) != 2 {
			fmt.Fprintln(d.out, "usage: delete <id>")
			return
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintln(d.out, "invalid breakpoint id")
			return
		}
		d.RemoveBreakpoint(id)
	case "list", "l":
		d.ListBreakpoints()
	case "continue", "c":
		d.state = Running
	case "step", "s":
		d.state = StepInto
	case "quit", "q":
		d.state = Terminated
	default:
		fmt.Fprintf(d.out, "unknown command: %s (type 'help' for available commands)\n", fields[0])
	}
}

func (d *Debugger) showHelp() {
	fmt.Fprintln(d.out, "available commands:")
	fmt.Fprintln(d.out, "  help, h            show this help")
	fmt.Fprintln(d.out, "  break, b <x> <y>   set a breakpoint at a grid position")
	fmt.Fprintln(d.out, "  delete <id>        remove a breakpoint by id")
	fmt.Fprintln(d.out, "  list, l            list breakpoints")
	fmt.Fprintln(d.out, "  continue, c        resume execution")
	fmt.Fprintln(d.out, "  step, s            execute a single block")
	fmt.Fprintln(d.out, "  quit, q            end the debugging session")
}
