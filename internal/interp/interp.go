// Package interp runs a parsed and optimized Program against a mutable
// Grid. It owns the stack and the input character buffer; the Program
// itself is read-only during a run, since a self-modifying Put instruction
// is handled by stopping and handing a recompile seed back to the caller
// rather than by mutating the running Program.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/ir"
	"github.com/krobbi/fungus/internal/pcstate"
)

// Interpreter executes a Program against a Grid, one block at a time.
type Interpreter struct {
	grid   *grid.Grid
	stack  []grid.Value
	input  *bufio.Reader
	output *bufio.Writer

	inputChars []rune
}

// New creates an Interpreter over g, reading input from in and writing
// output to out.
func New(g *grid.Grid, in io.Reader, out io.Writer) *Interpreter {
	return &Interpreter{
		grid:   g,
		input:  bufio.NewReader(in),
		output: bufio.NewWriter(out),
	}
}

// Recompile describes a self-modification that invalidated the parsed
// graph: Seed is where execution should resume once a new Program has been
// built, and WriteX/WriteY are the grid position the triggering Put or
// PutAt actually wrote to — a distinct fact from Seed, which is a PC state,
// not a position.
type Recompile struct {
	Seed           pcstate.State
	WriteX, WriteY int
}

// Run executes program from Main until it terminates or a Put instruction
// invalidates the parsed graph. It returns recompile information and true
// in the latter case; otherwise it returns false, having flushed all
// buffered output.
func (vm *Interpreter) Run(program *ir.Program) (r Recompile, recompile bool) {
	label := ir.MainLabel

	for {
		next, r, recompile, ended := vm.StepBlock(program, label)
		if recompile {
			vm.flush()
			return r, true
		}
		if ended {
			vm.flush()
			return Recompile{}, false
		}
		label = next
	}
}

// StepBlock executes a single block and reports where control goes next:
// the label to run after it, recompile information, or termination.
// Exactly one of (next label, recompile, ended) describes what happened.
// This is the single-step primitive a debugger drives directly instead of
// calling Run.
func (vm *Interpreter) StepBlock(program *ir.Program, label ir.Label) (next ir.Label, r Recompile, recompile, ended bool) {
	block, ok := program.Blocks[label]
	if !ok {
		panic(fmt.Sprintf("interp: program has no block for label %s", label))
	}

	if r, ok := vm.execInstructions(block.Instructions); ok {
		return ir.Label{}, r, true, false
	}

	switch exit := block.Exit.(type) {
	case ir.Jump:
		return exit.To, Recompile{}, false, false
	case ir.Random:
		arms := [4]ir.Label{exit.Right, exit.Down, exit.Left, exit.Up}
		return arms[rand.Intn(4)], Recompile{}, false, false
	case ir.Branch:
		if vm.pop() != 0 {
			return exit.Then, Recompile{}, false, false
		}
		return exit.Else, Recompile{}, false, false
	case ir.End:
		return ir.Label{}, Recompile{}, false, true
	default:
		panic(fmt.Sprintf("interp: unhandled exit type %T", exit))
	}
}

// Flush writes any buffered output. A debugger driving StepBlock directly
// should call this before prompting the user, matching Run's own
// before-blocking-I/O flush discipline.
func (vm *Interpreter) Flush() {
	vm.flush()
}

// execInstructions runs a block's instructions in order, stopping early and
// reporting recompile information if a Put invalidates the graph.
func (vm *Interpreter) execInstructions(instrs []ir.Instruction) (Recompile, bool) {
	for _, instr := range instrs {
		if r, recompile := vm.execInstruction(instr); recompile {
			return r, true
		}
	}
	return Recompile{}, false
}

func (vm *Interpreter) execInstruction(instr ir.Instruction) (Recompile, bool) {
	switch instr := instr.(type) {
	case ir.Push:
		vm.push(vm.eval(instr.Expr))
	case ir.BinaryOp:
		rhs, lhs := vm.pop(), vm.pop()
		vm.push(instr.Op.Eval(lhs, rhs))
	case ir.UnaryOp:
		vm.push(instr.Op.Eval(vm.pop()))
	case ir.DivideOp:
		rhs, lhs := vm.pop(), vm.pop()
		if rhs != 0 {
			vm.push(instr.Op.AsBinOp().Eval(lhs, rhs))
		} else {
			vm.promptDivideByZero(lhs, instr.Op)
		}
	case ir.Duplicate:
		vm.push(vm.peek())
	case ir.Swap:
		top, under := vm.pop(), vm.pop()
		vm.push(top)
		vm.push(under)
	case ir.Pop:
		vm.pop()
	case ir.OutputInt:
		fmt.Fprintf(vm.output, "%d ", vm.pop())
	case ir.OutputChar:
		vm.writeRune(vm.pop().Rune())
	case ir.Get:
		y, x := vm.pop(), vm.pop()
		vm.push(vm.getAt(int(x), int(y)))
	case ir.GetAt:
		vm.push(vm.getAt(instr.X, instr.Y))
	case ir.Put:
		y, x, v := vm.pop(), vm.pop(), vm.pop()
		if vm.putChanged(int(x), int(y), v) {
			return Recompile{Seed: instr.Seed, WriteX: int(x), WriteY: int(y)}, true
		}
	case ir.PutAt:
		v := vm.pop()
		if vm.putChanged(instr.X, instr.Y, v) {
			return Recompile{Seed: instr.Seed, WriteX: instr.X, WriteY: instr.Y}, true
		}
	case ir.InputIntInstr:
		vm.push(vm.readInt())
	case ir.InputCharInstr:
		vm.push(vm.readChar())
	case ir.Print:
		vm.output.WriteString(instr.Text)
	default:
		panic(fmt.Sprintf("interp: unhandled instruction type %T", instr))
	}
	return Recompile{}, false
}

// eval evaluates an Expr tree. Binary and Unary are pure; InputInt and
// InputChar may block on user input.
func (vm *Interpreter) eval(e ir.Expr) grid.Value {
	switch e := e.(type) {
	case ir.Literal:
		return e.Value
	case ir.InputInt:
		return vm.readInt()
	case ir.InputChar:
		return vm.readChar()
	case ir.Binary:
		lhs, rhs := vm.eval(e.Lhs), vm.eval(e.Rhs)
		return e.Op.Eval(lhs, rhs)
	case ir.Unary:
		return e.Op.Eval(vm.eval(e.Rhs))
	default:
		panic(fmt.Sprintf("interp: unhandled expr type %T", e))
	}
}

// getAt reads a grid cell, yielding 0 when the position is out of bounds.
func (vm *Interpreter) getAt(x, y int) grid.Value {
	v, ok := vm.grid.Get(x, y)
	if !ok {
		return 0
	}
	return v
}

// putChanged writes v at (x, y) and reports whether the write both landed
// in bounds and actually changed the cell's value — the only case that can
// invalidate a parsed graph.
func (vm *Interpreter) putChanged(x, y int, v grid.Value) bool {
	previous, ok := vm.grid.Put(x, y, v)
	return ok && previous != v
}

// promptDivideByZero asks the user what a division or modulo by zero
// should evaluate to, and pushes their answer.
func (vm *Interpreter) promptDivideByZero(lhs grid.Value, op ir.DivOp) {
	fmt.Fprintf(vm.output, "What do you want %d%s0 to be? ", lhs, op)
	vm.push(vm.readInt())
}

// peek returns the top stack value, or 0 if the stack is empty — Befunge's
// stack is conceptually infinite with zero fill.
func (vm *Interpreter) peek() grid.Value {
	if len(vm.stack) == 0 {
		return 0
	}
	return vm.stack[len(vm.stack)-1]
}

func (vm *Interpreter) push(v grid.Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *Interpreter) pop() grid.Value {
	if len(vm.stack) == 0 {
		return 0
	}
	top := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return top
}

// readInt flushes output, reads one line of standard input, and parses a
// signed decimal integer, yielding -1 on any parse failure.
func (vm *Interpreter) readInt() grid.Value {
	line := vm.readLine()
	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
	if err != nil {
		return -1
	}
	return grid.Value(n)
}

// readChar dequeues the next buffered input character, refilling the
// buffer with one line (including its terminating newline) when empty.
func (vm *Interpreter) readChar() grid.Value {
	if len(vm.inputChars) == 0 {
		vm.inputChars = []rune(vm.readLine())
	}
	if len(vm.inputChars) == 0 {
		return -1
	}
	r := vm.inputChars[0]
	vm.inputChars = vm.inputChars[1:]
	return grid.ValueFromRune(r)
}

// readLine flushes output (so a prompt is visible before blocking) and
// reads one line from standard input, including its trailing newline if
// present.
func (vm *Interpreter) readLine() string {
	vm.flush()
	line, err := vm.input.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return line
}

func (vm *Interpreter) writeRune(r rune) {
	vm.output.WriteString(string(r))
}

func (vm *Interpreter) flush() {
	vm.output.Flush()
}
