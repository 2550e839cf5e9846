package ir

import (
	"fmt"

	"github.com/krobbi/fungus/internal/pcstate"
)

// Instruction is one step of a Block's straight-line body. Side-effecting
// instructions never appear inside an Expr tree; Put carries its own seed
// state because it has both a side effect (the write) and a recompilation
// seed to resume from if that write invalidates the parsed graph.
type Instruction interface {
	fmt.Stringer
	isInstruction()
}

// Push evaluates an expression and pushes the result.
type Push struct{ Expr Expr }

func (Push) isInstruction()  {}
func (p Push) String() string { return fmt.Sprintf("push    %s", p.Expr) }

// BinaryOp pops two values and pushes the result of a pure binary operator.
type BinaryOp struct{ Op BinOp }

func (BinaryOp) isInstruction()  {}
func (b BinaryOp) String() string { return fmt.Sprintf("binary  %s", b.Op) }

// UnaryOp pops one value and pushes the result of a pure unary operator.
type UnaryOp struct{ Op UnOp }

func (UnaryOp) isInstruction()  {}
func (u UnaryOp) String() string { return fmt.Sprintf("unary   %s", u.Op) }

// DivideOp pops two values and divides them. If the right-hand operand is
// zero this has an I/O side effect: it prompts the user for a replacement
// result instead of pushing a quotient or remainder.
type DivideOp struct{ Op DivOp }

func (DivideOp) isInstruction()  {}
func (d DivideOp) String() string { return fmt.Sprintf("divide  %s", d.Op) }

// Duplicate pushes a copy of the top stack value.
type Duplicate struct{}

func (Duplicate) isInstruction()  {}
func (Duplicate) String() string { return "duplicate" }

// Swap exchanges the top two stack values.
type Swap struct{}

func (Swap) isInstruction()  {}
func (Swap) String() string { return "swap" }

// Pop discards the top stack value.
type Pop struct{}

func (Pop) isInstruction()  {}
func (Pop) String() string { return "pop" }

// OutputInt pops and prints a value as a decimal integer followed by a
// single space.
type OutputInt struct{}

func (OutputInt) isInstruction()  {}
func (OutputInt) String() string { return "output_int" }

// OutputChar pops and prints a value as a character.
type OutputChar struct{}

func (OutputChar) isInstruction()  {}
func (OutputChar) String() string { return "output_char" }

// Get pops y then x and pushes the grid value there, or 0 if out of bounds.
type Get struct{}

func (Get) isInstruction()  {}
func (Get) String() string { return "get" }

// Put pops y, x and v and writes v to the grid. Seed is the PC state to
// resume from if this write invalidates an already-parsed block.
type Put struct{ Seed pcstate.State }

func (Put) isInstruction()  {}
func (p Put) String() string { return fmt.Sprintf("put     %s", p.Seed) }

// InputIntInstr reads a signed decimal integer from standard input and
// pushes it. It exists alongside the Push(InputInt{}) expression form so
// that instruction-level peepholes (e.g. "Push(v) Duplicate") never need to
// special-case input reads hiding inside a Push.
type InputIntInstr struct{}

func (InputIntInstr) isInstruction()  {}
func (InputIntInstr) String() string { return "input_int" }

// InputCharInstr reads the next buffered input character and pushes it.
type InputCharInstr struct{}

func (InputCharInstr) isInstruction()  {}
func (InputCharInstr) String() string { return "input_char" }

// Print writes a literal string to standard output with no stack effect.
// It is produced by the optimizer by fusing Push(Literal)+OutputInt/Char
// pairs, and by merging adjacent Print instructions.
type Print struct{ Text string }

func (Print) isInstruction()  {}
func (p Print) String() string { return fmt.Sprintf("print   %q", p.Text) }

// GetAt is a Get specialized to a statically-known, in-bounds position.
type GetAt struct{ X, Y int }

func (GetAt) isInstruction()  {}
func (g GetAt) String() string { return fmt.Sprintf("get_at  %d,%d", g.X, g.Y) }

// PutAt is a Put specialized to a statically-known, in-bounds position.
type PutAt struct {
	X, Y int
	Seed pcstate.State
}

func (PutAt) isInstruction()  {}
func (p PutAt) String() string { return fmt.Sprintf("put_at  %d,%d %s", p.X, p.Y, p.Seed) }
