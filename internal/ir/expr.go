package ir

import (
	"fmt"

	"github.com/krobbi/fungus/internal/grid"
)

// Expr is a pure, value-producing tree used inside a Push instruction.
// InputInt and InputChar are "pure" in the sense that they never touch the
// playfield or recompile anything, but they are not foldable constants:
// the optimizer's purity analysis treats them as impure for the purposes of
// reordering and peephole folding.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// Literal is a constant value expression.
type Literal struct {
	Value grid.Value
}

func (Literal) isExpr() {}
func (l Literal) String() string {
	return fmt.Sprintf("%d", int32(l.Value))
}

// InputInt reads a signed decimal integer from standard input.
type InputInt struct{}

func (InputInt) isExpr()        {}
func (InputInt) String() string { return "input_int()" }

// InputChar reads one buffered input character.
type InputChar struct{}

func (InputChar) isExpr()        {}
func (InputChar) String() string { return "input_char()" }

// Binary is a binary expression over two sub-expressions.
type Binary struct {
	Op  BinOp
	Lhs Expr
	Rhs Expr
}

func (Binary) isExpr() {}
func (b Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Lhs, b.Op, b.Rhs)
}

// Unary is a unary expression over a sub-expression.
type Unary struct {
	Op  UnOp
	Rhs Expr
}

func (Unary) isExpr() {}
func (u Unary) String() string {
	return fmt.Sprintf("%s%s", u.Op, u.Rhs)
}

// Purity classifies how freely an expression may be reordered or discarded.
type Purity int

const (
	// Impure expressions may have side effects or non-deterministic results
	// and must never be reordered past a side-effecting instruction or
	// silently dropped.
	Impure Purity = iota

	// PartiallyPure expressions have no side effects but depend on
	// non-local data (the stack or the grid), so repeated evaluation is not
	// guaranteed to produce the same value.
	PartiallyPure

	// Pure expressions have no side effects and no data dependencies; they
	// always evaluate to the same constant.
	Pure
)

// PurityOf returns an expression's purity level.
func PurityOf(e Expr) Purity {
	switch e := e.(type) {
	case Literal:
		return Pure
	case InputInt, InputChar:
		return Impure
	case Binary:
		if e.Op == Divide || e.Op == Modulo {
			return Impure
		}
		return minPurity(PurityOf(e.Lhs), PurityOf(e.Rhs))
	case Unary:
		return PurityOf(e.Rhs)
	default:
		return Impure
	}
}

// CanPop reports whether an expression can be safely discarded without
// observable effect.
func CanPop(e Expr) bool {
	return PurityOf(e) >= PartiallyPure
}

func minPurity(a, b Purity) Purity {
	if a < b {
		return a
	}
	return b
}
