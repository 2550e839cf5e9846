package ir

import "github.com/krobbi/fungus/internal/grid"

// BinOp is a pure binary operator over two 32-bit wrapping values. Divide
// and Modulo are only produced by the optimizer once a Divide instruction's
// right-hand operand has been proven non-zero at compile time; pushing them
// from the parser is never valid since the zero-divisor case has an I/O
// side effect (see DivOp).
type BinOp int

const (
	Add BinOp = iota
	Subtract
	Multiply
	Greater
	Divide
	Modulo
)

func (o BinOp) String() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Greater:
		return "`"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	default:
		return "?"
	}
}

// Eval applies the operator to its operands with 32-bit wrapping semantics.
func (o BinOp) Eval(lhs, rhs grid.Value) grid.Value {
	switch o {
	case Add:
		return lhs + rhs
	case Subtract:
		return lhs - rhs
	case Multiply:
		return lhs * rhs
	case Greater:
		return boolValue(lhs > rhs)
	case Divide:
		return lhs / rhs
	case Modulo:
		return lhs % rhs
	default:
		return 0
	}
}

// UnOp is a pure unary operator.
type UnOp int

const (
	Not UnOp = iota
)

func (o UnOp) String() string {
	return "!"
}

// Eval applies the operator to its operand.
func (o UnOp) Eval(rhs grid.Value) grid.Value {
	return boolValue(rhs == 0)
}

// DivOp identifies which half of a division instruction pair is being
// performed. It is kept distinct from BinOp because dividing by zero has an
// I/O side effect (the interactive "what do you want x/0 to be?" prompt),
// which a pure BinOp must never have.
type DivOp int

const (
	DivQuotient DivOp = iota
	DivRemainder
)

func (o DivOp) String() string {
	if o == DivRemainder {
		return "%"
	}
	return "/"
}

// AsBinOp returns the equivalent pure binary operator. Only valid once the
// right-hand operand is known to be non-zero.
func (o DivOp) AsBinOp() BinOp {
	if o == DivRemainder {
		return Modulo
	}
	return Divide
}

func boolValue(b bool) grid.Value {
	if b {
		return 1
	}
	return 0
}
