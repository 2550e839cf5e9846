package ir

import (
	"math"
	"testing"

	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/pcstate"
)

func TestBinOpEvalWraps32Bit(t *testing.T) {
	lhs := grid.Value(math.MinInt32)
	rhs := grid.Value(-1)
	if got := Multiply.Eval(lhs, rhs); got != grid.Value(math.MinInt32) {
		t.Errorf("INT_MIN * -1 = %d, want %d (wrapping)", got, math.MinInt32)
	}
}

func TestBinOpAddMatchesWrappingAddition(t *testing.T) {
	got := Add.Eval(grid.Value(2_000_000_000), grid.Value(2_000_000_000))
	want := grid.Value(-294967296) // 4_000_000_000 - 2^32
	if got != want {
		t.Errorf("Add.Eval overflow = %d, want %d", got, want)
	}
}

func TestUnOpNot(t *testing.T) {
	if Not.Eval(0) != 1 {
		t.Error("!0 should be 1")
	}
	if Not.Eval(5) != 0 {
		t.Error("!5 should be 0")
	}
}

func TestDivOpAsBinOp(t *testing.T) {
	if DivQuotient.AsBinOp() != Divide {
		t.Error("DivQuotient.AsBinOp() should be Divide")
	}
	if DivRemainder.AsBinOp() != Modulo {
		t.Error("DivRemainder.AsBinOp() should be Modulo")
	}
}

func TestExprPurity(t *testing.T) {
	if PurityOf(Literal{Value: 3}) != Pure {
		t.Error("a literal should be pure")
	}
	if PurityOf(InputInt{}) != Impure {
		t.Error("input_int should be impure")
	}
	if PurityOf(Binary{Op: Divide, Lhs: Literal{}, Rhs: Literal{}}) != Impure {
		t.Error("a runtime divide should be treated as impure (may prompt)")
	}
	if !CanPop(Literal{Value: 1}) {
		t.Error("a pure literal should be safely poppable")
	}
	if CanPop(InputInt{}) {
		t.Error("input_int should not be safely poppable")
	}
}

func TestLabelOrdering(t *testing.T) {
	a := MainLabel
	b := StateLabel(pcstate.State{})
	if !a.Less(b) {
		t.Error("Main should sort before any State label")
	}
	if b.Less(a) {
		t.Error("a State label should never sort before Main")
	}

	c := StateLabel(pcstate.State{X: 1})
	if !b.Less(c) {
		t.Error("State labels should order by their underlying PC state")
	}
}

func TestProgramStringIsDeterministic(t *testing.T) {
	seed := pcstate.State{X: 1}
	p := New(StateLabel(seed))
	p.Blocks[StateLabel(seed)] = &Block{Exit: End{}}

	first := p.String()
	second := p.String()
	if first != second {
		t.Error("Program.String() should be stable across repeated calls")
	}
}
