package parser

import (
	"testing"

	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/ir"
	"github.com/krobbi/fungus/internal/pcstate"
)

func TestParseIsDeterministic(t *testing.T) {
	g := grid.New(`0"!dlroW ,olleH">:#,_@`)

	p1, _ := Parse(g, pcstate.Default)
	p2, _ := Parse(g, pcstate.Default)

	if p1.String() != p2.String() {
		t.Error("parsing the same grid from the same seed should be byte-for-byte identical")
	}
}

func TestParseEveryExitLabelExists(t *testing.T) {
	g := grid.New("1#^_@")
	program, _ := Parse(g, pcstate.Default)

	if _, ok := program.Blocks[ir.MainLabel]; !ok {
		t.Fatal("Main should always be present")
	}

	for _, label := range program.SortedLabels() {
		block := program.Blocks[label]
		for _, target := range block.Exit.Labels() {
			if _, ok := program.Blocks[target]; !ok {
				t.Errorf("block %s exits to %s, which has no block", label, target)
			}
		}
	}
}

func TestParseEndProgramHasOnlyMainAndAnEndBlock(t *testing.T) {
	g := grid.New("@")
	program, _ := Parse(g, pcstate.Default)

	if len(program.Blocks) != 2 {
		t.Fatalf("expected 2 blocks (main + the '@' cell), got %d", len(program.Blocks))
	}

	seedLabel := ir.StateLabel(pcstate.Default)
	seedBlock, ok := program.Blocks[seedLabel]
	if !ok {
		t.Fatal("missing block for the seed state")
	}
	if _, isEnd := seedBlock.Exit.(ir.End); !isEnd {
		t.Errorf("the '@' cell should exit with End, got %v", seedBlock.Exit)
	}
}

func TestParseTrampolineSkipsOneCell(t *testing.T) {
	g := grid.New("1#^_@")
	program, _ := Parse(g, pcstate.Default)

	startBlock := program.Blocks[ir.StateLabel(pcstate.Default)]
	if len(startBlock.Instructions) != 1 {
		t.Fatalf("expected a single Push instruction at the seed, got %d", len(startBlock.Instructions))
	}
	if _, ok := startBlock.Instructions[0].(ir.Push); !ok {
		t.Errorf("expected Push, got %T", startBlock.Instructions[0])
	}

	trampoline, ok := program.Blocks[ir.StateLabel(pcstate.State{X: 1})]
	want := ir.Jump{To: ir.StateLabel(pcstate.State{X: 3})}
	if !ok || trampoline.Exit != ir.Exit(want) {
		t.Errorf("expected the '#' at x=1 to jump over x=2 to x=3, got %v", trampoline)
	}
}

func TestParseDivideProducesDivideInstruction(t *testing.T) {
	g := grid.New("23/.@")
	program, _ := Parse(g, pcstate.Default)

	found := false
	for _, label := range program.SortedLabels() {
		for _, instr := range program.Blocks[label].Instructions {
			if d, ok := instr.(ir.DivideOp); ok && d.Op == ir.DivQuotient {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected a Divide(Quotient) instruction to be parsed from '/'")
	}
}
