package optimizer

import (
	"strings"
	"testing"

	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/ir"
	"github.com/krobbi/fungus/internal/parser"
	"github.com/krobbi/fungus/internal/pcstate"
)

func optimizedDump(source string) (*ir.Program, *grid.Grid) {
	g := grid.New(source)
	program, _ := parser.Parse(g, pcstate.Default)
	Optimize(program, g)
	return program, g
}

func TestOptimizeTerminates(t *testing.T) {
	sources := []string{
		"@",
		`91+.@`,
		`0"!dlroW ,olleH">:#,_@`,
		`"ih"<,*25*<@`,
		"1#^_@",
	}
	for _, source := range sources {
		program, _ := optimizedDump(source)
		if _, ok := program.Blocks[ir.MainLabel]; !ok {
			t.Errorf("source %q: Main missing after optimization", source)
		}
	}
}

func TestOptimizeIsIdempotent(t *testing.T) {
	program, g := optimizedDump(`91+.@`)
	before := program.String()
	Optimize(program, g)
	if program.String() != before {
		t.Error("running Optimize again on an already-optimized program should change nothing")
	}
}

func TestOptimizeEveryExitLabelStillExists(t *testing.T) {
	program, _ := optimizedDump(`0"!dlroW ,olleH">:#,_@`)
	for _, label := range program.SortedLabels() {
		block := program.Blocks[label]
		for _, target := range block.Exit.Labels() {
			if _, ok := program.Blocks[target]; !ok {
				t.Errorf("block %s exits to %s, which has no block after optimization", label, target)
			}
		}
	}
}

func TestOptimizeFoldsLiteralAddition(t *testing.T) {
	program, _ := optimizedDump(`91+.@`)
	dump := program.String()
	if !strings.Contains(dump, `print   "10 "`) {
		t.Errorf("expected a folded Print(\"10 \") in the optimized dump, got:\n%s", dump)
	}
}

func TestOptimizeCollapsesDeadEndProgramToOneBlock(t *testing.T) {
	program, _ := optimizedDump("@")
	if len(program.Blocks) != 1 {
		t.Errorf("expected a single block after merging Main into the End block, got %d", len(program.Blocks))
	}
	main := program.Blocks[ir.MainLabel]
	if _, ok := main.Exit.(ir.End); !ok {
		t.Errorf("expected Main's exit to fold down to End, got %v", main.Exit)
	}
}

// TestOptimizeNeverBubblesPrintAheadOfAPendingDivide guards against a
// DivideOp being treated as a reorderable pure stack op: a zero divisor
// makes it prompt the user interactively, so a Print that follows it in
// program order must never be hoisted in front of it, or the optimized
// program's output would diverge from the unoptimized one whenever the
// divisor turns out to be zero (e.g. source 5&/9.@ with stdin "0\n7\n").
func TestOptimizeNeverBubblesPrintAheadOfAPendingDivide(t *testing.T) {
	program, _ := optimizedDump(`5&/9.@`)

	for _, label := range program.SortedLabels() {
		instrs := program.Blocks[label].Instructions
		divideAt, printAt := -1, -1
		for i, instr := range instrs {
			if _, ok := instr.(ir.DivideOp); ok && divideAt == -1 {
				divideAt = i
			}
			if _, ok := instr.(ir.Print); ok && printAt == -1 {
				printAt = i
			}
		}
		if divideAt != -1 && printAt != -1 && printAt < divideAt {
			t.Errorf("block %s: Print was bubbled ahead of a pending DivideOp: %s", label, program.String())
		}
	}
}

func TestOptimizeMergesPrintsInHelloWorld(t *testing.T) {
	// A straight-line variant: the looping hello-world outputs values only
	// known at run time, which no peephole can turn into a Print.
	program, _ := optimizedDump(`"!dlroW ,olleH",,,,,,,,,,,,,@`)
	found := 0
	for _, label := range program.SortedLabels() {
		for _, instr := range program.Blocks[label].Instructions {
			if p, ok := instr.(ir.Print); ok && strings.Contains(p.Text, "Hello, World!") {
				found++
			}
		}
	}
	if found == 0 {
		t.Error("expected the literal-character pushes to fold into a single merged Print containing the message")
	}
}
