package interp

import (
	"strings"
	"testing"

	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/optimizer"
	"github.com/krobbi/fungus/internal/parser"
	"github.com/krobbi/fungus/internal/pcstate"
)

// runToEnd runs source to completion, following recompile seeds, and
// returns the combined output. It fails the test if the program never
// reaches End within a small number of recompilations (a runaway would
// otherwise hang the test suite).
func runToEnd(t *testing.T, source, stdin string) string {
	t.Helper()

	g := grid.New(source)
	seed := pcstate.Default
	var out strings.Builder
	in := strings.NewReader(stdin)

	for i := 0; i < 64; i++ {
		program, _ := parser.Parse(g, seed)
		optimizer.Optimize(program, g)

		vm := New(g, in, &out)
		r, recompile := vm.Run(program)
		if !recompile {
			return out.String()
		}
		seed = r.Seed
	}

	t.Fatalf("program %q did not reach End after many recompilations", source)
	return ""
}

func TestRunEndsImmediatelyWithNoOutput(t *testing.T) {
	if got := runToEnd(t, "@", ""); got != "" {
		t.Errorf("expected no output, got %q", got)
	}
}

func TestRunPrintsSumAndSpace(t *testing.T) {
	if got := runToEnd(t, `91+.@`, ""); got != "10 " {
		t.Errorf("expected %q, got %q", "10 ", got)
	}
}

func TestRunPrintsHelloWorld(t *testing.T) {
	got := runToEnd(t, `0"!dlroW ,olleH">:#,_@`, "")
	if !strings.Contains(got, "Hello, World!") {
		t.Errorf("expected output to contain %q, got %q", "Hello, World!", got)
	}
}

func TestRunTrampolineSkipsOneCell(t *testing.T) {
	// "1#^_@" pushes 1 and trampolines over '^' onto '_', whose non-zero
	// arm turns left onto '^'. That sends the PC up, wrapping to the '@' on
	// the second row. On a single row the '^' would send the PC back onto
	// itself forever, so the second row is what lets the program terminate.
	got := runToEnd(t, "1#^_@\n  @", "")
	if got != "" {
		t.Errorf("expected no output, got %q", got)
	}
}

func TestRunMatchesBetweenOptimizedAndUnoptimizedOutput(t *testing.T) {
	source := `"ih"<,*25*<@`

	g1 := grid.New(source)
	program1, _ := parser.Parse(g1, pcstate.Default)
	var unoptimized strings.Builder
	New(g1, strings.NewReader(""), &unoptimized).Run(program1)

	optimized := runToEnd(t, source, "")

	if optimized != unoptimized.String() {
		t.Errorf("optimized output %q does not match unoptimized output %q", optimized, unoptimized.String())
	}
}

func TestRunMatchesBetweenOptimizedAndUnoptimizedOutputAroundADivideByZero(t *testing.T) {
	// Regression: the optimizer must never bubble a Print fused from the
	// trailing "9." ahead of the pending "5&/" divide, or the zero-divisor
	// prompt would be reordered after output that should follow it.
	source := `5&/9.@`
	stdin := "0\n7\n"

	g1 := grid.New(source)
	program1, _ := parser.Parse(g1, pcstate.Default)
	var unoptimized strings.Builder
	New(g1, strings.NewReader(stdin), &unoptimized).Run(program1)

	optimized := runToEnd(t, source, stdin)

	if optimized != unoptimized.String() {
		t.Errorf("optimized output %q does not match unoptimized output %q", optimized, unoptimized.String())
	}
	if !strings.HasPrefix(optimized, "What do you want 5/0 to be? ") {
		t.Errorf("expected the divide-by-zero prompt first, got %q", optimized)
	}
}

func TestRunRecompilesOnSelfModification(t *testing.T) {
	// Writes a changed value back into a cell the program has already
	// parsed past; the write must trigger a recompile rather than running
	// against the stale Program. Reaching End without hitting the
	// recompilation cap in runToEnd proves the new Program was built and
	// resumed correctly.
	runToEnd(t, `2 0p>@`, "")
}

func TestDivideByZeroPromptsAndConsumesInput(t *testing.T) {
	got := runToEnd(t, `50/.@`, "7\n")
	if !strings.Contains(got, "What do you want 5/0 to be? ") {
		t.Errorf("expected a divide-by-zero prompt in output, got %q", got)
	}
	if !strings.Contains(got, "7 ") {
		t.Errorf("expected the supplied replacement value 7 to be printed, got %q", got)
	}
}

func TestInputIntYieldsMinusOneOnMalformedInput(t *testing.T) {
	got := runToEnd(t, `&.@`, "not a number\n")
	if !strings.Contains(got, "-1 ") {
		t.Errorf("expected -1 for malformed input, got %q", got)
	}
}
