package repl

import (
	"strings"
	"testing"
)

func TestRunEvaluatesOneLineExpression(t *testing.T) {
	// Each line a user enters becomes a fresh one-row grid, so a multi-row
	// program (like a trampoline jumping to another line) can't be tested
	// here; this exercises arithmetic and output entirely within one row.
	in := strings.NewReader("25*.@\nexit\n")
	var out strings.Builder
	run(in, &out)

	if !strings.Contains(out.String(), "10 ") {
		t.Errorf("output = %q, want it to contain %q", out.String(), "10 ")
	}
}

func TestRunSkipsBlankLines(t *testing.T) {
	in := strings.NewReader("\n\nexit\n")
	var out strings.Builder
	run(in, &out)

	if strings.Count(out.String(), ">>> ") != 3 {
		t.Errorf("expected a prompt for each blank line plus exit, got %q", out.String())
	}
}

func TestRunExitsOnEOFWithoutExitCommand(t *testing.T) {
	in := strings.NewReader("")
	var out strings.Builder
	run(in, &out)

	if !strings.Contains(out.String(), ">>> ") {
		t.Errorf("expected at least one prompt before EOF, got %q", out.String())
	}
}
