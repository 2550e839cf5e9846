// Package repl provides a line-at-a-time interactive mode: each line
// entered is treated as a fresh one-row grid, parsed, optimized, and run
// to completion before the next prompt.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/interp"
	"github.com/krobbi/fungus/internal/optimizer"
	"github.com/krobbi/fungus/internal/parser"
	"github.com/krobbi/fungus/internal/pcstate"
)

// Start runs the interactive loop against stdin/stdout until the user
// types "exit" or sends EOF.
func Start() {
	run(os.Stdin, os.Stdout)
}

func run(in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "fungus repl | type 'exit' to quit")
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, ">>> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" {
			break
		}
		if line == "" {
			continue
		}

		g := grid.New(line)
		seed := pcstate.Default

		// A line may self-modify; follow recompile seeds to completion the
		// same way the top-level driver does for a file.
		for i := 0; i < 64; i++ {
			program, _ := parser.Parse(g, seed)
			optimizer.Optimize(program, g)

			vm := interp.New(g, in, out)
			r, recompile := vm.Run(program)
			if !recompile {
				break
			}
			seed = r.Seed
		}
		fmt.Fprintln(out)
	}
}
