package optimizer

import (
	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/ir"
)

// Optimize rewrites program in place until a full pass makes no change.
// Termination is guaranteed because every mutation strictly reduces a
// well-ordering over (instruction count, block count, number of branch and
// jump-to-empty exits); g is consulted to prove Get positions statically
// in-bounds.
func Optimize(program *ir.Program, g *grid.Grid) {
	ctx := newContext(program, g)

	for ctx.ShouldRunPass() {
		runPass(ctx)
	}
}

// runPass runs one iteration of the fixed pass sequence.
func runPass(ctx *Context) {
	mergeBlocks(ctx)
	threadJumps(ctx)
	removeUnreachableBlocks(ctx)
	rewritePeepholes(ctx)
	foldBranches(ctx)
	replaceJumpsToExits(ctx)
}
