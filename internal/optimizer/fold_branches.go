package optimizer

import "github.com/krobbi/fungus/internal/ir"

// foldBranches simplifies each block's Branch exit where the condition is
// statically known, trivial, or inverted.
func foldBranches(ctx *Context) {
	for _, label := range ctx.Labels() {
		block := ctx.Block(label)
		branch, ok := block.Exit.(ir.Branch)
		if !ok {
			continue
		}

		if branch.Then == branch.Else {
			block.Instructions = append(block.Instructions, ir.Pop{})
			block.Exit = ir.Jump{To: branch.Then}
			ctx.MarkChange()
			continue
		}

		if n := len(block.Instructions); n > 0 {
			if v, ok := literalOf(block.Instructions[n-1]); ok {
				block.Instructions = block.Instructions[:n-1]
				if v != 0 {
					block.Exit = ir.Jump{To: branch.Then}
				} else {
					block.Exit = ir.Jump{To: branch.Else}
				}
				ctx.MarkChange()
				continue
			}

			if _, ok := block.Instructions[n-1].(ir.UnaryOp); ok && block.Instructions[n-1].(ir.UnaryOp).Op == ir.Not {
				block.Instructions = block.Instructions[:n-1]
				block.Exit = ir.Branch{Then: branch.Else, Else: branch.Then}
				ctx.MarkChange()
			}
		}
	}
}
