package optimizer

import "github.com/krobbi/fungus/internal/ir"

// replaceJumpsToExits inlines the exit of an empty target block into any
// block that jumps straight to it, when doing so is strictly better: an
// End is always safe to inline; a Branch is only inlined when the jumping
// block's last instruction is a Push(Literal) or Unary(Not), since those
// are exactly the shapes foldBranches can then fold away.
func replaceJumpsToExits(ctx *Context) {
	for _, label := range ctx.Labels() {
		block := ctx.Block(label)
		jump, ok := block.Exit.(ir.Jump)
		if !ok {
			continue
		}

		target := ctx.Block(jump.To)
		if len(target.Instructions) != 0 {
			continue
		}

		switch exit := target.Exit.(type) {
		case ir.End:
			block.Exit = ir.End{}
			ctx.MarkChange()
		case ir.Branch:
			if n := len(block.Instructions); n > 0 && endsWithFoldableCondition(block.Instructions[n-1]) {
				block.Exit = exit
				ctx.MarkChange()
			}
		}
	}
}

func endsWithFoldableCondition(instr ir.Instruction) bool {
	if _, ok := literalOf(instr); ok {
		return true
	}
	unary, ok := instr.(ir.UnaryOp)
	return ok && unary.Op == ir.Not
}
