package optimizer

import "github.com/krobbi/fungus/internal/ir"

// mergeBlocks folds a predecessor and its successor together wherever the
// predecessor's exit is an unconditional jump to the successor, the
// successor is not the predecessor itself, and the successor has no other
// incoming edge anywhere in the graph.
func mergeBlocks(ctx *Context) {
	for {
		predecessor, successor, ok := findMergeableEdge(ctx)
		if !ok {
			return
		}

		successorBlock := ctx.Block(successor)
		predecessorBlock := ctx.Block(predecessor)

		predecessorBlock.Instructions = append(predecessorBlock.Instructions, successorBlock.Instructions...)
		predecessorBlock.Exit = successorBlock.Exit
		ctx.RemoveBlock(successor)
		ctx.MarkChange()
	}
}

func findMergeableEdge(ctx *Context) (predecessor, successor ir.Label, ok bool) {
	for _, p := range ctx.Labels() {
		s, isJump := ctx.ForeignJumpSuccessor(p)
		if !isJump {
			continue
		}

		if hasOtherPredecessor(ctx, p, s) {
			continue
		}

		return p, s, true
	}
	return ir.Label{}, ir.Label{}, false
}

// hasOtherPredecessor reports whether any label besides exclude has an edge
// into target.
func hasOtherPredecessor(ctx *Context, exclude, target ir.Label) bool {
	for _, l := range ctx.Labels() {
		if l == exclude {
			continue
		}
		if ctx.HasEdge(l, target) {
			return true
		}
	}
	return false
}
