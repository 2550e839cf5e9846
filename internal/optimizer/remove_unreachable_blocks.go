package optimizer

import "github.com/krobbi/fungus/internal/ir"

// removeUnreachableBlocks deletes every block that cannot be reached from
// Main by following exits, via a breadth-first walk over a deterministic
// frontier.
func removeUnreachableBlocks(ctx *Context) {
	reachable := map[ir.Label]bool{ir.MainLabel: true}
	frontier := []ir.Label{ir.MainLabel}

	for len(frontier) > 0 {
		label := frontier[0]
		frontier = frontier[1:]

		for _, target := range ctx.Block(label).Exit.Labels() {
			if reachable[target] {
				continue
			}
			reachable[target] = true
			frontier = append(frontier, target)
		}
	}

	for _, label := range ctx.Labels() {
		if !reachable[label] {
			ctx.RemoveBlock(label)
			ctx.MarkChange()
		}
	}
}
