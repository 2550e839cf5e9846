package optimizer

import "github.com/krobbi/fungus/internal/ir"

// threadJumps redirects any exit targeting an empty block that does
// nothing but jump elsewhere, straight to that block's own target. Chains
// are followed to their end; a cycle is detected and left as a self-loop
// rather than redirected.
func threadJumps(ctx *Context) {
	redirects := map[ir.Label]ir.Label{}
	for _, label := range ctx.Labels() {
		mapRedirect(label, ctx, redirects)
	}

	if len(redirects) == 0 {
		return
	}

	for _, label := range ctx.Labels() {
		block := ctx.Block(label)
		switch exit := block.Exit.(type) {
		case ir.Jump:
			block.Exit = ir.Jump{To: redirect(exit.To, redirects, ctx)}
		case ir.Random:
			block.Exit = ir.Random{
				Right: redirect(exit.Right, redirects, ctx),
				Down:  redirect(exit.Down, redirects, ctx),
				Left:  redirect(exit.Left, redirects, ctx),
				Up:    redirect(exit.Up, redirects, ctx),
			}
		case ir.Branch:
			block.Exit = ir.Branch{
				Then: redirect(exit.Then, redirects, ctx),
				Else: redirect(exit.Else, redirects, ctx),
			}
		case ir.End:
			// No labels to redirect.
		}
	}
}

// mapRedirect follows the chain of empty jump-only blocks starting at
// label and records a direct redirect from every label in the chain to its
// final target.
func mapRedirect(label ir.Label, ctx *Context, redirects map[ir.Label]ir.Label) {
	if _, done := redirects[label]; done {
		return
	}

	target, ok := followEmptyJump(label, ctx)
	if !ok {
		return
	}

	chain := []ir.Label{label}
	seen := map[ir.Label]bool{label: true}

	for {
		next, ok := followEmptyJump(target, ctx)
		if !ok {
			break
		}
		if seen[next] {
			return // Infinite loop: abandon the chain, leave the self-loop intact.
		}
		seen[target] = true
		chain = append(chain, target)
		target = next
	}

	for _, source := range chain {
		redirects[source] = target
	}
}

// followEmptyJump returns the jump target of label's block, provided the
// block has no instructions.
func followEmptyJump(label ir.Label, ctx *Context) (ir.Label, bool) {
	block := ctx.Block(label)
	if len(block.Instructions) != 0 {
		return ir.Label{}, false
	}
	jump, ok := block.Exit.(ir.Jump)
	if !ok {
		return ir.Label{}, false
	}
	return jump.To, true
}

func redirect(label ir.Label, redirects map[ir.Label]ir.Label, ctx *Context) ir.Label {
	if target, ok := redirects[label]; ok && target != label {
		ctx.MarkChange()
		return target
	}
	return label
}
