package optimizer

import (
	"fmt"

	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/ir"
)

// rewritePeepholes slides a window of size 3, then size 2, across every
// block's instructions, replacing each matched window with its rewrite.
// After a successful rewrite the index steps back by window-1 so the new
// tail is re-examined, matching merge_blocks' driver style of
// retry-until-stable but scoped to a single block's instruction list.
func rewritePeepholes(ctx *Context) {
	for _, label := range ctx.Labels() {
		block := ctx.Block(label)
		block.Instructions = rewriteInstructions(ctx, block.Instructions)
	}
}

func rewriteInstructions(ctx *Context, instrs []ir.Instruction) []ir.Instruction {
	i := 0
	for i < len(instrs) {
		if i+3 <= len(instrs) {
			if rewritten, ok := matchWindow3(ctx, instrs[i], instrs[i+1], instrs[i+2]); ok {
				instrs = spliceWindow(instrs, i, 3, rewritten)
				ctx.MarkChange()
				i -= 2
				if i < 0 {
					i = 0
				}
				continue
			}
		}
		if i+2 <= len(instrs) {
			if rewritten, ok := matchWindow2(ctx, instrs[i], instrs[i+1]); ok {
				instrs = spliceWindow(instrs, i, 2, rewritten)
				ctx.MarkChange()
				if i > 0 {
					i--
				}
				continue
			}
		}
		i++
	}
	return instrs
}

func spliceWindow(instrs []ir.Instruction, at, width int, replacement []ir.Instruction) []ir.Instruction {
	tail := append([]ir.Instruction{}, instrs[at+width:]...)
	instrs = append(instrs[:at], replacement...)
	return append(instrs, tail...)
}

// matchWindow3 attempts every 3-wide pattern.
func matchWindow3(ctx *Context, a, b, c ir.Instruction) ([]ir.Instruction, bool) {
	if k, ok := literalOf(a); ok {
		if l, ok := literalOf(b); ok {
			if binary, ok := c.(ir.BinaryOp); ok {
				return []ir.Instruction{ir.Push{Expr: ir.Literal{Value: binary.Op.Eval(k, l)}}}, true
			}
		}
	}

	if x, ok := literalOf(a); ok {
		if y, ok := literalOf(b); ok {
			if _, ok := c.(ir.Get); ok {
				xi, yi := int(x), int(y)
				if ctx.IsInBounds(xi, yi) {
					return []ir.Instruction{ir.GetAt{X: xi, Y: yi}}, true
				}
				return []ir.Instruction{ir.Push{Expr: ir.Literal{Value: 0}}}, true
			}
		}
	}

	return nil, false
}

// matchWindow2 attempts every 2-wide pattern.
func matchWindow2(ctx *Context, a, b ir.Instruction) ([]ir.Instruction, bool) {
	if v, ok := literalOf(a); ok {
		if unary, ok := b.(ir.UnaryOp); ok {
			return []ir.Instruction{ir.Push{Expr: ir.Literal{Value: unary.Op.Eval(v)}}}, true
		}
	}

	if r, ok := literalOf(a); ok {
		if div, ok := b.(ir.DivideOp); ok && r != 0 {
			return []ir.Instruction{a, ir.BinaryOp{Op: div.Op.AsBinOp()}}, true
		}
	}

	if v, ok := literalOf(a); ok {
		if _, ok := b.(ir.Duplicate); ok {
			return []ir.Instruction{
				ir.Push{Expr: ir.Literal{Value: v}},
				ir.Push{Expr: ir.Literal{Value: v}},
			}, true
		}
	}

	if v, ok := literalOf(a); ok {
		if _, ok := b.(ir.OutputInt); ok {
			return []ir.Instruction{ir.Print{Text: fmt.Sprintf("%d ", v)}}, true
		}
	}

	if v, ok := literalOf(a); ok {
		if _, ok := b.(ir.OutputChar); ok {
			return []ir.Instruction{ir.Print{Text: string(v.Rune())}}, true
		}
	}

	if pa, ok := a.(ir.Print); ok {
		if pb, ok := b.(ir.Print); ok {
			return []ir.Instruction{ir.Print{Text: pa.Text + pb.Text}}, true
		}
	}

	if _, ok := a.(ir.Duplicate); ok {
		if _, ok := b.(ir.Pop); ok {
			return []ir.Instruction{}, true
		}
	}

	if _, ok := a.(ir.Swap); ok {
		if _, ok := b.(ir.Swap); ok {
			return []ir.Instruction{}, true
		}
	}

	if isPushDuplicateOrGetAt(a) {
		if _, ok := b.(ir.Pop); ok {
			return []ir.Instruction{}, true
		}
	}

	if _, ok := a.(ir.UnaryOp); ok {
		if _, ok := b.(ir.Pop); ok {
			return []ir.Instruction{ir.Pop{}}, true
		}
	}

	if _, ok := a.(ir.BinaryOp); ok {
		if _, ok := b.(ir.Pop); ok {
			return []ir.Instruction{ir.Pop{}, ir.Pop{}}, true
		}
	}

	if _, ok := a.(ir.Get); ok {
		if _, ok := b.(ir.Pop); ok {
			return []ir.Instruction{ir.Pop{}, ir.Pop{}}, true
		}
	}

	if _, ok := a.(ir.Duplicate); ok {
		if _, ok := b.(ir.Swap); ok {
			return []ir.Instruction{ir.Duplicate{}}, true
		}
	}

	if isStackOp(a) {
		if _, ok := b.(ir.Print); ok {
			return []ir.Instruction{b, a}, true
		}
	}

	return nil, false
}

func literalOf(instr ir.Instruction) (grid.Value, bool) {
	push, ok := instr.(ir.Push)
	if !ok {
		return 0, false
	}
	literal, ok := push.Expr.(ir.Literal)
	if !ok {
		return 0, false
	}
	return literal.Value, true
}

func isPushDuplicateOrGetAt(instr ir.Instruction) bool {
	switch instr.(type) {
	case ir.Push, ir.Duplicate, ir.GetAt:
		return true
	default:
		return false
	}
}

// isStackOp reports whether an instruction writes only the stack (Get and
// GetAt also read the grid), with no observable effect outside it — which
// makes it safe to reorder
// around a Print, since Print never touches the stack. DivideOp is
// excluded: a zero divisor makes it prompt the user interactively, so it
// cannot be bubbled past a Print until that's been ruled out (the
// matchWindow2 rule above only ever produces a BinaryOp once the divisor
// is already proven nonzero, which is genuinely pure).
func isStackOp(instr ir.Instruction) bool {
	switch instr.(type) {
	case ir.Push, ir.Duplicate, ir.Swap, ir.Pop, ir.BinaryOp, ir.UnaryOp, ir.Get, ir.GetAt:
		return true
	default:
		return false
	}
}
