// Package optimizer rewrites a parsed Program to a fixed point: merging
// blocks, threading jumps, dropping unreachable blocks, peephole-rewriting
// instructions, and folding branches. Each pass reports whether it changed
// anything; the driver keeps retrying the full pass sequence until a full
// iteration makes no change.
package optimizer

import (
	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/ir"
)

// Context is per-invocation state threaded through every pass. There is no
// package-level "should run another pass" flag; it lives here so that
// optimizing two programs concurrently (e.g. during testing) never
// interferes.
type Context struct {
	program       *ir.Program
	grid          *grid.Grid
	shouldRunPass bool
}

// newContext creates a context that starts by requesting one pass.
func newContext(program *ir.Program, g *grid.Grid) *Context {
	return &Context{program: program, grid: g, shouldRunPass: true}
}

// ShouldRunPass reports whether a pass should run, and clears the flag: a
// pass must call MarkChange to request another iteration.
func (c *Context) ShouldRunPass() bool {
	should := c.shouldRunPass
	c.shouldRunPass = false
	return should
}

// MarkChange records that a mutation was made, so the driver runs another
// iteration of the pass sequence.
func (c *Context) MarkChange() {
	c.shouldRunPass = true
}

// IsInBounds reports whether a position lies within the grid being
// optimized against, used to prove Get positions statically safe.
func (c *Context) IsInBounds(x, y int) bool {
	return c.grid.InBounds(x, y)
}

// Labels returns every label currently in the program, in deterministic
// order.
func (c *Context) Labels() []ir.Label {
	return c.program.SortedLabels()
}

// Block returns the block at a label.
func (c *Context) Block(label ir.Label) *ir.Block {
	return c.program.Blocks[label]
}

// RemoveBlock deletes a block from the program.
func (c *Context) RemoveBlock(label ir.Label) {
	delete(c.program.Blocks, label)
}

// HasEdge reports whether predecessor's exit can transfer control to
// successor.
func (c *Context) HasEdge(predecessor, successor ir.Label) bool {
	for _, l := range c.Block(predecessor).Exit.Labels() {
		if l == successor {
			return true
		}
	}
	return false
}

// ForeignJumpSuccessor returns the label an unconditional jump from
// predecessor targets, provided it is not a self-loop. It returns false in
// its second result if predecessor's exit is not such a jump.
func (c *Context) ForeignJumpSuccessor(predecessor ir.Label) (ir.Label, bool) {
	jump, ok := c.Block(predecessor).Exit.(ir.Jump)
	if !ok || jump.To == predecessor {
		return ir.Label{}, false
	}
	return jump.To, true
}
