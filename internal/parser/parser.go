// Package parser builds a control-flow graph of straight-line blocks from a
// grid, starting from a seed PC state. It is the compilation front end:
// every reachable command is visited exactly once and turned into a Block
// keyed by the PC state it was parsed from.
package parser

import (
	"sort"

	"github.com/krobbi/fungus/internal/grid"
	"github.com/krobbi/fungus/internal/ir"
	"github.com/krobbi/fungus/internal/pcstate"
)

// Parse builds a Program transitively reachable from seed across g's
// command-and-string semantics, along with the flow graph of cell
// positions visited while doing so.
func Parse(g *grid.Grid, seed pcstate.State) (*ir.Program, *FlowGraph) {
	width, height := g.Bounds()
	c := &context{
		grid:      g,
		bounds:    pcstate.Bounds{Width: width, Height: height},
		program:   ir.New(ir.StateLabel(seed)),
		flow:      NewFlowGraph(position(seed)),
		unvisited: map[pcstate.State]bool{seed: true},
	}

	for {
		state, ok := c.popLeastUnvisited()
		if !ok {
			break
		}
		c.parseBlock(state)
	}

	return c.program, c.flow
}

// context carries the mutable state threaded through block construction.
type context struct {
	grid      *grid.Grid
	bounds    pcstate.Bounds
	program   *ir.Program
	flow      *FlowGraph
	unvisited map[pcstate.State]bool
}

// popLeastUnvisited removes and returns the least unvisited state in the
// total order on pcstate.State, so that iteration order of a Go map can
// never affect the resulting Program.
func (c *context) popLeastUnvisited() (pcstate.State, bool) {
	if len(c.unvisited) == 0 {
		return pcstate.State{}, false
	}

	states := make([]pcstate.State, 0, len(c.unvisited))
	for s := range c.unvisited {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Less(states[j]) })

	least := states[0]
	delete(c.unvisited, least)
	return least, true
}

// markUnvisited schedules a state to be visited if its block has not
// already been built, and records the flow edge from source into it.
func (c *context) markUnvisited(source pcstate.State, target pcstate.State) {
	c.flow.InsertConnection(position(source), position(target))
	if _, built := c.program.Blocks[ir.StateLabel(target)]; !built {
		c.unvisited[target] = true
	}
}

// parseBlock builds the block for a state, unless one already exists.
func (c *context) parseBlock(state pcstate.State) {
	label := ir.StateLabel(state)
	if _, exists := c.program.Blocks[label]; exists {
		return
	}

	block := c.buildBlock(state)
	c.program.Blocks[label] = block

	for _, l := range block.Exit.Labels() {
		if !l.IsMain() {
			c.markUnvisited(state, l.State())
		}
	}
}

// buildBlock dispatches on the cell under state's cursor and constructs the
// resulting straight-line block and exit.
func (c *context) buildBlock(state pcstate.State) *ir.Block {
	cursor := pcstate.NewCursor(c.bounds, state)
	value, ok := c.grid.Get(state.X, state.Y)
	if !ok {
		// The seed state is always constructed in bounds by the caller;
		// cells discovered by stepping are bounds-checked by Cursor's
		// wrapping arithmetic, so this is unreachable in practice.
		return &ir.Block{Exit: ir.End{}}
	}
	command := value.PrintableASCII()

	if state.Mode == pcstate.String {
		return c.buildStringCell(cursor, command)
	}
	return c.buildCommandCell(cursor, command)
}

func (c *context) buildStringCell(cursor pcstate.Cursor, command byte) *ir.Block {
	if command == '"' {
		return jumpTo(cursor.ToggleMode().Step())
	}

	value, _ := c.grid.Get(cursor.State().X, cursor.State().Y)
	return &ir.Block{
		Instructions: []ir.Instruction{ir.Push{Expr: ir.Literal{Value: value}}},
		Exit:         jumpExit(cursor.Step()),
	}
}

func (c *context) buildCommandCell(cursor pcstate.Cursor, command byte) *ir.Block {
	switch {
	case command >= '0' && command <= '9':
		return &ir.Block{
			Instructions: []ir.Instruction{ir.Push{Expr: ir.Literal{Value: grid.Value(command - '0')}}},
			Exit:         jumpExit(cursor.Step()),
		}
	}

	switch command {
	case '+':
		return unitBlock(ir.BinaryOp{Op: ir.Add}, cursor)
	case '-':
		return unitBlock(ir.BinaryOp{Op: ir.Subtract}, cursor)
	case '*':
		return unitBlock(ir.BinaryOp{Op: ir.Multiply}, cursor)
	case '`':
		return unitBlock(ir.BinaryOp{Op: ir.Greater}, cursor)
	case '/':
		return unitBlock(ir.DivideOp{Op: ir.DivQuotient}, cursor)
	case '%':
		return unitBlock(ir.DivideOp{Op: ir.DivRemainder}, cursor)
	case '!':
		return unitBlock(ir.UnaryOp{Op: ir.Not}, cursor)
	case ':':
		return unitBlock(ir.Duplicate{}, cursor)
	case '\\':
		return unitBlock(ir.Swap{}, cursor)
	case '$':
		return unitBlock(ir.Pop{}, cursor)
	case '.':
		return unitBlock(ir.OutputInt{}, cursor)
	case ',':
		return unitBlock(ir.OutputChar{}, cursor)
	case '&':
		return unitBlock(ir.InputIntInstr{}, cursor)
	case '~':
		return unitBlock(ir.InputCharInstr{}, cursor)
	case 'g':
		return unitBlock(ir.Get{}, cursor)
	case 'p':
		return &ir.Block{
			Instructions: []ir.Instruction{ir.Put{Seed: cursor.Step().State()}},
			Exit:         jumpExit(cursor.Step()),
		}
	case '>':
		return jumpTo(cursor.Go(pcstate.Right))
	case '<':
		return jumpTo(cursor.Go(pcstate.Left))
	case '^':
		return jumpTo(cursor.Go(pcstate.Up))
	case 'v':
		return jumpTo(cursor.Go(pcstate.Down))
	case '?':
		return &ir.Block{
			Exit: ir.Random{
				Right: labelOf(cursor.Go(pcstate.Right)),
				Down:  labelOf(cursor.Go(pcstate.Down)),
				Left:  labelOf(cursor.Go(pcstate.Left)),
				Up:    labelOf(cursor.Go(pcstate.Up)),
			},
		}
	case '_':
		return &ir.Block{Exit: ir.Branch{
			Then: labelOf(cursor.Go(pcstate.Left)),
			Else: labelOf(cursor.Go(pcstate.Right)),
		}}
	case '|':
		return &ir.Block{Exit: ir.Branch{
			Then: labelOf(cursor.Go(pcstate.Up)),
			Else: labelOf(cursor.Go(pcstate.Down)),
		}}
	case '"':
		return jumpTo(cursor.ToggleMode().Step())
	case '#':
		return jumpTo(cursor.Step().Step())
	case '@':
		return &ir.Block{Exit: ir.End{}}
	default:
		return jumpTo(cursor.Step())
	}
}

// unitBlock builds a single-instruction block that falls through to the
// next cell in the cursor's current direction.
func unitBlock(instr ir.Instruction, cursor pcstate.Cursor) *ir.Block {
	return &ir.Block{
		Instructions: []ir.Instruction{instr},
		Exit:         jumpExit(cursor.Step()),
	}
}

// jumpTo builds an empty block whose sole exit is a jump to cursor's state.
func jumpTo(cursor pcstate.Cursor) *ir.Block {
	return &ir.Block{Exit: jumpExit(cursor)}
}

func jumpExit(cursor pcstate.Cursor) ir.Exit {
	return ir.Jump{To: labelOf(cursor)}
}

func labelOf(cursor pcstate.Cursor) ir.Label {
	return ir.StateLabel(cursor.State())
}

func position(s pcstate.State) Position {
	return Position{X: s.X, Y: s.Y}
}
