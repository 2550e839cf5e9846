package parser

import "sort"

// Position is a cell coordinate in a grid, used as a node identity in the
// FlowGraph independent of PC mode or direction.
type Position struct {
	X, Y int
}

// FlowGraph is a directed graph over cell positions built while parsing: an
// edge from A to B means some PC state at A, in some mode or direction,
// steps into a PC state at B. CanReach answers whether a Put writing to a
// given cell could influence execution reachable from a given position.
// No recompilation decision consults it: the interpreter recompiles
// whenever a Put changes a cell's value.
type FlowGraph struct {
	edges map[Position]map[Position]bool
}

// NewFlowGraph creates a flow graph containing only the root position.
func NewFlowGraph(root Position) *FlowGraph {
	return &FlowGraph{edges: map[Position]map[Position]bool{root: {}}}
}

// InsertConnection records that target is reachable in one step from
// source.
func (g *FlowGraph) InsertConnection(source, target Position) {
	if g.edges[source] == nil {
		g.edges[source] = make(map[Position]bool)
	}
	g.edges[source][target] = true
	if g.edges[target] == nil {
		g.edges[target] = make(map[Position]bool)
	}
}

// CanReach reports whether target is reachable from source by following
// recorded edges. A conservative caller that cannot establish source as a
// known node should treat the write as reachable rather than call this.
func (g *FlowGraph) CanReach(source, target Position) bool {
	if _, ok := g.edges[source]; !ok {
		return false
	}
	if _, ok := g.edges[target]; !ok {
		return false
	}

	pending := []Position{source}
	checked := make(map[Position]bool)

	for len(pending) > 0 {
		sort.Slice(pending, func(i, j int) bool { return less(pending[i], pending[j]) })
		position := pending[0]
		pending = pending[1:]

		if checked[position] {
			continue
		}
		if position == target {
			return true
		}
		checked[position] = true

		for next := range g.edges[position] {
			pending = append(pending, next)
		}
	}

	return false
}

func less(a, b Position) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
