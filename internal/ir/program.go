package ir

import (
	"sort"
	"strings"
)

// Program is a control-flow graph of Blocks keyed by Label. Main is always
// present; every label referenced by any Exit must exist as a key.
//
// Go maps have no defined iteration order, so every place that needs a
// deterministic walk over the graph (dumps, the optimizer's passes) goes
// through SortedLabels rather than ranging over Blocks directly. The parser
// keeps its own worklist of PC states and sorts that instead.
type Program struct {
	Blocks map[Label]*Block
}

// New creates an empty program with only the Main label present, exiting
// to seed.
func New(seed Label) *Program {
	p := &Program{Blocks: make(map[Label]*Block)}
	p.Blocks[MainLabel] = &Block{Exit: Jump{To: seed}}
	return p
}

// SortedLabels returns every label in the program in the total order
// defined on Label, so iteration is reproducible across runs.
func (p *Program) SortedLabels() []Label {
	labels := make([]Label, 0, len(p.Blocks))
	for l := range p.Blocks {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Less(labels[j]) })
	return labels
}

// String renders the program deterministically: one label header per
// block, followed by its instructions and exit indented by eight spaces.
func (p *Program) String() string {
	var sb strings.Builder
	for _, label := range p.SortedLabels() {
		block := p.Blocks[label]
		sb.WriteString(label.String())
		sb.WriteString(":\n")
		for _, line := range strings.Split(block.String(), "\n") {
			sb.WriteString("        ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}
