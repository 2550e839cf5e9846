package ir

import "github.com/krobbi/fungus/internal/pcstate"

// Label keys a Block in a Program. It is either Main, the unique synthetic
// entry point, or a State label referencing the PC state that produced it.
type Label struct {
	main  bool
	state pcstate.State
}

// MainLabel is the unique label for the program's synthetic entry block.
var MainLabel = Label{main: true}

// StateLabel returns the label for a block built at a PC state.
func StateLabel(s pcstate.State) Label {
	return Label{state: s}
}

// IsMain reports whether the label is the Main label.
func (l Label) IsMain() bool {
	return l.main
}

// State returns the PC state this label was built from. It is only
// meaningful when IsMain is false.
func (l Label) State() pcstate.State {
	return l.state
}

// Less reports whether l sorts before other. Main sorts before every
// State label; State labels are ordered by their PC state.
func (l Label) Less(other Label) bool {
	if l.main != other.main {
		return l.main
	}
	if l.main {
		return false
	}
	return l.state.Less(other.state)
}

func (l Label) String() string {
	if l.main {
		return "main"
	}
	return l.state.String()
}
