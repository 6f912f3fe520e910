package domain

// Tool is the active interaction mode. Exactly one tool is active per
// canvas session; it is changed only by explicit user action and is
// broadcast to every rendering context on change.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolHand   Tool = "hand"
	ToolWand   Tool = "wand"
	ToolEraser Tool = "eraser"
	ToolNote   Tool = "note"
)

// Valid reports whether t is one of the known tools.
func (t Tool) Valid() bool {
	switch t {
	case ToolSelect, ToolHand, ToolWand, ToolEraser, ToolNote:
		return true
	}
	return false
}
