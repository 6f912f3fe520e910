package domain

// DefaultNoteColor is the fill used for freshly created sticky notes.
const DefaultNoteColor = "#fef3c7"

// StickyNote is a free-floating annotation on the canvas. Notes are
// created and deleted only by direct user action, never by generation.
type StickyNote struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Position Point  `json:"position"`
	Color    string `json:"color"`
}
