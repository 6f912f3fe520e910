package domain

// Connection is a directed edge between two screens, forming the flow
// diagram. FromElement and StartCoords are set when the edge originated
// from an interactive element inside the source screen (prototype mode);
// otherwise the edge starts at the source screen's connector.
//
// Self-loops are rejected at creation. Duplicate edges are allowed.
type Connection struct {
	ID          string `json:"id"`
	From        string `json:"from"` // source screen ID
	To          string `json:"to"`   // target screen ID
	FromElement string `json:"fromElement,omitempty"`
	StartCoords *Point `json:"startCoords,omitempty"` // canvas space
}
