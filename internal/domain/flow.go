package domain

// FlowRequest is what the user asks for on the prompt step.
type FlowRequest struct {
	Idea        string       `json:"idea"`
	Platform    PlatformType `json:"platform"`
	Style       string       `json:"style"`
	ScreenCount int          `json:"screenCount"`
}

// Flow is the generated application flow: a named set of screens.
type Flow struct {
	AppName     string   `json:"appName"`
	Description string   `json:"description"`
	Screens     []Screen `json:"screens"`
}

// CanvasState is a complete snapshot of the canvas for rendering.
// It is always a copy; mutating it never affects engine state.
type CanvasState struct {
	Screens     []Screen     `json:"screens"`
	Notes       []StickyNote `json:"notes"`
	Connections []Connection `json:"connections"`
	Pan         Point        `json:"pan"`
	Zoom        float64      `json:"zoom"`
	Tool        Tool         `json:"tool"`
	Prototype   bool         `json:"prototype"`
}
