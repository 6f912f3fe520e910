package frame

import (
	"encoding/json"
	"fmt"
)

// Message types exchanged with rendering contexts. Each screen's markup
// renders in a sandboxed iframe that cannot read outer state; the
// controller pushes TOOL_CHANGE and APPLY_MAGIC_EDIT in, and the
// injected tool script posts the report messages back out.
const (
	TypeToolChange      = "TOOL_CHANGE"
	TypeHTMLUpdated     = "HTML_UPDATED"
	TypeMagicSelect     = "MAGIC_SELECT"
	TypeStartConnection = "START_CONNECTION"
	TypeApplyMagicEdit  = "APPLY_MAGIC_EDIT"
)

// ElementRect is an element bounding box relative to its context's
// document viewport.
type ElementRect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Report is an inbound message from a rendering context. The Type
// discriminant says which of the remaining fields are meaningful.
// Reports carry the originating screen index; the boundary must resolve
// it against the live registry before applying anything, because a
// stale in-flight report can arrive after a tool switch or deletion.
type Report struct {
	Type        string       `json:"type"`
	ScreenIndex int          `json:"screenIndex"`
	ElementID   string       `json:"elementId,omitempty"`
	X           float64      `json:"x,omitempty"`
	Y           float64      `json:"y,omitempty"`
	Rect        *ElementRect `json:"rect,omitempty"`
	HTML        string       `json:"html,omitempty"`
}

// ParseReport decodes and validates one inbound message. Unknown or
// malformed shapes return an error; the caller discards them without
// mutating core state.
func ParseReport(data []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	switch r.Type {
	case TypeHTMLUpdated:
		if r.HTML == "" {
			return Report{}, fmt.Errorf("%s report without html", r.Type)
		}
	case TypeMagicSelect:
		if r.Rect == nil || r.HTML == "" {
			return Report{}, fmt.Errorf("%s report missing rect or html", r.Type)
		}
	case TypeStartConnection:
		// elementId may legitimately be the placeholder; only the type
		// and index matter here.
	default:
		return Report{}, fmt.Errorf("unknown report type %q", r.Type)
	}
	if r.ScreenIndex < 0 {
		return Report{}, fmt.Errorf("negative screen index %d", r.ScreenIndex)
	}
	return r, nil
}

// ToolChange is the outbound broadcast sent to every context whenever
// the active tool changes, and to a context on first mount.
type ToolChange struct {
	Type string `json:"type"`
	Tool string `json:"tool"`
}

// NewToolChange builds a TOOL_CHANGE broadcast payload.
func NewToolChange(tool string) ToolChange {
	return ToolChange{Type: TypeToolChange, Tool: tool}
}

// MagicEdit is the outbound message replacing the currently marked
// element's outer markup in its context.
type MagicEdit struct {
	Type    string `json:"type"`
	NewHTML string `json:"newHtml"`
}

// NewMagicEdit builds an APPLY_MAGIC_EDIT payload.
func NewMagicEdit(newHTML string) MagicEdit {
	return MagicEdit{Type: TypeApplyMagicEdit, NewHTML: newHTML}
}
