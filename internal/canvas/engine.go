package canvas

import (
	"sync"

	"flowcraft/internal/domain"
)

// Engine is the canvas controller: the single source of truth for the
// transform, the drag and connection state machines, the active tool
// and the screen/note registry. Wails bindings and generation
// goroutines interleave on it, so every transition takes the lock;
// readers only ever get copies.
type Engine struct {
	mu sync.Mutex

	transform Transform
	viewport  Rect

	screens []domain.Screen
	index   map[string]int // screen ID → ordered position
	notes   []domain.StickyNote
	conns   []domain.Connection

	tool      domain.Tool
	prototype bool
	spaceHeld bool
	platform  domain.PlatformType

	drag   DragState
	draft  *ConnectionDraft
	cursor domain.Point // live connection cursor, canvas space
}

// NewEngine returns an engine with an empty canvas and default view.
func NewEngine() *Engine {
	return &Engine{
		transform: NewTransform(),
		index:     map[string]int{},
		tool:      domain.ToolSelect,
		platform:  domain.PlatformWebApp,
	}
}

// SetViewport records the measured bounding rect of the canvas element.
func (e *Engine) SetViewport(r Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewport = r
}

// SetTool changes the active tool. Invalid values are ignored. Returns
// true when the tool actually changed, so the caller knows to broadcast.
func (e *Engine) SetTool(t domain.Tool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !t.Valid() || t == e.tool {
		return false
	}
	e.tool = t
	return true
}

// Tool returns the active tool.
func (e *Engine) Tool() domain.Tool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tool
}

// SetPrototypeMode toggles prototype/link mode. Leaving it discards any
// in-progress connection.
func (e *Engine) SetPrototypeMode(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.prototype = on
	if !on {
		e.draft = nil
	}
}

// PrototypeMode reports whether prototype/link mode is on.
func (e *Engine) PrototypeMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prototype
}

// Platform returns the flow's platform type.
func (e *Engine) Platform() domain.PlatformType {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.platform
}

// Wheel handles a wheel event: ctrl/cmd-wheel zooms, plain wheel pans.
func (e *Engine) Wheel(deltaX, deltaY float64, zoomModifier bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if zoomModifier {
		e.transform = e.transform.WheelZoom(deltaY)
	} else {
		e.transform = e.transform.Scroll(deltaX, deltaY)
	}
}

// ZoomIn applies one button zoom step in.
func (e *Engine) ZoomIn() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transform = e.transform.StepZoom(true)
}

// ZoomOut applies one button zoom step out.
func (e *Engine) ZoomOut() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transform = e.transform.StepZoom(false)
}

// ResetView restores the default pan and zoom without touching content.
func (e *Engine) ResetView() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transform = NewTransform()
}

// Reset clears the whole canvas for a new flow: all entities, edges,
// transient state, view and tool.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.screens = nil
	e.notes = nil
	e.conns = nil
	e.index = map[string]int{}
	e.drag = DragState{}
	e.draft = nil
	e.transform = NewTransform()
	e.tool = domain.ToolSelect
	e.prototype = false
}

// Transform returns the current pan/zoom.
func (e *Engine) Transform() Transform {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transform
}

// Drag returns the current drag state.
func (e *Engine) Drag() DragState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drag
}

// Snapshot returns a full copy of the committed canvas state. No caller
// ever observes a partially-applied mutation.
func (e *Engine) Snapshot() domain.CanvasState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() domain.CanvasState {
	return domain.CanvasState{
		Screens:     e.copyScreensLocked(),
		Notes:       append([]domain.StickyNote(nil), e.notes...),
		Connections: append([]domain.Connection(nil), e.conns...),
		Pan:         e.transform.Pan,
		Zoom:        e.transform.Zoom,
		Tool:        e.tool,
		Prototype:   e.prototype,
	}
}

// RenderState is the snapshot plus everything only the renderer needs:
// the in-progress connection with its live cursor and the precomputed
// edge curves. Programmatic callers that only care about committed
// state use Snapshot.
type RenderState struct {
	domain.CanvasState
	Draft      *ConnectionDraft `json:"draft,omitempty"`
	Cursor     domain.Point     `json:"cursor"`
	Curves     map[string]Curve `json:"curves"`
	DraftCurve *Curve           `json:"draftCurve,omitempty"`
}

// RenderState returns the full render surface in one consistent copy.
func (e *Engine) RenderState() RenderState {
	e.mu.Lock()
	defer e.mu.Unlock()

	rs := RenderState{
		CanvasState: e.snapshotLocked(),
		Cursor:      e.cursor,
		Curves:      e.curvesLocked(),
	}
	if e.draft != nil {
		d := *e.draft
		rs.Draft = &d
		c := curveBetween(d.Origin, e.cursor)
		rs.DraftCurve = &c
	}
	return rs
}
