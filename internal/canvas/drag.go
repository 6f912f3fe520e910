package canvas

import "flowcraft/internal/domain"

// DragKind says what a drag is moving.
type DragKind string

const (
	DragNone   DragKind = ""
	DragCanvas DragKind = "canvas"
	DragScreen DragKind = "screen"
	DragNote   DragKind = "note"
)

// DragState is the transient state between pointer-down and pointer-up.
// At most one drag is active at a time; a pointer-down while dragging is
// ignored until release.
type DragState struct {
	Active        bool         `json:"active"`
	Kind          DragKind     `json:"kind"`
	PointerOrigin domain.Point `json:"pointerOrigin"` // pixel space
	EntityOrigin  domain.Point `json:"entityOrigin"`  // pan (pixel) or entity position (canvas)
	TargetID      string       `json:"targetId"`
}

// TargetKind identifies what the pointer went down on.
type TargetKind string

const (
	TargetCanvas TargetKind = "canvas"
	TargetScreen TargetKind = "screen"
	TargetNote   TargetKind = "note"
)

// PointerTarget describes the hit entity for a pointer-down.
type PointerTarget struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// MiddleButton is the auxiliary mouse button index as reported by
// pointer events.
const MiddleButton = 1

// PointerDown runs the drag entry rules in precedence order and either
// starts a drag, performs an eraser deletion, or does nothing. p is in
// pixel space. Returns the ID of an entity the eraser deleted, if any.
func (e *Engine) PointerDown(target PointerTarget, p domain.Point, button int) (deletedID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Drawing a connection swallows pointer-downs entirely.
	if e.draft != nil {
		return ""
	}
	if e.drag.Active {
		return ""
	}

	// 1. Hand tool or panning modifier always pans.
	if e.tool == domain.ToolHand || e.spaceHeld {
		e.beginDrag(DragCanvas, p, e.transform.Pan, "")
		return ""
	}

	// 2. Eraser deletes the hit entity outright; no drag begins.
	if e.tool == domain.ToolEraser {
		switch target.Kind {
		case TargetScreen:
			if e.deleteScreenLocked(target.ID) {
				return target.ID
			}
		case TargetNote:
			if e.deleteNoteLocked(target.ID) {
				return target.ID
			}
		}
		return ""
	}

	// 3. Wand clicks on a screen body are handled inside the rendering
	// context; the canvas itself does nothing.
	if e.tool == domain.ToolWand && target.Kind == TargetScreen {
		return ""
	}

	// 4. Empty canvas, or the middle button anywhere, pans.
	if target.Kind == TargetCanvas || button == MiddleButton {
		e.beginDrag(DragCanvas, p, e.transform.Pan, "")
		return ""
	}

	// 5. Screens move with the select tool while prototype mode is off.
	if target.Kind == TargetScreen && e.tool == domain.ToolSelect && !e.prototype {
		if s, ok := e.screenByID(target.ID); ok {
			e.beginDrag(DragScreen, p, s.Position, target.ID)
		}
		return ""
	}

	// 6. Notes move regardless of tool (eraser and pan handled above).
	if target.Kind == TargetNote {
		if n, ok := e.noteByID(target.ID); ok {
			e.beginDrag(DragNote, p, n.Position, target.ID)
		}
	}
	return ""
}

func (e *Engine) beginDrag(kind DragKind, pointer, origin domain.Point, targetID string) {
	e.drag = DragState{
		Active:        true,
		Kind:          kind,
		PointerOrigin: pointer,
		EntityOrigin:  origin,
		TargetID:      targetID,
	}
}

// PointerMove advances whatever is in flight: the live connection
// cursor, or the active drag. p is in pixel space.
func (e *Engine) PointerMove(p domain.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.draft != nil {
		e.cursor = e.transform.ToCanvasSpace(p, e.viewport)
	}
	if !e.drag.Active {
		return
	}

	dx := p.X - e.drag.PointerOrigin.X
	dy := p.Y - e.drag.PointerOrigin.Y

	switch e.drag.Kind {
	case DragCanvas:
		// Pan is pixel space; the raw delta applies unscaled.
		e.transform.Pan = domain.Point{
			X: e.drag.EntityOrigin.X + dx,
			Y: e.drag.EntityOrigin.Y + dy,
		}
	case DragScreen:
		// Entity positions are canvas space; scale the pixel delta down
		// by the zoom so the screen tracks the pointer exactly.
		if i, ok := e.index[e.drag.TargetID]; ok {
			e.screens[i].Position = domain.Point{
				X: e.drag.EntityOrigin.X + dx/e.transform.Zoom,
				Y: e.drag.EntityOrigin.Y + dy/e.transform.Zoom,
			}
		}
	case DragNote:
		for i := range e.notes {
			if e.notes[i].ID == e.drag.TargetID {
				e.notes[i].Position = domain.Point{
					X: e.drag.EntityOrigin.X + dx/e.transform.Zoom,
					Y: e.drag.EntityOrigin.Y + dy/e.transform.Zoom,
				}
				break
			}
		}
	}
}

// PointerUp ends the active drag and, when a connection is being drawn,
// commits or discards it depending on what the pointer was released
// over. Returns the committed connection, if any.
func (e *Engine) PointerUp(target PointerTarget) *domain.Connection {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.drag = DragState{}

	if e.draft == nil {
		return nil
	}
	if target.Kind == TargetScreen {
		return e.completeConnectionLocked(target.ID)
	}
	// Released over empty canvas or a note: discard with no error.
	e.draft = nil
	return nil
}

// SetSpaceHeld tracks the panning modifier key. Releasing it while
// panning with any tool but the hand cancels the drag immediately, so a
// stuck pan cannot outlive its modifier.
func (e *Engine) SetSpaceHeld(held bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.spaceHeld = held
	if !held && e.drag.Active && e.drag.Kind == DragCanvas && e.tool != domain.ToolHand {
		e.drag = DragState{}
	}
}
