package app

import (
	"fmt"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"flowcraft/internal/canvas"
	"flowcraft/internal/domain"
	"flowcraft/internal/frame"
	"flowcraft/internal/service"
)

// ============================================================
// Canvas interaction
// ============================================================

// GetCanvasState returns the full render surface: committed state plus
// the in-progress connection, its live cursor and precomputed curves.
func (a *App) GetCanvasState() canvas.RenderState {
	return a.engine.RenderState()
}

// SetViewport records the canvas element's bounding box in window
// coordinates. Called on mount and on every resize.
func (a *App) SetViewport(left, top, width, height float64) {
	a.engine.SetViewport(canvas.Rect{Left: left, Top: top, Width: width, Height: height})
}

// PointerDown routes a pointer-down through the interaction rules.
// Returns the ID of the entity the eraser removed, or "".
func (a *App) PointerDown(kind, id string, x, y float64, button int) string {
	deleted := a.engine.PointerDown(
		canvas.PointerTarget{Kind: canvas.TargetKind(kind), ID: id},
		domain.Point{X: x, Y: y},
		button,
	)
	if deleted != "" {
		if kind == string(canvas.TargetScreen) {
			a.frames.Unmount(deleted)
		}
		a.Emit(a.ctx, service.EventCanvasUpdated, a.engine.Snapshot())
	}
	return deleted
}

// PointerMove advances the active drag, if any.
func (a *App) PointerMove(x, y float64) {
	a.engine.PointerMove(domain.Point{X: x, Y: y})
}

// PointerUp ends the active drag and, in prototype mode, commits a
// pending connection when released over another screen.
func (a *App) PointerUp(kind, id string) {
	conn := a.engine.PointerUp(canvas.PointerTarget{Kind: canvas.TargetKind(kind), ID: id})
	if conn != nil {
		a.Emit(a.ctx, service.EventCanvasUpdated, a.engine.Snapshot())
	}
}

// SetSpaceHeld tracks the spacebar pan modifier.
func (a *App) SetSpaceHeld(held bool) {
	a.engine.SetSpaceHeld(held)
}

// Wheel applies a wheel gesture: zoom with the modifier held, scroll
// otherwise.
func (a *App) Wheel(deltaX, deltaY float64, zoomModifier bool) {
	a.engine.Wheel(deltaX, deltaY, zoomModifier)
}

func (a *App) ZoomIn()    { a.engine.ZoomIn() }
func (a *App) ZoomOut()   { a.engine.ZoomOut() }
func (a *App) ResetView() { a.engine.ResetView() }

// SetTool switches the active tool and broadcasts the change to every
// rendering context.
func (a *App) SetTool(tool string) {
	if !a.engine.SetTool(domain.Tool(tool)) {
		return
	}
	a.frames.SetTool(tool)
	a.Emit(a.ctx, service.EventToolChanged, frame.NewToolChange(tool))
}

// SetPrototypeMode toggles connect-by-click mode.
func (a *App) SetPrototypeMode(on bool) {
	a.engine.SetPrototypeMode(on)
}

// AutoLayout rearranges all screens into a grid.
func (a *App) AutoLayout() {
	a.engine.AutoLayout()
	a.Emit(a.ctx, service.EventCanvasUpdated, a.engine.Snapshot())
}

// ============================================================
// Screens and notes
// ============================================================

// AddScreen places a new draft screen at the viewport center.
func (a *App) AddScreen() domain.Screen {
	screen := a.engine.AddScreen()
	a.Emit(a.ctx, service.EventCanvasUpdated, a.engine.Snapshot())
	return screen
}

// MoveScreen moves a screen to an absolute canvas position.
func (a *App) MoveScreen(id string, x, y float64) error {
	if !a.engine.MoveScreen(id, x, y) {
		return fmt.Errorf("screen %s not found", id)
	}
	return nil
}

// DeleteScreen removes a screen, its connections, and its rendering
// context state.
func (a *App) DeleteScreen(id string) error {
	if !a.engine.DeleteScreen(id) {
		return fmt.Errorf("screen %s not found", id)
	}
	a.frames.Unmount(id)
	a.watcher.StopScreen(id)
	a.Emit(a.ctx, service.EventCanvasUpdated, a.engine.Snapshot())
	return nil
}

// UpdateScreenDescription edits a screen's description text.
func (a *App) UpdateScreenDescription(id, description string) error {
	if !a.engine.UpdateScreenDescription(id, description) {
		return fmt.Errorf("screen %s not found", id)
	}
	return nil
}

// AddStickyNote places a new note at the viewport center.
func (a *App) AddStickyNote() domain.StickyNote {
	note := a.engine.AddNote()
	a.Emit(a.ctx, service.EventCanvasUpdated, a.engine.Snapshot())
	return note
}

// UpdateStickyNote replaces a note's text.
func (a *App) UpdateStickyNote(id, text string) error {
	if !a.engine.UpdateNoteText(id, text) {
		return fmt.Errorf("note %s not found", id)
	}
	return nil
}

// DeleteStickyNote removes a note.
func (a *App) DeleteStickyNote(id string) error {
	if !a.engine.DeleteNote(id) {
		return fmt.Errorf("note %s not found", id)
	}
	a.Emit(a.ctx, service.EventCanvasUpdated, a.engine.Snapshot())
	return nil
}

// BeginConnection starts a draft connection from a screen's right edge.
func (a *App) BeginConnection(screenID string) {
	a.engine.BeginConnection(screenID)
}

// CancelConnection discards the draft connection.
func (a *App) CancelConnection() {
	a.engine.CancelConnection()
}

// ============================================================
// Rendering contexts
// ============================================================

// AugmentedHTML returns a screen's markup with the tool script and
// styling runtime injected, ready to hand to a rendering context.
func (a *App) AugmentedHTML(screenID string) (string, error) {
	screen, ok := a.engine.Screen(screenID)
	if !ok {
		return "", fmt.Errorf("screen %s not found", screenID)
	}
	index := indexOf(a.engine.Screens(), screenID)
	return frame.Augment(screen.HTML, index, string(a.engine.Tool()), a.engine.PrototypeMode()), nil
}

// MountFrame registers a screen's rendering context. The returned
// broadcast must be posted into the context so it reflects the current
// tool from its first frame.
func (a *App) MountFrame(screenID string) frame.ToolChange {
	a.frames.Mount(screenID)
	return frame.NewToolChange(string(a.engine.Tool()))
}

// HandleFrameReport processes one message posted out of a rendering
// context. Malformed or stale reports are discarded without touching
// core state.
func (a *App) HandleFrameReport(payload string) error {
	report, err := frame.ParseReport([]byte(payload))
	if err != nil {
		wailsRuntime.LogDebugf(a.ctx, "[Frame] discarding report: %v", err)
		return nil
	}

	screenID, ok := a.engine.ScreenIDAt(report.ScreenIndex)
	if !ok {
		// Stale index from a context rendered before a deletion.
		wailsRuntime.LogDebugf(a.ctx, "[Frame] report for unknown screen index %d", report.ScreenIndex)
		return nil
	}

	switch report.Type {
	case frame.TypeHTMLUpdated:
		cleaned := frame.StripToolScript(report.HTML)
		if a.engine.UpdateScreenHTML(screenID, cleaned) {
			a.Emit(a.ctx, service.EventScreenUpdated, map[string]any{"id": screenID, "status": domain.StatusCompleted})
		}

	case frame.TypeMagicSelect:
		a.frames.Select(screenID, *report.Rect, report.HTML)

	case frame.TypeStartConnection:
		if !a.engine.PrototypeMode() {
			return nil
		}
		a.engine.BeginElementConnection(screenID, report.ElementID, report.X, report.Y)
	}
	return nil
}

// MagicSelection returns the element currently marked for magic edit,
// or nil.
func (a *App) MagicSelection() *frame.Selection {
	return a.frames.Selection()
}

func indexOf(screens []domain.Screen, id string) int {
	for i := range screens {
		if screens[i].ID == id {
			return i
		}
	}
	return -1
}
