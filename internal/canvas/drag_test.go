package canvas_test

import (
	"testing"

	"flowcraft/internal/canvas"
	"flowcraft/internal/domain"
)

// newTestEngine returns an engine with two screens placed far apart and
// a measured viewport.
func newTestEngine(t *testing.T) *canvas.Engine {
	t.Helper()
	e := canvas.NewEngine()
	e.SetViewport(canvas.Rect{Width: 1440, Height: 900})
	e.SetScreens([]domain.Screen{
		{ID: "s1", Name: "Login", Position: domain.Point{X: 0, Y: 0}},
		{ID: "s2", Name: "Home", Position: domain.Point{X: 1200, Y: 0}},
	}, domain.PlatformWebApp)
	return e
}

func screenPos(t *testing.T, e *canvas.Engine, id string) domain.Point {
	t.Helper()
	s, ok := e.Screen(id)
	if !ok {
		t.Fatalf("screen %s not found", id)
	}
	return s.Position
}

// ─────────────────────────────────────────────────────────────
// Pointer-down precedence
// ─────────────────────────────────────────────────────────────

func TestPointerDown_HandToolPansEvenOverScreen(t *testing.T) {
	e := newTestEngine(t)
	e.SetTool(domain.ToolHand)

	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}, domain.Point{X: 100, Y: 100}, 0)

	drag := e.Drag()
	if !drag.Active || drag.Kind != canvas.DragCanvas {
		t.Fatalf("expected canvas drag, got %+v", drag)
	}
}

func TestPointerDown_SpaceHeldPans(t *testing.T) {
	e := newTestEngine(t)
	e.SetSpaceHeld(true)

	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}, domain.Point{X: 100, Y: 100}, 0)

	if drag := e.Drag(); !drag.Active || drag.Kind != canvas.DragCanvas {
		t.Fatalf("expected canvas drag, got %+v", drag)
	}
}

func TestPointerDown_EraserDeletesScreen(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Connect("s1", "s2"); err != nil {
		t.Fatal(err)
	}
	e.SetTool(domain.ToolEraser)

	deleted := e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}, domain.Point{}, 0)
	if deleted != "s1" {
		t.Fatalf("expected deleted ID s1, got %q", deleted)
	}
	if _, ok := e.Screen("s1"); ok {
		t.Fatal("screen s1 still present after eraser click")
	}
	if conns := e.Connections(); len(conns) != 0 {
		t.Fatalf("expected incident connection removed, got %d", len(conns))
	}
	if drag := e.Drag(); drag.Active {
		t.Fatal("eraser click must not start a drag")
	}
}

func TestPointerDown_EraserDeletesNote(t *testing.T) {
	e := newTestEngine(t)
	note := e.AddNote()
	e.SetTool(domain.ToolEraser)

	deleted := e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetNote, ID: note.ID}, domain.Point{}, 0)
	if deleted != note.ID {
		t.Fatalf("expected deleted ID %s, got %q", note.ID, deleted)
	}
	if notes := e.Notes(); len(notes) != 0 {
		t.Fatalf("expected no notes, got %d", len(notes))
	}
}

func TestPointerDown_WandOverScreenDoesNothing(t *testing.T) {
	e := newTestEngine(t)
	e.SetTool(domain.ToolWand)

	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}, domain.Point{X: 50, Y: 50}, 0)

	if drag := e.Drag(); drag.Active {
		t.Fatalf("wand over screen started a drag: %+v", drag)
	}
}

func TestPointerDown_MiddleButtonPansOverScreen(t *testing.T) {
	e := newTestEngine(t)

	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}, domain.Point{X: 50, Y: 50}, canvas.MiddleButton)

	if drag := e.Drag(); !drag.Active || drag.Kind != canvas.DragCanvas {
		t.Fatalf("expected canvas drag, got %+v", drag)
	}
}

func TestPointerDown_SelectDragsScreen(t *testing.T) {
	e := newTestEngine(t)

	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}, domain.Point{X: 50, Y: 50}, 0)

	drag := e.Drag()
	if !drag.Active || drag.Kind != canvas.DragScreen || drag.TargetID != "s1" {
		t.Fatalf("expected screen drag of s1, got %+v", drag)
	}
}

func TestPointerDown_PrototypeModeBlocksScreenDrag(t *testing.T) {
	e := newTestEngine(t)
	e.SetPrototypeMode(true)

	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}, domain.Point{X: 50, Y: 50}, 0)

	if drag := e.Drag(); drag.Active {
		t.Fatalf("screen drag started in prototype mode: %+v", drag)
	}
}

func TestPointerDown_IgnoredWhileDrawingConnection(t *testing.T) {
	e := newTestEngine(t)
	e.BeginConnection("s1")

	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s2"}, domain.Point{}, 0)

	if drag := e.Drag(); drag.Active {
		t.Fatalf("pointer-down started a drag while drawing: %+v", drag)
	}
}

func TestPointerDown_IgnoredWhileDragging(t *testing.T) {
	e := newTestEngine(t)
	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}, domain.Point{}, 0)

	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s2"}, domain.Point{}, 0)

	if drag := e.Drag(); drag.TargetID != "s1" {
		t.Fatalf("second pointer-down replaced active drag: %+v", drag)
	}
}

// ─────────────────────────────────────────────────────────────
// Drag movement
// ─────────────────────────────────────────────────────────────

func TestPointerMove_CanvasPanAppliesRawDelta(t *testing.T) {
	e := newTestEngine(t)
	e.SetTool(domain.ToolHand)
	startPan := e.Transform().Pan

	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetCanvas}, domain.Point{X: 100, Y: 100}, 0)
	e.PointerMove(domain.Point{X: 160, Y: 130})

	pan := e.Transform().Pan
	if !approx(pan.X, startPan.X+60) || !approx(pan.Y, startPan.Y+30) {
		t.Errorf("expected pan (%v, %v), got (%v, %v)", startPan.X+60, startPan.Y+30, pan.X, pan.Y)
	}
}

func TestPointerMove_ScreenDragScalesDeltaByZoom(t *testing.T) {
	e := newTestEngine(t)
	// Default zoom is 0.6: a 60px pointer delta moves the screen 100
	// canvas units.
	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}, domain.Point{X: 200, Y: 200}, 0)
	e.PointerMove(domain.Point{X: 260, Y: 230})

	pos := screenPos(t, e, "s1")
	if !approx(pos.X, 100) || !approx(pos.Y, 50) {
		t.Errorf("expected position (100, 50), got (%v, %v)", pos.X, pos.Y)
	}
}

func TestPointerMove_FinalPositionMatchesTotalDelta(t *testing.T) {
	e := newTestEngine(t)
	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}, domain.Point{X: 0, Y: 0}, 0)

	// Intermediate moves must not accumulate; only the offset from the
	// drag origin matters.
	for _, p := range []domain.Point{{X: 10, Y: 5}, {X: -30, Y: 80}, {X: 60, Y: 30}} {
		e.PointerMove(p)
	}
	e.PointerUp(canvas.PointerTarget{Kind: canvas.TargetCanvas})

	pos := screenPos(t, e, "s1")
	if !approx(pos.X, 100) || !approx(pos.Y, 50) {
		t.Errorf("expected final position (100, 50), got (%v, %v)", pos.X, pos.Y)
	}
}

func TestPointerMove_NoteDragScalesDeltaByZoom(t *testing.T) {
	e := newTestEngine(t)
	note := e.AddNote()
	start := note.Position

	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetNote, ID: note.ID}, domain.Point{X: 0, Y: 0}, 0)
	e.PointerMove(domain.Point{X: 6, Y: 12})

	var got domain.Point
	for _, n := range e.Notes() {
		if n.ID == note.ID {
			got = n.Position
		}
	}
	if !approx(got.X, start.X+10) || !approx(got.Y, start.Y+20) {
		t.Errorf("expected (%v, %v), got (%v, %v)", start.X+10, start.Y+20, got.X, got.Y)
	}
}

func TestPointerUp_ClearsDrag(t *testing.T) {
	e := newTestEngine(t)
	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}, domain.Point{}, 0)

	e.PointerUp(canvas.PointerTarget{Kind: canvas.TargetCanvas})

	if drag := e.Drag(); drag.Active {
		t.Fatalf("drag survived pointer-up: %+v", drag)
	}
}

func TestSetSpaceHeld_ReleaseCancelsModifierPan(t *testing.T) {
	e := newTestEngine(t)
	e.SetSpaceHeld(true)
	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetCanvas}, domain.Point{X: 10, Y: 10}, 0)

	e.SetSpaceHeld(false)

	if drag := e.Drag(); drag.Active {
		t.Fatalf("pan survived modifier release: %+v", drag)
	}
}

func TestSetSpaceHeld_ReleaseKeepsHandToolPan(t *testing.T) {
	e := newTestEngine(t)
	e.SetTool(domain.ToolHand)
	e.SetSpaceHeld(true)
	e.PointerDown(canvas.PointerTarget{Kind: canvas.TargetCanvas}, domain.Point{X: 10, Y: 10}, 0)

	e.SetSpaceHeld(false)

	if drag := e.Drag(); !drag.Active {
		t.Fatal("hand tool pan cancelled by modifier release")
	}
}
