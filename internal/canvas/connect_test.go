package canvas_test

import (
	"testing"

	"flowcraft/internal/canvas"
	"flowcraft/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Connection drawing
// ─────────────────────────────────────────────────────────────

func TestBeginConnection_OriginAtRightEdgeMidpoint(t *testing.T) {
	e := newTestEngine(t)

	e.BeginConnection("s1")

	draft, cursor := e.Draft()
	if draft == nil {
		t.Fatal("expected a connection draft")
	}
	// Web App screens are 1024x720; s1 sits at the origin.
	if !approx(draft.Origin.X, 1024) || !approx(draft.Origin.Y, 360) {
		t.Errorf("expected origin (1024, 360), got (%v, %v)", draft.Origin.X, draft.Origin.Y)
	}
	if cursor != draft.Origin {
		t.Errorf("cursor should start at the origin, got (%v, %v)", cursor.X, cursor.Y)
	}
}

func TestBeginConnection_UnknownScreenIgnored(t *testing.T) {
	e := newTestEngine(t)

	e.BeginConnection("missing")

	if draft, _ := e.Draft(); draft != nil {
		t.Fatalf("draft created for unknown screen: %+v", draft)
	}
}

func TestConnection_CommitOnReleaseOverScreen(t *testing.T) {
	e := newTestEngine(t)
	e.BeginConnection("s1")

	conn := e.PointerUp(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s2"})
	if conn == nil {
		t.Fatal("expected a committed connection")
	}
	if conn.From != "s1" || conn.To != "s2" {
		t.Errorf("expected s1 -> s2, got %s -> %s", conn.From, conn.To)
	}
	if conn.ID == "" {
		t.Error("connection has no ID")
	}
	if conn.StartCoords == nil || !approx(conn.StartCoords.X, 1024) || !approx(conn.StartCoords.Y, 360) {
		t.Errorf("unexpected start coords: %+v", conn.StartCoords)
	}
	if len(e.Connections()) != 1 {
		t.Fatalf("expected 1 stored connection, got %d", len(e.Connections()))
	}
	if draft, _ := e.Draft(); draft != nil {
		t.Fatal("draft survived the commit")
	}
}

func TestConnection_SelfLoopDiscardedSilently(t *testing.T) {
	e := newTestEngine(t)
	e.BeginConnection("s1")

	if conn := e.PointerUp(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s1"}); conn != nil {
		t.Fatalf("self-loop committed: %+v", conn)
	}
	if len(e.Connections()) != 0 {
		t.Fatal("self-loop stored")
	}
	if draft, _ := e.Draft(); draft != nil {
		t.Fatal("draft kept after discard")
	}
}

func TestConnection_ReleaseOverCanvasDiscards(t *testing.T) {
	e := newTestEngine(t)
	e.BeginConnection("s1")

	if conn := e.PointerUp(canvas.PointerTarget{Kind: canvas.TargetCanvas}); conn != nil {
		t.Fatalf("unexpected connection: %+v", conn)
	}
	if draft, _ := e.Draft(); draft != nil {
		t.Fatal("draft kept after release over canvas")
	}
}

func TestConnection_DuplicateEdgesAllowed(t *testing.T) {
	e := newTestEngine(t)
	e.BeginConnection("s1")
	e.PointerUp(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s2"})
	e.BeginConnection("s1")
	e.PointerUp(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s2"})

	if got := len(e.Connections()); got != 2 {
		t.Fatalf("expected 2 edges, got %d", got)
	}
}

func TestBeginElementConnection_AddsHeaderOffset(t *testing.T) {
	e := newTestEngine(t)
	e.MoveScreen("s1", 100, 200)

	e.BeginElementConnection("s1", "login-button", 50, 40)

	draft, _ := e.Draft()
	if draft == nil {
		t.Fatal("expected a connection draft")
	}
	if draft.SourceElement != "login-button" {
		t.Errorf("expected source element login-button, got %q", draft.SourceElement)
	}
	// y offsets by the 60px header between card top and document top.
	if !approx(draft.Origin.X, 150) || !approx(draft.Origin.Y, 300) {
		t.Errorf("expected origin (150, 300), got (%v, %v)", draft.Origin.X, draft.Origin.Y)
	}
}

func TestCancelConnection(t *testing.T) {
	e := newTestEngine(t)
	e.BeginConnection("s1")

	e.CancelConnection()

	if draft, _ := e.Draft(); draft != nil {
		t.Fatal("draft survived cancel")
	}
}

func TestSetPrototypeMode_OffDiscardsDraft(t *testing.T) {
	e := newTestEngine(t)
	e.SetPrototypeMode(true)
	e.BeginElementConnection("s1", "cta", 10, 10)

	e.SetPrototypeMode(false)

	if draft, _ := e.Draft(); draft != nil {
		t.Fatal("draft survived leaving prototype mode")
	}
}

// ─────────────────────────────────────────────────────────────
// Direct connect (programmatic callers)
// ─────────────────────────────────────────────────────────────

func TestConnect_RejectsSelfLoop(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Connect("s1", "s1"); err == nil {
		t.Fatal("expected error for self-loop")
	}
}

func TestConnect_RejectsMissingEndpoints(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Connect("s1", "nope"); err == nil {
		t.Fatal("expected error for missing target")
	}
	if _, err := e.Connect("nope", "s2"); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestDeleteScreen_CascadesIncidentEdges(t *testing.T) {
	e := newTestEngine(t)
	e.SetScreens([]domain.Screen{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}, domain.PlatformWebApp)
	e.Connect("a", "b")
	e.Connect("b", "c")
	e.Connect("a", "c")

	e.DeleteScreen("b")

	conns := e.Connections()
	if len(conns) != 1 {
		t.Fatalf("expected 1 surviving edge, got %d", len(conns))
	}
	if conns[0].From != "a" || conns[0].To != "c" {
		t.Errorf("wrong edge survived: %s -> %s", conns[0].From, conns[0].To)
	}
}

// ─────────────────────────────────────────────────────────────
// Curve geometry
// ─────────────────────────────────────────────────────────────

func TestConnectionCurve_EndsAtTargetLeftEdgeMidpoint(t *testing.T) {
	target := domain.Screen{Position: domain.Point{X: 1200, Y: 100}}
	c := canvas.ConnectionCurve(domain.Point{X: 0, Y: 0}, target, domain.PlatformWebApp)

	if !approx(c.End.X, 1200) || !approx(c.End.Y, 460) {
		t.Errorf("expected end (1200, 460), got (%v, %v)", c.End.X, c.End.Y)
	}
}

func TestConnectionCurve_OffsetGrowsWithDistance(t *testing.T) {
	target := domain.Screen{Position: domain.Point{X: 1200, Y: 0}}
	c := canvas.ConnectionCurve(domain.Point{X: 0, Y: 0}, target, domain.PlatformWebApp)

	// |dx| = 1200, so the control offset is 600.
	if !approx(c.C1.X, 600) || !approx(c.C2.X, 600) {
		t.Errorf("expected control X 600/600, got %v/%v", c.C1.X, c.C2.X)
	}
	if !approx(c.C1.Y, 0) || !approx(c.C2.Y, c.End.Y) {
		t.Errorf("control points left their rows: C1=(%v,%v) C2=(%v,%v)", c.C1.X, c.C1.Y, c.C2.X, c.C2.Y)
	}
}

func TestConnectionCurve_MinimumOffsetForCloseScreens(t *testing.T) {
	target := domain.Screen{Position: domain.Point{X: 100, Y: 0}}
	c := canvas.ConnectionCurve(domain.Point{X: 0, Y: 0}, target, domain.PlatformMobile)

	// |dx| * 0.5 = 50, below the floor; the offset clamps to 150.
	if !approx(c.C1.X, 150) || !approx(c.C2.X, -50) {
		t.Errorf("expected control X 150/-50, got %v/%v", c.C1.X, c.C2.X)
	}
}

// ─────────────────────────────────────────────────────────────
// Render surface
// ─────────────────────────────────────────────────────────────

func TestRenderState_IncludesDraftAndProvisionalCurve(t *testing.T) {
	e := newTestEngine(t)
	e.BeginConnection("s1")
	e.PointerMove(domain.Point{X: 900, Y: 300})

	rs := e.RenderState()
	if rs.Draft == nil {
		t.Fatal("draft missing from render state")
	}
	if !approx(rs.Draft.Origin.X, 1024) || !approx(rs.Draft.Origin.Y, 360) {
		t.Errorf("unexpected draft origin: %+v", rs.Draft.Origin)
	}
	// Default zoom is 0.6 with no pan, so the cursor lands at p/0.6.
	if !approx(rs.Cursor.X, 1500) || !approx(rs.Cursor.Y, 500) {
		t.Errorf("unexpected cursor: %+v", rs.Cursor)
	}
	if rs.DraftCurve == nil {
		t.Fatal("provisional curve missing")
	}
	if rs.DraftCurve.Start != rs.Draft.Origin {
		t.Errorf("provisional curve starts at %+v, want %+v", rs.DraftCurve.Start, rs.Draft.Origin)
	}
	if rs.DraftCurve.End != rs.Cursor {
		t.Errorf("provisional curve ends at %+v, want cursor %+v", rs.DraftCurve.End, rs.Cursor)
	}
	offset := (rs.Cursor.X - rs.Draft.Origin.X) * 0.5
	if !approx(rs.DraftCurve.C1.X, rs.Draft.Origin.X+offset) || !approx(rs.DraftCurve.C2.X, rs.Cursor.X-offset) {
		t.Errorf("unexpected control points: C1=%+v C2=%+v", rs.DraftCurve.C1, rs.DraftCurve.C2)
	}
}

func TestRenderState_PrecomputesCommittedEdgeCurves(t *testing.T) {
	e := newTestEngine(t)
	e.BeginConnection("s1")
	conn := e.PointerUp(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s2"})
	if conn == nil {
		t.Fatal("connection did not commit")
	}

	rs := e.RenderState()
	if rs.Draft != nil || rs.DraftCurve != nil {
		t.Error("committed edge left draft state behind")
	}
	if len(rs.Curves) != 1 {
		t.Fatalf("expected 1 curve, got %d", len(rs.Curves))
	}
	c, ok := rs.Curves[conn.ID]
	if !ok {
		t.Fatalf("no curve keyed by connection ID %s", conn.ID)
	}
	if !approx(c.Start.X, 1024) || !approx(c.Start.Y, 360) {
		t.Errorf("unexpected curve start: %+v", c.Start)
	}
	// s2 sits at (1200, 0); Web App screens are 1024x720.
	if !approx(c.End.X, 1200) || !approx(c.End.Y, 360) {
		t.Errorf("unexpected curve end: %+v", c.End)
	}
	// |dx| * 0.5 = 88, below the floor; the offset clamps to 150.
	if !approx(c.C1.X, 1174) || !approx(c.C2.X, 1050) {
		t.Errorf("unexpected control X: %v/%v", c.C1.X, c.C2.X)
	}

	// The committed state rides along unchanged.
	if len(rs.Screens) != 2 || len(rs.Connections) != 1 {
		t.Errorf("snapshot fields incomplete: %d screens, %d connections", len(rs.Screens), len(rs.Connections))
	}
}

func TestRenderState_DeletedScreenDropsItsCurves(t *testing.T) {
	e := newTestEngine(t)
	e.BeginConnection("s1")
	e.PointerUp(canvas.PointerTarget{Kind: canvas.TargetScreen, ID: "s2"})
	e.DeleteScreen("s2")

	rs := e.RenderState()
	if len(rs.Curves) != 0 {
		t.Errorf("expected no curves after cascade delete, got %d", len(rs.Curves))
	}
}
