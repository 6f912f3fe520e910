package canvas

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"flowcraft/internal/domain"
)

// Height of a screen card's header bar. Element coordinates reported by
// a rendering context are relative to its document; the header sits
// above it, so the offset is added when mapping into canvas space.
const headerHeight = 60

// Minimum horizontal control-point offset for connection curves. Keeps
// the curve readable when screens are close together, overlapping or
// stacked vertically.
const minCurveOffset = 150

// ConnectionDraft is the transient "drawing a new edge" state. It
// exists only between the connector pointer-down (or START_CONNECTION
// report) and the next pointer-up.
type ConnectionDraft struct {
	SourceScreenID string       `json:"sourceScreenId"`
	SourceElement  string       `json:"sourceElement,omitempty"`
	Origin         domain.Point `json:"origin"` // canvas space
}

// BeginConnection starts drawing an edge from a screen's connector
// affordance. The origin is the screen's right-edge midpoint. Unknown
// screen IDs are ignored.
func (e *Engine) BeginConnection(screenID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.screenByID(screenID)
	if !ok {
		return
	}
	dims := domain.ScreenDimensions(e.platform)
	e.draft = &ConnectionDraft{
		SourceScreenID: screenID,
		Origin: domain.Point{
			X: s.Position.X + dims.Width,
			Y: s.Position.Y + dims.Height/2,
		},
	}
	e.cursor = e.draft.Origin
}

// BeginElementConnection starts drawing an edge from an interactive
// element inside a screen, as reported by the rendering context in
// prototype mode. x/y are the element's center relative to the screen's
// document; the header offset maps them into canvas space.
func (e *Engine) BeginElementConnection(screenID, elementID string, x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.screenByID(screenID)
	if !ok {
		return
	}
	e.draft = &ConnectionDraft{
		SourceScreenID: screenID,
		SourceElement:  elementID,
		Origin: domain.Point{
			X: s.Position.X + x,
			Y: s.Position.Y + y + headerHeight,
		},
	}
	e.cursor = e.draft.Origin
}

// completeConnectionLocked commits the in-progress edge onto targetID.
// Self-loops and unknown targets discard the draft silently; no edge is
// created and no error surfaces.
func (e *Engine) completeConnectionLocked(targetID string) *domain.Connection {
	draft := e.draft
	e.draft = nil
	if draft == nil {
		return nil
	}
	if draft.SourceScreenID == targetID {
		return nil
	}
	if _, ok := e.screenByID(draft.SourceScreenID); !ok {
		return nil
	}
	if _, ok := e.screenByID(targetID); !ok {
		return nil
	}

	origin := draft.Origin
	conn := domain.Connection{
		ID:          uuid.New().String(),
		From:        draft.SourceScreenID,
		To:          targetID,
		FromElement: draft.SourceElement,
		StartCoords: &origin,
	}
	e.conns = append(e.conns, conn)
	return &conn
}

// Connect commits an edge directly, bypassing the drawing state. The
// same invariants apply: both endpoints must exist and self-loops are
// rejected. Used by programmatic callers (MCP tools).
func (e *Engine) Connect(fromID, toID string) (*domain.Connection, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if fromID == toID {
		return nil, fmt.Errorf("cannot connect a screen to itself")
	}
	from, ok := e.screenByID(fromID)
	if !ok {
		return nil, fmt.Errorf("screen %s not found", fromID)
	}
	if _, ok := e.screenByID(toID); !ok {
		return nil, fmt.Errorf("screen %s not found", toID)
	}

	dims := domain.ScreenDimensions(e.platform)
	start := domain.Point{
		X: from.Position.X + dims.Width,
		Y: from.Position.Y + dims.Height/2,
	}
	conn := domain.Connection{
		ID:          uuid.New().String(),
		From:        fromID,
		To:          toID,
		StartCoords: &start,
	}
	e.conns = append(e.conns, conn)
	return &conn, nil
}

// CancelConnection discards the in-progress edge, if any.
func (e *Engine) CancelConnection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = nil
}

// Draft returns a copy of the in-progress connection state and the live
// cursor point, or nil when nothing is being drawn.
func (e *Engine) Draft() (*ConnectionDraft, domain.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return nil, domain.Point{}
	}
	d := *e.draft
	return &d, e.cursor
}

// Curve is a cubic bezier in canvas space, ready for the renderer.
type Curve struct {
	Start domain.Point `json:"start"`
	C1    domain.Point `json:"c1"`
	C2    domain.Point `json:"c2"`
	End   domain.Point `json:"end"`
}

// ConnectionCurve builds the edge curve from an arbitrary start point to
// a target screen's left-edge midpoint. The horizontal control offset
// grows with distance but never shrinks below minCurveOffset.
func ConnectionCurve(start domain.Point, target domain.Screen, platform domain.PlatformType) Curve {
	dims := domain.ScreenDimensions(platform)
	return curveBetween(start, domain.Point{
		X: target.Position.X,
		Y: target.Position.Y + dims.Height/2,
	})
}

// curveBetween is the shared bezier rule: committed edges and the
// provisional edge toward the live cursor use the same control offsets.
func curveBetween(start, end domain.Point) Curve {
	offset := math.Max(math.Abs(end.X-start.X)*0.5, minCurveOffset)
	return Curve{
		Start: start,
		C1:    domain.Point{X: start.X + offset, Y: start.Y},
		C2:    domain.Point{X: end.X - offset, Y: end.Y},
		End:   end,
	}
}

// curvesLocked precomputes the bezier for every committed edge, keyed by
// connection ID. Falls back to the source's right-edge midpoint when an
// edge carries no pinned start point.
func (e *Engine) curvesLocked() map[string]Curve {
	curves := make(map[string]Curve, len(e.conns))
	dims := domain.ScreenDimensions(e.platform)
	for _, conn := range e.conns {
		target, ok := e.screenByID(conn.To)
		if !ok {
			continue
		}
		var start domain.Point
		if conn.StartCoords != nil {
			start = *conn.StartCoords
		} else if from, ok := e.screenByID(conn.From); ok {
			start = domain.Point{
				X: from.Position.X + dims.Width,
				Y: from.Position.Y + dims.Height/2,
			}
		} else {
			continue
		}
		curves[conn.ID] = ConnectionCurve(start, target, e.platform)
	}
	return curves
}

// Connections returns a copy of the committed edges.
func (e *Engine) Connections() []domain.Connection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Connection(nil), e.conns...)
}
