package canvas

import (
	"math"

	"flowcraft/internal/domain"
)

// Zoom bounds. Wheel and button zoom share one clamp so the zoom level
// can never drift outside the configured range regardless of input path.
const (
	ZoomMin     = 0.1
	ZoomMax     = 3.0
	DefaultZoom = 0.6

	wheelZoomIn  = 1.1
	wheelZoomOut = 0.9
	buttonStep   = 0.1
)

// Transform is the canvas pan/zoom state. Pan is in pixel space (the
// canvas surface is translated before it is scaled), zoom is a scalar.
type Transform struct {
	Pan  domain.Point `json:"pan"`
	Zoom float64      `json:"zoom"`
}

// NewTransform returns the initial canvas transform.
func NewTransform() Transform {
	return Transform{Zoom: DefaultZoom}
}

// Rect is an axis-aligned rectangle in pixel space, used for the
// measured viewport bounds.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToCanvasSpace maps a pointer position (pixel space, window
// coordinates) into canvas space. viewport is the measured bounding
// rectangle of the canvas element. Every consumer of pointer
// coordinates must go through this conversion so that drag, the
// connection cursor and note placement can never disagree about where
// a point lands.
func (t Transform) ToCanvasSpace(p domain.Point, viewport Rect) domain.Point {
	return domain.Point{
		X: (p.X - viewport.Left - t.Pan.X) / t.Zoom,
		Y: (p.Y - viewport.Top - t.Pan.Y) / t.Zoom,
	}
}

// ToPixelSpace is the inverse of ToCanvasSpace.
func (t Transform) ToPixelSpace(p domain.Point, viewport Rect) domain.Point {
	return domain.Point{
		X: p.X*t.Zoom + t.Pan.X + viewport.Left,
		Y: p.Y*t.Zoom + t.Pan.Y + viewport.Top,
	}
}

// ViewportCenter returns the canvas-space point currently at the center
// of the viewport. Entities created "at center" are placed here. Before
// the viewport has been measured the rect is zero-sized; fall back to
// the canvas origin so creation still works.
func (t Transform) ViewportCenter(viewport Rect) domain.Point {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return domain.Point{}
	}
	return domain.Point{
		X: -t.Pan.X + viewport.Width/2/t.Zoom,
		Y: -t.Pan.Y + viewport.Height/2/t.Zoom,
	}
}

// ClampZoom forces z into [ZoomMin, ZoomMax]. Out-of-range requests are
// clamped, never rejected.
func ClampZoom(z float64) float64 {
	return math.Min(math.Max(ZoomMin, z), ZoomMax)
}

// WheelZoom applies one multiplicative wheel step. deltaY > 0 zooms out.
func (t Transform) WheelZoom(deltaY float64) Transform {
	factor := wheelZoomIn
	if deltaY > 0 {
		factor = wheelZoomOut
	}
	t.Zoom = ClampZoom(t.Zoom * factor)
	return t
}

// StepZoom applies one additive button step, in or out.
func (t Transform) StepZoom(in bool) Transform {
	if in {
		t.Zoom = ClampZoom(t.Zoom + buttonStep)
	} else {
		t.Zoom = ClampZoom(t.Zoom - buttonStep)
	}
	return t
}

// Scroll pans the canvas by a wheel delta. Pan lives in pixel space, so
// no zoom scaling applies.
func (t Transform) Scroll(deltaX, deltaY float64) Transform {
	t.Pan.X -= deltaX
	t.Pan.Y -= deltaY
	return t
}
