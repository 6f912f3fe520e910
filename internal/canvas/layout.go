package canvas

import (
	"math"

	"flowcraft/internal/domain"
)

// Grid layout spacing: screens sit in a square-ish grid with a fixed
// gutter between them, offset from the canvas origin.
const (
	layoutGutter = 150
	layoutOrigin = 100
)

// GridPositions computes auto-layout positions for count screens of the
// given platform's dimensions. It is a pure function of its inputs —
// prior positions never influence the result, so applying it twice in a
// row yields identical placements.
func GridPositions(count int, platform domain.PlatformType) []domain.Point {
	if count <= 0 {
		return nil
	}
	columns := int(math.Ceil(math.Sqrt(float64(count))))
	dims := domain.ScreenDimensions(platform)
	xSpacing := dims.Width + layoutGutter
	ySpacing := dims.Height + layoutGutter

	positions := make([]domain.Point, count)
	for i := range positions {
		positions[i] = domain.Point{
			X: float64(i%columns)*xSpacing + layoutOrigin,
			Y: float64(i/columns)*ySpacing + layoutOrigin,
		}
	}
	return positions
}

// AutoLayout rearranges every screen into the grid and resets the pan
// to the origin so the grid is in view.
func (e *Engine) AutoLayout() {
	e.mu.Lock()
	defer e.mu.Unlock()

	positions := GridPositions(len(e.screens), e.platform)
	for i := range e.screens {
		e.screens[i].Position = positions[i]
	}
	e.transform.Pan = domain.Point{}
}
