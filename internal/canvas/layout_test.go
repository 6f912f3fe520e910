package canvas_test

import (
	"testing"

	"flowcraft/internal/canvas"
	"flowcraft/internal/domain"
)

func TestGridPositions_SquareishGrid(t *testing.T) {
	// 5 screens -> 3 columns. Web App screens are 1024x720 with a 150
	// gutter, offset 100 from the origin.
	positions := canvas.GridPositions(5, domain.PlatformWebApp)
	if len(positions) != 5 {
		t.Fatalf("expected 5 positions, got %d", len(positions))
	}

	want := []domain.Point{
		{X: 100, Y: 100},
		{X: 1274, Y: 100},
		{X: 2448, Y: 100},
		{X: 100, Y: 970},
		{X: 1274, Y: 970},
	}
	for i, w := range want {
		if !approx(positions[i].X, w.X) || !approx(positions[i].Y, w.Y) {
			t.Errorf("position %d: expected (%v, %v), got (%v, %v)", i, w.X, w.Y, positions[i].X, positions[i].Y)
		}
	}
}

func TestGridPositions_MobileSpacing(t *testing.T) {
	positions := canvas.GridPositions(2, domain.PlatformMobile)

	// Mobile screens are 375x812; second screen sits one column over.
	if !approx(positions[1].X, 100+375+150) || !approx(positions[1].Y, 100) {
		t.Errorf("expected (625, 100), got (%v, %v)", positions[1].X, positions[1].Y)
	}
}

func TestGridPositions_EmptyAndSingle(t *testing.T) {
	if got := canvas.GridPositions(0, domain.PlatformWebApp); got != nil {
		t.Errorf("expected nil for zero screens, got %v", got)
	}
	single := canvas.GridPositions(1, domain.PlatformWebApp)
	if len(single) != 1 || !approx(single[0].X, 100) || !approx(single[0].Y, 100) {
		t.Errorf("expected [(100, 100)], got %v", single)
	}
}

func TestAutoLayout_IdempotentAndResetsPan(t *testing.T) {
	e := newTestEngine(t)
	e.Wheel(300, -200, false) // scroll the pan away from the origin
	e.MoveScreen("s1", -5000, 9999)

	e.AutoLayout()
	first := e.Screens()

	if pan := e.Transform().Pan; pan.X != 0 || pan.Y != 0 {
		t.Errorf("expected pan reset to origin, got (%v, %v)", pan.X, pan.Y)
	}

	// Applying the layout again must not move anything.
	e.AutoLayout()
	second := e.Screens()
	for i := range first {
		if first[i].Position != second[i].Position {
			t.Errorf("screen %d moved on second layout: %v -> %v", i, first[i].Position, second[i].Position)
		}
	}
}
