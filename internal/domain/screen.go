package domain

// ScreenStatus tracks where a screen is in its generation lifecycle.
type ScreenStatus string

const (
	StatusDraft      ScreenStatus = "draft"
	StatusGenerating ScreenStatus = "generating"
	StatusCompleted  ScreenStatus = "completed"
	StatusError      ScreenStatus = "error"
)

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Screen is one generated UI screen placed on the canvas.
// Position is in canvas space, independent of pan/zoom.
// HTML holds the stored markup without the injected tool script.
type Screen struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Elements    []string     `json:"elements"`
	Position    Point        `json:"position"`
	Status      ScreenStatus `json:"status"`
	HTML        string       `json:"html"`
}

// PlatformType selects the display dimensions for every screen in a flow.
type PlatformType string

const (
	PlatformWebApp    PlatformType = "Web App"
	PlatformSaaS      PlatformType = "SaaS Dashboard"
	PlatformEcommerce PlatformType = "E-commerce"
	PlatformMobile    PlatformType = "Mobile App"
)

// Dimensions is a screen's display size in canvas units.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ScreenDimensions returns the frame size for a platform type.
// Desktop-class platforms share one size; everything else renders
// as a mobile frame.
func ScreenDimensions(t PlatformType) Dimensions {
	switch t {
	case PlatformWebApp, PlatformSaaS, PlatformEcommerce:
		return Dimensions{Width: 1024, Height: 720}
	default:
		return Dimensions{Width: 375, Height: 812}
	}
}
