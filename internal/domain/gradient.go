package domain

// GradientStop is one point of a linear color ramp.
type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// GradientSpec is an ordered list of stops with non-decreasing offsets.
type GradientSpec []GradientStop

// Palette holds the setup, event and teardown colors.
type Palette [3]string

// DefaultPalette colors setup red, the event green and teardown yellow.
var DefaultPalette = Palette{"#F00", "#0F0", "#FF0"}

// Gradients bundles the renderable gradients of one record.
type Gradients struct {
	EventID  string       `json:"event_id"`
	Plan     GradientSpec `json:"plan"`
	Progress GradientSpec `json:"progress"`
	Finished bool         `json:"finished"`
}
