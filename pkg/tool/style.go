package tool

// LineStyle is the stroke record shared by every tool.
type LineStyle struct {
	Color string    `json:"color,omitempty"`
	Width float64   `json:"width,omitempty"`
	Dash  []float64 `json:"dash,omitempty"`
}

// FillStyle is the optional area record for shape tools.
type FillStyle struct {
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// TextStyle is the optional label record for text-bearing tools.
type TextStyle struct {
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

func DefaultLineStyle() LineStyle {
	return LineStyle{Color: "#2962ff", Width: 1.5}
}
