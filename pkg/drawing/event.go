package drawing

// PointerKind is the normalized pointer event phase.
type PointerKind string

const (
	PointerDown PointerKind = "down"
	PointerMove PointerKind = "move"
	PointerUp   PointerKind = "up"
)

// PointerEvent is a normalized pointer sample in pixel coordinates.
// Device-pixel-ratio correction and touch/mouse unification happen
// upstream.
type PointerEvent struct {
	Kind    PointerKind `json:"kind"`
	X       float64     `json:"x"`
	Y       float64     `json:"y"`
	Buttons int         `json:"buttons"`
}

// Mode selects how pointer events are interpreted.
type Mode int

const (
	// ModeChart leaves pointer events to the host (panning).
	ModeChart Mode = iota

	// ModeDraw feeds pointer events to the creation state machine.
	ModeDraw

	// ModeSelect hit-tests and edits existing tools.
	ModeSelect
)

func (m Mode) String() string {
	switch m {
	case ModeChart:
		return "chart"
	case ModeDraw:
		return "draw"
	case ModeSelect:
		return "select"
	}
	return "unknown"
}

// ParseMode maps the wire name back to a mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "chart":
		return ModeChart, true
	case "draw":
		return ModeDraw, true
	case "select":
		return ModeSelect, true
	}
	return ModeChart, false
}
