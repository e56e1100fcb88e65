// Package tool models user-drawn chart annotations. Geometry is kept
// strictly in data coordinates (candle index, price) so a tool stays
// valid under any zoom or pan; pixel space is reached only through a
// scale.Provider at hit-test and render time.
package tool

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/c9s/chartview/pkg/scale"
)

// Kind discriminates the closed set of tool variants.
type Kind string

const (
	KindTrendline       Kind = "trendline"
	KindRectangle       Kind = "rectangle"
	KindFibonacci       Kind = "fibonacci"
	KindHorizontalLine  Kind = "horizontal-line"
	KindVerticalLine    Kind = "vertical-line"
	KindArrow           Kind = "arrow"
	KindBrush           Kind = "brush"
	KindHighlighter     Kind = "highlighter"
	KindCallout         Kind = "callout"
	KindCircle          Kind = "circle"
	KindExtendedLine    Kind = "extended-line"
	KindParallelChannel Kind = "parallel-channel"
	KindPath            Kind = "path"
	KindPriceRange      Kind = "price-range"
	KindRay             Kind = "ray"
	KindText            Kind = "text"
)

// Kinds lists every supported tool kind.
var Kinds = []Kind{
	KindTrendline, KindRectangle, KindFibonacci, KindHorizontalLine,
	KindVerticalLine, KindArrow, KindBrush, KindHighlighter,
	KindCallout, KindCircle, KindExtendedLine, KindParallelChannel,
	KindPath, KindPriceRange, KindRay, KindText,
}

var ErrUnknownKind = errors.New("unknown tool kind")

// ParseKind validates a kind discriminant.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if Kind(s) == k {
			return k, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", s)
}

// NoHandle is returned by Hit when the cursor is on the tool body but
// not on a specific control point.
const NoHandle = -1

// Tool is one persisted annotation.
type Tool interface {
	Kind() Kind

	// GetMeta returns the shared fields (id, z-order, lock, selection,
	// styles). Mutation goes through the drawing engine only.
	GetMeta() *Meta

	// Validate rejects non-finite or structurally incomplete
	// geometry. It runs at the finalize and deserialize boundaries.
	Validate() error

	// Hit reports whether the pixel (x, y) is within epsilon of the
	// tool's projected geometry, and the nearest control-point index
	// if one is within epsilon (NoHandle otherwise).
	Hit(p scale.Provider, x, y, epsilon float64) (bool, int)

	// Handles returns the tool's control points in data coordinates.
	Handles() []Point

	// MoveHandle moves a single control point, leaving the rest of
	// the geometry untouched.
	MoveHandle(i int, pt Point)

	// Clone returns a deep copy.
	Clone() Tool
}

// Meta holds the fields every tool variant shares.
type Meta struct {
	ID       string `json:"id"`
	ZIndex   int64  `json:"zIndex"`
	Locked   bool   `json:"locked"`
	Selected bool   `json:"selected"`

	Line LineStyle  `json:"line"`
	Fill *FillStyle `json:"fill,omitempty"`
	Text *TextStyle `json:"text,omitempty"`
}

func (m *Meta) GetMeta() *Meta { return m }

func (m *Meta) cloneMeta() Meta {
	c := *m
	if m.Fill != nil {
		f := *m.Fill
		c.Fill = &f
	}
	if m.Text != nil {
		t := *m.Text
		c.Text = &t
	}
	return c
}

// NewID returns a fresh tool id.
func NewID() string {
	return uuid.NewString()
}
