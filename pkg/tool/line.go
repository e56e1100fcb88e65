package tool

import (
	"github.com/pkg/errors"

	"github.com/c9s/chartview/pkg/scale"
)

func validateTwoPoint(kind Kind, start, end Point) error {
	if !start.Finite() || !end.Finite() {
		return errors.Errorf("%s: non-finite geometry", kind)
	}
	if start == end {
		return errors.Errorf("%s: degenerate geometry, both points equal", kind)
	}
	return nil
}

func moveTwoPointHandle(i int, pt Point, start, end *Point) {
	switch i {
	case 0:
		*start = pt
	case 1:
		*end = pt
	}
}

// Trendline is a finite segment between two anchors.
type Trendline struct {
	Meta
	Start Point `json:"start"`
	End   Point `json:"end"`
}

func (t *Trendline) Kind() Kind      { return KindTrendline }
func (t *Trendline) Validate() error { return validateTwoPoint(t.Kind(), t.Start, t.End) }
func (t *Trendline) Handles() []Point {
	return []Point{t.Start, t.End}
}

func (t *Trendline) MoveHandle(i int, pt Point) {
	moveTwoPointHandle(i, pt, &t.Start, &t.End)
}

func (t *Trendline) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	return twoPointHit(p, t.Start, t.End, x, y, epsilon, segmentDistance)
}

func (t *Trendline) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}

// Arrow is a trendline with a head at the end anchor; the head is a
// render concern, the geometry is the segment.
type Arrow struct {
	Meta
	Start Point `json:"start"`
	End   Point `json:"end"`
}

func (t *Arrow) Kind() Kind       { return KindArrow }
func (t *Arrow) Validate() error  { return validateTwoPoint(t.Kind(), t.Start, t.End) }
func (t *Arrow) Handles() []Point { return []Point{t.Start, t.End} }

func (t *Arrow) MoveHandle(i int, pt Point) {
	moveTwoPointHandle(i, pt, &t.Start, &t.End)
}

func (t *Arrow) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	return twoPointHit(p, t.Start, t.End, x, y, epsilon, segmentDistance)
}

func (t *Arrow) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}

// Ray extends from the start anchor through the end anchor without
// bound.
type Ray struct {
	Meta
	Start Point `json:"start"`
	End   Point `json:"end"`
}

func (t *Ray) Kind() Kind       { return KindRay }
func (t *Ray) Validate() error  { return validateTwoPoint(t.Kind(), t.Start, t.End) }
func (t *Ray) Handles() []Point { return []Point{t.Start, t.End} }

func (t *Ray) MoveHandle(i int, pt Point) {
	moveTwoPointHandle(i, pt, &t.Start, &t.End)
}

func (t *Ray) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	return twoPointHit(p, t.Start, t.End, x, y, epsilon, rayDistance)
}

func (t *Ray) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}

// ExtendedLine is unbounded on both sides.
type ExtendedLine struct {
	Meta
	Start Point `json:"start"`
	End   Point `json:"end"`
}

func (t *ExtendedLine) Kind() Kind       { return KindExtendedLine }
func (t *ExtendedLine) Validate() error  { return validateTwoPoint(t.Kind(), t.Start, t.End) }
func (t *ExtendedLine) Handles() []Point { return []Point{t.Start, t.End} }

func (t *ExtendedLine) MoveHandle(i int, pt Point) {
	moveTwoPointHandle(i, pt, &t.Start, &t.End)
}

func (t *ExtendedLine) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	return twoPointHit(p, t.Start, t.End, x, y, epsilon, lineDistance)
}

func (t *ExtendedLine) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}
