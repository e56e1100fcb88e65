package tool

import (
	"math"

	"github.com/pkg/errors"

	"github.com/c9s/chartview/pkg/scale"
)

// ParallelChannel is a pair of parallel segments: the base line from
// Start to End, and a second line offset from it by Offset in price.
type ParallelChannel struct {
	Meta
	Start  Point   `json:"start"`
	End    Point   `json:"end"`
	Offset float64 `json:"offset"`
}

func (t *ParallelChannel) Kind() Kind { return KindParallelChannel }

func (t *ParallelChannel) Validate() error {
	if err := validateTwoPoint(t.Kind(), t.Start, t.End); err != nil {
		return err
	}
	if math.IsNaN(t.Offset) || math.IsInf(t.Offset, 0) {
		return errors.Errorf("%s: non-finite offset", t.Kind())
	}
	return nil
}

// Second returns the offset line's endpoints.
func (t *ParallelChannel) Second() (Point, Point) {
	return Point{Index: t.Start.Index, Price: t.Start.Price + t.Offset},
		Point{Index: t.End.Index, Price: t.End.Price + t.Offset}
}

// Handles are the base endpoints plus the midpoint of the offset
// line; dragging the third handle adjusts the offset only.
func (t *ParallelChannel) Handles() []Point {
	s2, e2 := t.Second()
	return []Point{
		t.Start,
		t.End,
		{Index: (s2.Index + e2.Index) / 2, Price: (s2.Price + e2.Price) / 2},
	}
}

func (t *ParallelChannel) MoveHandle(i int, pt Point) {
	switch i {
	case 0:
		t.Start = pt
	case 1:
		t.End = pt
	case 2:
		t.Offset = pt.Price - (t.Start.Price+t.End.Price)/2
	}
}

func (t *ParallelChannel) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	if h := nearestHandle(p, t.Handles(), x, y, epsilon); h != NoHandle {
		return true, h
	}

	// each constituent line is hit-tested independently
	x1, y1 := project(p, t.Start)
	x2, y2 := project(p, t.End)
	if segmentDistance(x, y, x1, y1, x2, y2) < epsilon {
		return true, NoHandle
	}

	s2, e2 := t.Second()
	x1, y1 = project(p, s2)
	x2, y2 = project(p, e2)
	if segmentDistance(x, y, x1, y1, x2, y2) < epsilon {
		return true, NoHandle
	}
	return false, NoHandle
}

func (t *ParallelChannel) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}
