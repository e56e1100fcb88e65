package tool

import (
	"math"

	"github.com/c9s/chartview/pkg/scale"
)

// Rectangle spans the axis-aligned box between two opposite corners.
type Rectangle struct {
	Meta
	A Point `json:"a"`
	B Point `json:"b"`
}

func (t *Rectangle) Kind() Kind       { return KindRectangle }
func (t *Rectangle) Validate() error  { return validateTwoPoint(t.Kind(), t.A, t.B) }
func (t *Rectangle) Handles() []Point { return []Point{t.A, t.B} }

func (t *Rectangle) MoveHandle(i int, pt Point) {
	moveTwoPointHandle(i, pt, &t.A, &t.B)
}

func (t *Rectangle) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	if h := nearestHandle(p, t.Handles(), x, y, epsilon); h != NoHandle {
		return true, h
	}
	x1, y1 := project(p, t.A)
	x2, y2 := project(p, t.B)
	return inExpandedBox(x, y, x1, y1, x2, y2, epsilon), NoHandle
}

func (t *Rectangle) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}

// PriceRange marks the price distance between two corners; geometry
// is a rectangle, the render layer adds the delta label.
type PriceRange struct {
	Meta
	A Point `json:"a"`
	B Point `json:"b"`
}

func (t *PriceRange) Kind() Kind       { return KindPriceRange }
func (t *PriceRange) Validate() error  { return validateTwoPoint(t.Kind(), t.A, t.B) }
func (t *PriceRange) Handles() []Point { return []Point{t.A, t.B} }

// PriceDelta is the signed price distance the tool annotates.
func (t *PriceRange) PriceDelta() float64 {
	return t.B.Price - t.A.Price
}

// PercentDelta is the price distance relative to the first corner.
func (t *PriceRange) PercentDelta() float64 {
	if t.A.Price == 0 {
		return 0
	}
	return t.PriceDelta() / math.Abs(t.A.Price) * 100
}

func (t *PriceRange) MoveHandle(i int, pt Point) {
	moveTwoPointHandle(i, pt, &t.A, &t.B)
}

func (t *PriceRange) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	if h := nearestHandle(p, t.Handles(), x, y, epsilon); h != NoHandle {
		return true, h
	}
	x1, y1 := project(p, t.A)
	x2, y2 := project(p, t.B)
	return inExpandedBox(x, y, x1, y1, x2, y2, epsilon), NoHandle
}

func (t *PriceRange) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}

// Circle is the ellipse centered on Center touching Radius; the two
// data points define the pixel radii under the current view.
type Circle struct {
	Meta
	Center Point `json:"center"`
	Radius Point `json:"radius"`
}

func (t *Circle) Kind() Kind       { return KindCircle }
func (t *Circle) Validate() error  { return validateTwoPoint(t.Kind(), t.Center, t.Radius) }
func (t *Circle) Handles() []Point { return []Point{t.Center, t.Radius} }

func (t *Circle) MoveHandle(i int, pt Point) {
	moveTwoPointHandle(i, pt, &t.Center, &t.Radius)
}

func (t *Circle) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	if h := nearestHandle(p, t.Handles(), x, y, epsilon); h != NoHandle {
		return true, h
	}

	cx, cy := project(p, t.Center)
	rx := math.Abs(p.ScaleX(t.Radius.Index) - cx)
	ry := math.Abs(p.ScaleY(t.Radius.Price) - cy)
	if rx < epsilon {
		rx = epsilon
	}
	if ry < epsilon {
		ry = epsilon
	}

	// normalized ellipse equation; the tolerance is the epsilon band
	// scaled to the smaller radius
	value := math.Pow((x-cx)/rx, 2) + math.Pow((y-cy)/ry, 2) - 1
	tolerance := 2 * epsilon / math.Min(rx, ry)
	return math.Abs(value) < tolerance, NoHandle
}

func (t *Circle) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}
