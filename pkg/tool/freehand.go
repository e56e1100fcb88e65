package tool

import (
	"github.com/pkg/errors"

	"github.com/c9s/chartview/pkg/scale"
)

func validatePointSeq(kind Kind, pts []Point) error {
	if len(pts) == 0 {
		return errors.Errorf("%s: empty point sequence", kind)
	}
	for _, pt := range pts {
		if !pt.Finite() {
			return errors.Errorf("%s: non-finite point", kind)
		}
	}
	return nil
}

// pointSeqHit reports a hit when any constituent point is within
// epsilon of the cursor.
func pointSeqHit(p scale.Provider, pts []Point, x, y, epsilon float64) (bool, int) {
	if h := nearestHandle(p, pts, x, y, epsilon); h != NoHandle {
		return true, h
	}
	return false, NoHandle
}

func moveSeqHandle(pts []Point, i int, pt Point) {
	if i >= 0 && i < len(pts) {
		pts[i] = pt
	}
}

// Brush is a freehand stroke accumulated while the button is held.
type Brush struct {
	Meta
	Points []Point `json:"points"`
}

func (t *Brush) Kind() Kind       { return KindBrush }
func (t *Brush) Validate() error  { return validatePointSeq(t.Kind(), t.Points) }
func (t *Brush) Handles() []Point { return t.Points }

func (t *Brush) MoveHandle(i int, pt Point) { moveSeqHandle(t.Points, i, pt) }

func (t *Brush) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	return pointSeqHit(p, t.Points, x, y, epsilon)
}

func (t *Brush) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	c.Points = clonePoints(t.Points)
	return &c
}

// Highlighter is a brush rendered wide and translucent.
type Highlighter struct {
	Meta
	Points []Point `json:"points"`
}

func (t *Highlighter) Kind() Kind       { return KindHighlighter }
func (t *Highlighter) Validate() error  { return validatePointSeq(t.Kind(), t.Points) }
func (t *Highlighter) Handles() []Point { return t.Points }

func (t *Highlighter) MoveHandle(i int, pt Point) { moveSeqHandle(t.Points, i, pt) }

func (t *Highlighter) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	return pointSeqHit(p, t.Points, x, y, epsilon)
}

func (t *Highlighter) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	c.Points = clonePoints(t.Points)
	return &c
}

// Path is a polyline of accumulated points.
type Path struct {
	Meta
	Points []Point `json:"points"`
}

func (t *Path) Kind() Kind       { return KindPath }
func (t *Path) Validate() error  { return validatePointSeq(t.Kind(), t.Points) }
func (t *Path) Handles() []Point { return t.Points }

func (t *Path) MoveHandle(i int, pt Point) { moveSeqHandle(t.Points, i, pt) }

func (t *Path) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	return pointSeqHit(p, t.Points, x, y, epsilon)
}

func (t *Path) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	c.Points = clonePoints(t.Points)
	return &c
}
