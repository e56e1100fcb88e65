package tool

import (
	"math"

	"github.com/pkg/errors"

	"github.com/c9s/chartview/pkg/scale"
)

// HorizontalLine marks a price level across the whole chart width.
type HorizontalLine struct {
	Meta
	Price float64 `json:"price"`
}

func (t *HorizontalLine) Kind() Kind { return KindHorizontalLine }

func (t *HorizontalLine) Validate() error {
	if math.IsNaN(t.Price) || math.IsInf(t.Price, 0) {
		return errors.Errorf("%s: non-finite price", t.Kind())
	}
	return nil
}

// Handles is empty: the level has no control points, it is moved by
// recreating it.
func (t *HorizontalLine) Handles() []Point { return nil }

func (t *HorizontalLine) MoveHandle(int, Point) {}

func (t *HorizontalLine) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	return math.Abs(y-p.ScaleY(t.Price)) < epsilon, NoHandle
}

func (t *HorizontalLine) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}

// VerticalLine marks a candle index across the whole chart height.
type VerticalLine struct {
	Meta
	Index float64 `json:"index"`
}

func (t *VerticalLine) Kind() Kind { return KindVerticalLine }

func (t *VerticalLine) Validate() error {
	if math.IsNaN(t.Index) || math.IsInf(t.Index, 0) {
		return errors.Errorf("%s: non-finite index", t.Kind())
	}
	return nil
}

func (t *VerticalLine) Handles() []Point { return nil }

func (t *VerticalLine) MoveHandle(int, Point) {}

func (t *VerticalLine) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	return math.Abs(x-p.ScaleX(t.Index)) < epsilon, NoHandle
}

func (t *VerticalLine) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}
