package tool

import (
	"math"

	"github.com/pkg/errors"

	"github.com/c9s/chartview/pkg/scale"
)

// FibRatios is the canonical retracement ratio set.
var FibRatios = []float64{0, 0.236, 0.382, 0.5, 0.618, 1.0}

// FibLevel is one retracement line of a fibonacci tool.
type FibLevel struct {
	Ratio float64 `json:"ratio"`
	Price float64 `json:"price"`
}

// Fibonacci spans retracement levels between an anchor and a target.
// Levels are derived state: they are recomputed from the anchor and
// target on every geometry change.
type Fibonacci struct {
	Meta
	Anchor Point      `json:"anchor"`
	Target Point      `json:"target"`
	Levels []FibLevel `json:"levels"`
}

// ComputeFibLevels derives the retracement prices for an anchor and
// target price pair.
func ComputeFibLevels(anchorPrice, targetPrice float64) []FibLevel {
	lo := math.Min(anchorPrice, targetPrice)
	span := math.Abs(targetPrice - anchorPrice)

	levels := make([]FibLevel, len(FibRatios))
	for i, ratio := range FibRatios {
		levels[i] = FibLevel{Ratio: ratio, Price: lo + ratio*span}
	}
	return levels
}

func (t *Fibonacci) Kind() Kind { return KindFibonacci }

// Recompute refreshes the level prices from the current anchor and
// target.
func (t *Fibonacci) Recompute() {
	t.Levels = ComputeFibLevels(t.Anchor.Price, t.Target.Price)
}

func (t *Fibonacci) Validate() error {
	if err := validateTwoPoint(t.Kind(), t.Anchor, t.Target); err != nil {
		return err
	}
	if len(t.Levels) == 0 {
		return errors.Errorf("%s: missing levels", t.Kind())
	}
	for _, lv := range t.Levels {
		if math.IsNaN(lv.Price) || math.IsInf(lv.Price, 0) {
			return errors.Errorf("%s: non-finite level price", t.Kind())
		}
	}
	return nil
}

func (t *Fibonacci) Handles() []Point { return []Point{t.Anchor, t.Target} }

func (t *Fibonacci) MoveHandle(i int, pt Point) {
	moveTwoPointHandle(i, pt, &t.Anchor, &t.Target)
	t.Recompute()
}

func (t *Fibonacci) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	if h := nearestHandle(p, t.Handles(), x, y, epsilon); h != NoHandle {
		return true, h
	}
	return false, NoHandle
}

func (t *Fibonacci) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	c.Levels = make([]FibLevel, len(t.Levels))
	copy(c.Levels, t.Levels)
	return &c
}
