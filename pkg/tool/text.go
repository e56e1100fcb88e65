package tool

import (
	"github.com/pkg/errors"

	"github.com/c9s/chartview/pkg/scale"
)

// TextNote is a one-shot label anchored at a single data point.
type TextNote struct {
	Meta
	Anchor Point  `json:"anchor"`
	Label  string `json:"label"`
}

func (t *TextNote) Kind() Kind { return KindText }

func (t *TextNote) Validate() error {
	if !t.Anchor.Finite() {
		return errors.Errorf("%s: non-finite anchor", t.Kind())
	}
	if t.Label == "" {
		return errors.Errorf("%s: missing label", t.Kind())
	}
	return nil
}

func (t *TextNote) Handles() []Point { return []Point{t.Anchor} }

func (t *TextNote) MoveHandle(i int, pt Point) {
	if i == 0 {
		t.Anchor = pt
	}
}

func (t *TextNote) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	if h := nearestHandle(p, t.Handles(), x, y, epsilon); h != NoHandle {
		return true, h
	}
	return false, NoHandle
}

func (t *TextNote) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}

// Callout is a label at a target point with a leader line back to the
// anchor.
type Callout struct {
	Meta
	Anchor Point  `json:"anchor"`
	Target Point  `json:"target"`
	Label  string `json:"label"`
}

func (t *Callout) Kind() Kind { return KindCallout }

func (t *Callout) Validate() error {
	if err := validateTwoPoint(t.Kind(), t.Anchor, t.Target); err != nil {
		return err
	}
	if t.Label == "" {
		return errors.Errorf("%s: missing label", t.Kind())
	}
	return nil
}

func (t *Callout) Handles() []Point { return []Point{t.Anchor, t.Target} }

func (t *Callout) MoveHandle(i int, pt Point) {
	moveTwoPointHandle(i, pt, &t.Anchor, &t.Target)
}

func (t *Callout) Hit(p scale.Provider, x, y, epsilon float64) (bool, int) {
	return twoPointHit(p, t.Anchor, t.Target, x, y, epsilon, segmentDistance)
}

func (t *Callout) Clone() Tool {
	c := *t
	c.Meta = t.cloneMeta()
	return &c
}
