package drawing

import (
	"github.com/c9s/chartview/pkg/tool"
)

// category groups tool kinds by creation arity; the state machine
// branches on the category, never on individual kinds.
type category int

const (
	// one pointer-down fully determines geometry
	oneShot category = iota

	// anchor on down, second point tracks the cursor, finalize on up
	twoPoint

	// parallel-channel: two clicks for the base line, third click
	// sets the offset and finalizes
	threePoint

	// every move while the button is held appends a point,
	// finalize on up
	accumulating
)

func kindCategory(k tool.Kind) category {
	switch k {
	case tool.KindHorizontalLine, tool.KindVerticalLine, tool.KindText:
		return oneShot
	case tool.KindParallelChannel:
		return threePoint
	case tool.KindBrush, tool.KindHighlighter, tool.KindPath:
		return accumulating
	}
	return twoPoint
}

// createSession is the transient state of one creation gesture.
type createSession struct {
	kind  tool.Kind
	draft tool.Tool
	stage int // three-point stage counter
}

// editSession is the transient state of one handle-drag gesture.
type editSession struct {
	target tool.Tool
	handle int
	moved  bool
}

// defaultLabel seeds text-bearing drafts; the host edits it after
// creation through UpdateLabel.
const defaultLabel = "Text"

// newDraft builds the initial draft for a creation gesture, with all
// geometry collapsed onto the first anchor.
func newDraft(kind tool.Kind, pt tool.Point, line tool.LineStyle) tool.Tool {
	meta := tool.Meta{ID: tool.NewID(), Line: line}

	switch kind {
	case tool.KindTrendline:
		return &tool.Trendline{Meta: meta, Start: pt, End: pt}
	case tool.KindArrow:
		return &tool.Arrow{Meta: meta, Start: pt, End: pt}
	case tool.KindRay:
		return &tool.Ray{Meta: meta, Start: pt, End: pt}
	case tool.KindExtendedLine:
		return &tool.ExtendedLine{Meta: meta, Start: pt, End: pt}
	case tool.KindRectangle:
		return &tool.Rectangle{Meta: meta, A: pt, B: pt}
	case tool.KindPriceRange:
		return &tool.PriceRange{Meta: meta, A: pt, B: pt}
	case tool.KindCircle:
		return &tool.Circle{Meta: meta, Center: pt, Radius: pt}
	case tool.KindFibonacci:
		fib := &tool.Fibonacci{Meta: meta, Anchor: pt, Target: pt}
		fib.Recompute()
		return fib
	case tool.KindParallelChannel:
		return &tool.ParallelChannel{Meta: meta, Start: pt, End: pt}
	case tool.KindBrush:
		return &tool.Brush{Meta: meta, Points: []tool.Point{pt}}
	case tool.KindHighlighter:
		return &tool.Highlighter{Meta: meta, Points: []tool.Point{pt}}
	case tool.KindPath:
		return &tool.Path{Meta: meta, Points: []tool.Point{pt}}
	case tool.KindHorizontalLine:
		return &tool.HorizontalLine{Meta: meta, Price: pt.Price}
	case tool.KindVerticalLine:
		return &tool.VerticalLine{Meta: meta, Index: pt.Index}
	case tool.KindText:
		return &tool.TextNote{Meta: meta, Anchor: pt, Label: defaultLabel}
	case tool.KindCallout:
		return &tool.Callout{Meta: meta, Anchor: pt, Target: pt, Label: defaultLabel}
	}
	return nil
}

// track updates the draft's live point from the cursor.
func (s *createSession) track(pt tool.Point) {
	switch v := s.draft.(type) {
	case *tool.Trendline:
		v.End = pt
	case *tool.Arrow:
		v.End = pt
	case *tool.Ray:
		v.End = pt
	case *tool.ExtendedLine:
		v.End = pt
	case *tool.Rectangle:
		v.B = pt
	case *tool.PriceRange:
		v.B = pt
	case *tool.Circle:
		v.Radius = pt
	case *tool.Fibonacci:
		// all level prices are recomputed from the live pair
		v.Target = pt
		v.Recompute()
	case *tool.Callout:
		v.Target = pt
	case *tool.ParallelChannel:
		if s.stage <= 1 {
			v.End = pt
		} else {
			v.Offset = pt.Price - channelPriceAt(v, pt.Index)
		}
	}
}

// append extends an accumulating draft.
func (s *createSession) append(pt tool.Point) {
	switch v := s.draft.(type) {
	case *tool.Brush:
		v.Points = append(v.Points, pt)
	case *tool.Highlighter:
		v.Points = append(v.Points, pt)
	case *tool.Path:
		v.Points = append(v.Points, pt)
	}
}

// channelPriceAt interpolates the base line's price at an index.
func channelPriceAt(c *tool.ParallelChannel, index float64) float64 {
	dx := c.End.Index - c.Start.Index
	if dx == 0 {
		return c.Start.Price
	}
	t := (index - c.Start.Index) / dx
	return c.Start.Price + t*(c.End.Price-c.Start.Price)
}
