package tool

import (
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// envelope is the snapshot wire form of a tool: shared fields plus
// the union of all kind-specific geometry fields. Absent zIndex and
// locked values take defaults on decode so older snapshots keep
// loading.
type envelope struct {
	ID       string     `json:"id,omitempty"`
	Kind     string     `json:"kind"`
	ZIndex   *int64     `json:"zIndex,omitempty"`
	Locked   bool       `json:"locked,omitempty"`
	Selected bool       `json:"selected,omitempty"`
	Line     *LineStyle `json:"line,omitempty"`
	Fill     *FillStyle `json:"fill,omitempty"`
	Text     *TextStyle `json:"text,omitempty"`

	Start  *Point     `json:"start,omitempty"`
	End    *Point     `json:"end,omitempty"`
	A      *Point     `json:"a,omitempty"`
	B      *Point     `json:"b,omitempty"`
	Center *Point     `json:"center,omitempty"`
	Radius *Point     `json:"radius,omitempty"`
	Anchor *Point     `json:"anchor,omitempty"`
	Target *Point     `json:"target,omitempty"`
	Points []Point    `json:"points,omitempty"`
	Price  *float64   `json:"price,omitempty"`
	Index  *float64   `json:"index,omitempty"`
	Offset *float64   `json:"offset,omitempty"`
	Label  string     `json:"label,omitempty"`
	Levels []FibLevel `json:"levels,omitempty"`
}

func metaEnvelope(t Tool) envelope {
	m := t.GetMeta()
	z := m.ZIndex
	env := envelope{
		ID:       m.ID,
		Kind:     string(t.Kind()),
		ZIndex:   &z,
		Locked:   m.Locked,
		Selected: m.Selected,
		Fill:     m.Fill,
		Text:     m.Text,
	}
	line := m.Line
	env.Line = &line
	return env
}

func encodeTool(t Tool) (envelope, error) {
	env := metaEnvelope(t)

	switch v := t.(type) {
	case *Trendline:
		env.Start, env.End = &v.Start, &v.End
	case *Arrow:
		env.Start, env.End = &v.Start, &v.End
	case *Ray:
		env.Start, env.End = &v.Start, &v.End
	case *ExtendedLine:
		env.Start, env.End = &v.Start, &v.End
	case *Rectangle:
		env.A, env.B = &v.A, &v.B
	case *PriceRange:
		env.A, env.B = &v.A, &v.B
	case *Circle:
		env.Center, env.Radius = &v.Center, &v.Radius
	case *Fibonacci:
		env.Anchor, env.Target = &v.Anchor, &v.Target
		env.Levels = v.Levels
	case *ParallelChannel:
		env.Start, env.End = &v.Start, &v.End
		offset := v.Offset
		env.Offset = &offset
	case *HorizontalLine:
		price := v.Price
		env.Price = &price
	case *VerticalLine:
		index := v.Index
		env.Index = &index
	case *Brush:
		env.Points = v.Points
	case *Highlighter:
		env.Points = v.Points
	case *Path:
		env.Points = v.Points
	case *TextNote:
		env.Anchor = &v.Anchor
		env.Label = v.Label
	case *Callout:
		env.Anchor, env.Target = &v.Anchor, &v.Target
		env.Label = v.Label
	default:
		return env, errors.Wrapf(ErrUnknownKind, "%T", t)
	}
	return env, nil
}

func (e *envelope) meta() Meta {
	m := Meta{
		ID:       e.ID,
		Locked:   e.Locked,
		Selected: e.Selected,
		Fill:     e.Fill,
		Text:     e.Text,
	}
	if e.ID == "" {
		m.ID = NewID()
	}
	if e.ZIndex != nil {
		m.ZIndex = *e.ZIndex
	}
	if e.Line != nil {
		m.Line = *e.Line
	} else {
		m.Line = DefaultLineStyle()
	}
	return m
}

func (e *envelope) twoPoints(kind Kind) (Point, Point, error) {
	if e.Start == nil || e.End == nil {
		return Point{}, Point{}, errors.Errorf("%s: missing start/end", kind)
	}
	return *e.Start, *e.End, nil
}

func decodeTool(e *envelope) (Tool, error) {
	kind, err := ParseKind(e.Kind)
	if err != nil {
		return nil, err
	}

	meta := e.meta()

	switch kind {
	case KindTrendline:
		start, end, err := e.twoPoints(kind)
		if err != nil {
			return nil, err
		}
		return &Trendline{Meta: meta, Start: start, End: end}, nil

	case KindArrow:
		start, end, err := e.twoPoints(kind)
		if err != nil {
			return nil, err
		}
		return &Arrow{Meta: meta, Start: start, End: end}, nil

	case KindRay:
		start, end, err := e.twoPoints(kind)
		if err != nil {
			return nil, err
		}
		return &Ray{Meta: meta, Start: start, End: end}, nil

	case KindExtendedLine:
		start, end, err := e.twoPoints(kind)
		if err != nil {
			return nil, err
		}
		return &ExtendedLine{Meta: meta, Start: start, End: end}, nil

	case KindRectangle:
		if e.A == nil || e.B == nil {
			return nil, errors.Errorf("%s: missing corners", kind)
		}
		return &Rectangle{Meta: meta, A: *e.A, B: *e.B}, nil

	case KindPriceRange:
		if e.A == nil || e.B == nil {
			return nil, errors.Errorf("%s: missing corners", kind)
		}
		return &PriceRange{Meta: meta, A: *e.A, B: *e.B}, nil

	case KindCircle:
		if e.Center == nil || e.Radius == nil {
			return nil, errors.Errorf("%s: missing center/radius", kind)
		}
		return &Circle{Meta: meta, Center: *e.Center, Radius: *e.Radius}, nil

	case KindFibonacci:
		if e.Anchor == nil || e.Target == nil {
			return nil, errors.Errorf("%s: missing anchor/target", kind)
		}
		fib := &Fibonacci{Meta: meta, Anchor: *e.Anchor, Target: *e.Target, Levels: e.Levels}
		if len(fib.Levels) == 0 {
			fib.Recompute()
		}
		return fib, nil

	case KindParallelChannel:
		start, end, err := e.twoPoints(kind)
		if err != nil {
			return nil, err
		}
		if e.Offset == nil {
			return nil, errors.Errorf("%s: missing offset", kind)
		}
		return &ParallelChannel{Meta: meta, Start: start, End: end, Offset: *e.Offset}, nil

	case KindHorizontalLine:
		if e.Price == nil {
			return nil, errors.Errorf("%s: missing price", kind)
		}
		return &HorizontalLine{Meta: meta, Price: *e.Price}, nil

	case KindVerticalLine:
		if e.Index == nil {
			return nil, errors.Errorf("%s: missing index", kind)
		}
		return &VerticalLine{Meta: meta, Index: *e.Index}, nil

	case KindBrush:
		return &Brush{Meta: meta, Points: clonePoints(e.Points)}, nil

	case KindHighlighter:
		return &Highlighter{Meta: meta, Points: clonePoints(e.Points)}, nil

	case KindPath:
		return &Path{Meta: meta, Points: clonePoints(e.Points)}, nil

	case KindText:
		if e.Anchor == nil {
			return nil, errors.Errorf("%s: missing anchor", kind)
		}
		return &TextNote{Meta: meta, Anchor: *e.Anchor, Label: e.Label}, nil

	case KindCallout:
		if e.Anchor == nil || e.Target == nil {
			return nil, errors.Errorf("%s: missing anchor/target", kind)
		}
		return &Callout{Meta: meta, Anchor: *e.Anchor, Target: *e.Target, Label: e.Label}, nil
	}

	return nil, errors.Wrapf(ErrUnknownKind, "%q", e.Kind)
}

// EncodeSnapshot serializes a collection to its textual snapshot, the
// persisted and undo/redo representation.
func EncodeSnapshot(c *Collection) ([]byte, error) {
	envs := make([]envelope, 0, c.Len())
	for _, t := range c.Tools() {
		env, err := encodeTool(t)
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return json.Marshal(envs)
}

// DecodeSnapshot parses and validates a snapshot. Entries with an
// unknown kind are skipped through the warn callback (forward
// compatibility); any invalid geometry rejects the snapshot in full
// so a bad load never partially corrupts chart state.
func DecodeSnapshot(data []byte, warn func(error)) (*Collection, error) {
	var envs []envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, errors.Wrap(err, "tool: malformed snapshot")
	}

	col := NewCollection()
	var errs error
	for i := range envs {
		t, err := decodeTool(&envs[i])
		if err != nil {
			if errors.Is(err, ErrUnknownKind) {
				if warn != nil {
					warn(err)
				}
				continue
			}
			errs = multierr.Append(errs, err)
			continue
		}

		if err := t.Validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		if envs[i].ZIndex == nil {
			t.GetMeta().ZIndex = int64(i)
		}
		if err := col.Add(t); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return col, nil
}
