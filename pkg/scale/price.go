package scale

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// logFloor keeps the logarithmic transform defined near zero.
const logFloor = 1e-9

// PriceScale maps prices to vertical pixels, price ascending upward
// while pixel y grows downward. The visible range is held in the
// transformed domain (log10 when logarithmic) so that Scale/Unscale
// stay a plain affine pair in every mode.
type PriceScale struct {
	opts Options

	pixelExtent float64
	min, max    float64 // transformed domain
	baseSpacing float64 // px per transformed unit at zoom 1
	zoom        float64
	valid       bool
}

func NewPriceScale(opts Options) *PriceScale {
	return &PriceScale{
		opts: opts.Sanitize(DefaultPriceOptions()),
		zoom: 1,
	}
}

func (s *PriceScale) Options() Options { return s.opts }

func (s *PriceScale) SetPixelExtent(px float64) {
	if !isFinite(px) || px <= 0 {
		s.valid = false
		return
	}
	s.pixelExtent = px
	if s.max > s.min {
		s.baseSpacing = s.pixelExtent / ((s.max - s.min) * s.zoom)
		s.valid = true
	}
}

// SetVisibleData recomputes the visible range from data extrema plus
// the proportional margin, resetting zoom. Malformed input leaves the
// scale in a degenerate-but-safe state instead of failing a render
// pass.
func (s *PriceScale) SetVisibleData(values []float64) {
	finite := values[:0:0]
	for _, v := range values {
		if isFinite(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 || s.pixelExtent <= 0 {
		s.min, s.max = 0, 1
		s.valid = false
		return
	}

	lo := s.transform(floats.Min(finite))
	hi := s.transform(floats.Max(finite))
	if hi == lo {
		spread := math.Max(math.Abs(hi)*0.001, epsilonRange)
		lo -= spread
		hi += spread
	}

	margin := (hi - lo) * s.opts.MarginFraction
	lo -= margin
	hi += margin

	if !s.opts.AllowNegative && !s.opts.Logarithmic && lo < 0 {
		lo = 0
	}

	s.min = lo
	s.max = hi
	s.zoom = 1
	s.baseSpacing = s.pixelExtent / (s.max - s.min)
	s.valid = s.max > s.min
}

func (s *PriceScale) Valid() bool { return s.valid }

// VisibleRange returns the visible price bounds in price domain.
func (s *PriceScale) VisibleRange() (min, max float64) {
	return s.invert(s.min), s.invert(s.max)
}

func (s *PriceScale) transform(p float64) float64 {
	if s.opts.Logarithmic {
		return math.Log10(math.Max(p, logFloor))
	}
	return p
}

func (s *PriceScale) invert(u float64) float64 {
	if s.opts.Logarithmic {
		return math.Pow(10, u)
	}
	return u
}

// spacing is pixels per transformed unit for the current view.
func (s *PriceScale) spacing() float64 {
	return s.pixelExtent / (s.max - s.min)
}

// Scale converts a price to a pixel y.
func (s *PriceScale) Scale(price float64) float64 {
	if !s.valid {
		return 0
	}
	return (s.max - s.transform(price)) * s.spacing()
}

// Unscale converts a pixel y back to a price.
func (s *PriceScale) Unscale(y float64) float64 {
	if !s.valid {
		return 0
	}
	return s.invert(s.max - y/s.spacing())
}

// ZoomAt changes the zoom factor while keeping the price under
// anchorPixel exactly under anchorPixel.
func (s *PriceScale) ZoomAt(anchorPixel, factor float64) {
	if !s.valid || !isFinite(anchorPixel) || !isFinite(factor) || factor <= 0 {
		return
	}

	anchor := s.max - anchorPixel/s.spacing()

	s.zoom = s.opts.clampZoom(s.zoom*factor, s.baseSpacing)
	newRange := s.pixelExtent / (s.baseSpacing * s.zoom)

	s.max = anchor + anchorPixel*newRange/s.pixelExtent
	s.min = s.max - newRange
}

// Pan shifts the window by deltaPixels. Price space is unbounded
// except for the zero floor when negative prices are disallowed.
func (s *PriceScale) Pan(deltaPixels float64) {
	if !s.valid || !isFinite(deltaPixels) {
		return
	}

	d := deltaPixels / s.spacing()
	min, max := s.min+d, s.max+d

	if !s.opts.AllowNegative && !s.opts.Logarithmic && min < 0 {
		max -= min
		min = 0
	}
	s.min, s.max = min, max
}

// Ticks generates the axis labels for the current view.
func (s *PriceScale) Ticks() []Tick {
	if !s.valid {
		return nil
	}

	values, step := genTicks(s.min, s.max, s.opts, s.pixelExtent)
	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		price := s.invert(v)
		label := formatTickLabel(price, step)
		if s.opts.Logarithmic {
			label = formatTickLabel(price, price*0.01)
		}
		ticks = append(ticks, Tick{
			Value: price,
			Pixel: (s.max - v) * s.spacing(),
			Label: label,
		})
	}
	return ticks
}
