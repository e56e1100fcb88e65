package scale

import (
	"math"
	"strconv"
)

// TimeScale maps fractional candle indexes to horizontal pixels,
// index ascending rightward. Index space is bounded: the visible
// window is clamped to [0, candle count] when panning.
type TimeScale struct {
	opts Options

	pixelExtent float64
	baseSpacing float64 // px per candle at zoom 1
	zoom        float64
	left        float64 // visible minimum index
	total       float64 // candle count
}

func NewTimeScale(opts Options) *TimeScale {
	return &TimeScale{
		opts:        opts.Sanitize(DefaultTimeOptions()),
		baseSpacing: DefaultBaseSpacing,
		zoom:        1,
	}
}

func (s *TimeScale) Options() Options { return s.opts }

func (s *TimeScale) SetPixelExtent(px float64) {
	if !isFinite(px) || px <= 0 {
		s.pixelExtent = 0
		return
	}
	s.pixelExtent = px
}

// SetCandleCount sets the data extent and scrolls the window to show
// the most recent candles.
func (s *TimeScale) SetCandleCount(n int) {
	if n < 0 {
		n = 0
	}
	s.total = float64(n)
	s.left = math.Max(0, s.total-s.pixelExtent/s.spacing())
}

func (s *TimeScale) Valid() bool {
	return s.pixelExtent > 0 && s.total > 0 && s.spacing() > 0
}

// spacing is the pixel width of one candle for the current zoom.
func (s *TimeScale) spacing() float64 {
	return s.baseSpacing * s.zoom
}

// Spacing exposes the per-candle pixel width to the renderer for
// candle body sizing.
func (s *TimeScale) Spacing() float64 {
	if !s.Valid() {
		return 0
	}
	return s.spacing()
}

// VisibleRange returns the visible index window.
func (s *TimeScale) VisibleRange() (min, max float64) {
	if !s.Valid() {
		return 0, 0
	}
	return s.left, s.left + s.pixelExtent/s.spacing()
}

// SetVisibleRange positions the window at the given minimum index
// with the given index span, used for mirroring linked charts.
func (s *TimeScale) SetVisibleRange(min, max float64) {
	if !isFinite(min) || !isFinite(max) || max <= min || s.pixelExtent <= 0 {
		return
	}
	s.zoom = s.opts.clampZoom(s.pixelExtent/(max-min)/s.baseSpacing, s.baseSpacing)
	s.left = min
	s.clampWindow()
}

// Scale converts a fractional candle index to a pixel x.
func (s *TimeScale) Scale(index float64) float64 {
	if !s.Valid() {
		return 0
	}
	return (index - s.left) * s.spacing()
}

// Unscale converts a pixel x back to a fractional candle index.
func (s *TimeScale) Unscale(x float64) float64 {
	if !s.Valid() {
		return 0
	}
	return s.left + x/s.spacing()
}

// ZoomAt changes the zoom factor while keeping the index under
// anchorPixel exactly under anchorPixel.
func (s *TimeScale) ZoomAt(anchorPixel, factor float64) {
	if !s.Valid() || !isFinite(anchorPixel) || !isFinite(factor) || factor <= 0 {
		return
	}

	anchor := s.Unscale(anchorPixel)
	s.zoom = s.opts.clampZoom(s.zoom*factor, s.baseSpacing)
	s.left = anchor - anchorPixel/s.spacing()
}

// Pan shifts the window by deltaPixels, clamped to the data extent.
func (s *TimeScale) Pan(deltaPixels float64) {
	if !s.Valid() || !isFinite(deltaPixels) {
		return
	}
	s.left -= deltaPixels / s.spacing()
	s.clampWindow()
}

func (s *TimeScale) clampWindow() {
	maxLeft := math.Max(0, s.total-s.pixelExtent/s.spacing())
	s.left = math.Min(math.Max(s.left, 0), maxLeft)
}

// Ticks generates integer index labels for the current window.
func (s *TimeScale) Ticks() []Tick {
	if !s.Valid() {
		return nil
	}

	min, max := s.VisibleRange()
	values, step := genTicks(min, max, s.opts, s.pixelExtent)
	if step < 1 {
		values = stepValues(min, max, 1)
	}

	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		if v < 0 || v > s.total {
			continue
		}
		ticks = append(ticks, Tick{
			Value: v,
			Pixel: s.Scale(v),
			Label: strconv.Itoa(int(math.Round(v))),
		})
	}
	return ticks
}
