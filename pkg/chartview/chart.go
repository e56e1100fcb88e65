// Package chartview composes the scale engines and the drawing engine
// into one chart widget: candle data in, pointer/wheel/pan events in,
// data-to-pixel mapping and tool state out. It renders nothing itself;
// a renderer consumes the coordinate mapping and the tool list.
package chartview

import (
	"github.com/c9s/chartview/pkg/drawing"
	"github.com/c9s/chartview/pkg/metrics"
	"github.com/c9s/chartview/pkg/scale"
	"github.com/c9s/chartview/pkg/types"
)

// View is the visible window of a chart, in data coordinates.
type View struct {
	IndexMin float64 `json:"indexMin"`
	IndexMax float64 `json:"indexMax"`
	PriceMin float64 `json:"priceMin"`
	PriceMax float64 `json:"priceMax"`
}

// Chart is one widget instance. It is not safe for concurrent use;
// hosts serialize access the same way they serialize paints.
type Chart struct {
	cfg Config

	priceScale *scale.PriceScale
	timeScale  *scale.TimeScale
	engine     *drawing.Engine

	candles types.CandleWindow

	wheel         *scale.Coalescer
	droppedSeen   uint64
	links         []*Chart
	mirroring     bool
	viewCallbacks []func()
}

func New(cfg Config) *Chart {
	cfg = cfg.Sanitize()
	c := &Chart{
		cfg:        cfg,
		priceScale: scale.NewPriceScale(cfg.PriceAxis),
		timeScale:  scale.NewTimeScale(cfg.TimeAxis),
		wheel:      scale.NewCoalescer(),
	}
	c.priceScale.SetPixelExtent(float64(cfg.Height))
	c.timeScale.SetPixelExtent(float64(cfg.Width))
	c.engine = drawing.NewEngine(c, cfg.Drawing)
	return c
}

func (c *Chart) Config() Config              { return c.cfg }
func (c *Chart) Engine() *drawing.Engine     { return c.engine }
func (c *Chart) Candles() types.CandleWindow { return c.candles }
func (c *Chart) PriceTicks() []scale.Tick    { return c.priceScale.Ticks() }
func (c *Chart) TimeTicks() []scale.Tick     { return c.timeScale.Ticks() }
func (c *Chart) CandleSpacing() float64      { return c.timeScale.Spacing() }

// scale.Provider: x is the time axis, y the price axis.
func (c *Chart) ScaleX(index float64) float64 { return c.timeScale.Scale(index) }
func (c *Chart) ScaleY(price float64) float64 { return c.priceScale.Scale(price) }
func (c *Chart) UnscaleX(x float64) float64   { return c.timeScale.Unscale(x) }
func (c *Chart) UnscaleY(y float64) float64   { return c.priceScale.Unscale(y) }

// OnViewChange registers a callback fired after any pan or zoom.
func (c *Chart) OnViewChange(cb func()) {
	c.viewCallbacks = append(c.viewCallbacks, cb)
}

func (c *Chart) emitViewChange() {
	for _, cb := range c.viewCallbacks {
		cb()
	}
}

// View returns the visible window in data coordinates.
func (c *Chart) View() View {
	imin, imax := c.timeScale.VisibleRange()
	pmin, pmax := c.priceScale.VisibleRange()
	return View{IndexMin: imin, IndexMax: imax, PriceMin: pmin, PriceMax: pmax}
}

// Resize updates the pane size, keeping the visible data ranges.
func (c *Chart) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.cfg.Width, c.cfg.Height = width, height
	c.timeScale.SetPixelExtent(float64(width))
	c.priceScale.SetPixelExtent(float64(height))
	c.emitViewChange()
}

// SetCandles replaces the chart data, scrolls the time axis to the
// latest candles, and refits the price range to the visible extrema.
func (c *Chart) SetCandles(candles []types.Candle) {
	c.candles = types.CandleWindow(candles)
	c.timeScale.SetCandleCount(len(candles))
	c.priceScale.SetVisibleData(c.candles.PriceExtrema())
	c.emitViewChange()
}

// HandlePointer feeds one pointer event to the drawing engine.
func (c *Chart) HandlePointer(ev drawing.PointerEvent) {
	metrics.PointerEventsCounter.WithLabelValues(string(ev.Kind)).Inc()
	c.engine.HandlePointer(ev)
}

// HandleWheel records a zoom demand on the time axis. Nothing is
// applied until Flush; a newer wheel event before the next paint
// replaces the pending one.
func (c *Chart) HandleWheel(anchorX, factor float64) {
	c.wheel.Offer(scale.ZoomRequest{AnchorPixel: anchorX, Factor: factor})
}

// Flush applies the pending zoom request, if any. Hosts call this once
// per paint tick. It reports whether the view changed.
func (c *Chart) Flush() bool {
	applied := c.wheel.Flush(func(req scale.ZoomRequest) {
		c.timeScale.ZoomAt(req.AnchorPixel, req.Factor)
	})

	if dropped := c.wheel.Dropped(); dropped > c.droppedSeen {
		metrics.ZoomRequestsDroppedCounter.Add(float64(dropped - c.droppedSeen))
		c.droppedSeen = dropped
	}

	if applied {
		c.propagateView()
		c.emitViewChange()
	}
	return applied
}

// ZoomPriceAt zooms the price axis, keeping the price under anchorY
// fixed. Price zoom is an explicit gesture, not wheel-driven, so it
// applies immediately instead of going through the coalescer.
func (c *Chart) ZoomPriceAt(anchorY, factor float64) {
	c.priceScale.ZoomAt(anchorY, factor)
	c.emitViewChange()
}

// HandlePan shifts the view by pixel deltas: dx along the time axis,
// dy along the price axis.
func (c *Chart) HandlePan(dx, dy float64) {
	c.timeScale.Pan(dx)
	c.priceScale.Pan(dy)
	c.propagateView()
	c.emitViewChange()
}

// Link mirrors pan/zoom of the time axis between two charts, both
// ways. Price axes stay independent.
func (c *Chart) Link(other *Chart) {
	if other == nil || other == c {
		return
	}
	for _, l := range c.links {
		if l == other {
			return
		}
	}
	c.links = append(c.links, other)
	other.links = append(other.links, c)
}

// propagateView pushes the time window to linked charts. The mirroring
// flag stops a mirrored update from echoing back.
func (c *Chart) propagateView() {
	if c.mirroring {
		return
	}
	min, max := c.timeScale.VisibleRange()
	if max <= min {
		return
	}
	for _, other := range c.links {
		other.mirroring = true
		other.timeScale.SetVisibleRange(min, max)
		other.mirroring = false
		other.emitViewChange()
	}
}
