// Package render rasterizes a chart widget to PNG with go-chart. It
// is a consumer of the widget's coordinate mapping and tool list, not
// part of the interactive core: everything here reads chart state and
// draws, nothing here mutates it.
package render

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/chartview/pkg/chartview"
	"github.com/c9s/chartview/pkg/tool"
	"github.com/c9s/chartview/pkg/types"
)

var (
	upColor   = drawing.Color{R: 0x26, G: 0xa6, B: 0x9a, A: 255}
	downColor = drawing.Color{R: 0xef, G: 0x53, B: 0x50, A: 255}
)

// Canvas is one render pass over a chart: the axis ranges are frozen
// to the chart's visible window so that every candle and tool lands on
// the same pixels the interactive hit tests use.
type Canvas struct {
	chart.Chart
}

// NewCanvas builds a canvas over the chart's current view, with the
// candles and the tool list (in paint order) already plotted.
func NewCanvas(c *chartview.Chart, title string) *Canvas {
	cfg := c.Config()
	view := c.View()

	canvas := &Canvas{
		Chart: chart.Chart{
			Title:  title,
			Width:  cfg.Width,
			Height: cfg.Height,
			XAxis: chart.XAxis{
				Range:          &chart.ContinuousRange{Min: view.IndexMin, Max: view.IndexMax},
				ValueFormatter: chart.IntValueFormatter,
			},
			YAxis: chart.YAxis{
				Range: &chart.ContinuousRange{Min: view.PriceMin, Max: view.PriceMax},
			},
		},
	}
	canvas.PlotCandles(c.Candles())
	canvas.PlotTools(c.Engine().PaintOrder())
	return canvas
}

// PlotCandles appends the candlestick series.
func (c *Canvas) PlotCandles(candles types.CandleWindow) {
	if len(candles) == 0 {
		return
	}
	c.Series = append(c.Series, CandleSeries{Name: "candles", Candles: candles})
}

// PlotTools appends one overlay series carrying every annotation.
func (c *Canvas) PlotTools(tools []tool.Tool) {
	if len(tools) == 0 {
		return
	}
	c.Series = append(c.Series, ToolSeries{Name: "tools", Tools: tools})
}

// Render writes the PNG to w.
func (c *Canvas) Render(w io.Writer) error {
	return c.Chart.Render(chart.PNG, w)
}

// CandleSeries draws OHLC bars: a high-low wick and an open-close
// body, green up and red down.
type CandleSeries struct {
	Name    string
	Candles types.CandleWindow
}

func (s CandleSeries) GetName() string           { return s.Name }
func (s CandleSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s CandleSeries) GetStyle() chart.Style     { return chart.Style{} }

func (s CandleSeries) Validate() error { return nil }

func (s CandleSeries) Render(r chart.Renderer, cb chart.Box, xr, yr chart.Range, _ chart.Style) {
	span := xr.GetMax() - xr.GetMin()
	if span <= 0 {
		return
	}
	halfBody := int(float64(cb.Width()) / span * 0.35)
	if halfBody < 1 {
		halfBody = 1
	}

	for i := range s.Candles {
		candle := &s.Candles[i]
		if !candle.Valid() {
			continue
		}
		index := float64(i)
		if index < xr.GetMin() || index > xr.GetMax() {
			continue
		}

		color := upColor
		if candle.Direction() == types.DirectionDown {
			color = downColor
		}

		x := cb.Left + xr.Translate(index)
		top := cb.Bottom - yr.Translate(candle.High)
		bottom := cb.Bottom - yr.Translate(candle.Low)
		openY := cb.Bottom - yr.Translate(candle.Open)
		closeY := cb.Bottom - yr.Translate(candle.Close)

		r.SetStrokeColor(color)
		r.SetStrokeWidth(1)
		r.MoveTo(x, top)
		r.LineTo(x, bottom)
		r.Stroke()

		bodyTop, bodyBottom := openY, closeY
		if bodyTop > bodyBottom {
			bodyTop, bodyBottom = bodyBottom, bodyTop
		}
		if bodyBottom == bodyTop {
			bodyBottom++
		}
		r.SetFillColor(color)
		r.MoveTo(x-halfBody, bodyTop)
		r.LineTo(x+halfBody, bodyTop)
		r.LineTo(x+halfBody, bodyBottom)
		r.LineTo(x-halfBody, bodyBottom)
		r.LineTo(x-halfBody, bodyTop)
		r.Fill()
	}
}
