package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/chartview/pkg/tool"
)

const handleRadius = 3.0

// ToolSeries draws the annotation overlay. Tools arrive in paint
// order (z ascending); geometry is projected through the same ranges
// the candles use.
type ToolSeries struct {
	Name  string
	Tools []tool.Tool
}

func (s ToolSeries) GetName() string           { return s.Name }
func (s ToolSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s ToolSeries) GetStyle() chart.Style     { return chart.Style{} }

func (s ToolSeries) Validate() error { return nil }

func (s ToolSeries) Render(r chart.Renderer, cb chart.Box, xr, yr chart.Range, _ chart.Style) {
	p := projector{cb: cb, xr: xr, yr: yr}

	for _, t := range s.Tools {
		drawTool(r, p, t)
		if t.GetMeta().Selected {
			drawHandles(r, p, t)
		}
	}
}

// projector maps data coordinates into the canvas box.
type projector struct {
	cb chart.Box
	xr chart.Range
	yr chart.Range
}

func (p projector) x(index float64) float64 {
	return float64(p.cb.Left + p.xr.Translate(index))
}

func (p projector) y(price float64) float64 {
	return float64(p.cb.Bottom - p.yr.Translate(price))
}

func (p projector) point(pt tool.Point) (float64, float64) {
	return p.x(pt.Index), p.y(pt.Price)
}

func drawTool(r chart.Renderer, p projector, t tool.Tool) {
	applyStroke(r, t.GetMeta().Line)

	switch v := t.(type) {
	case *tool.Trendline:
		strokeSegment(r, p, v.Start, v.End)

	case *tool.Arrow:
		strokeSegment(r, p, v.Start, v.End)
		strokeArrowHead(r, p, v.Start, v.End)

	case *tool.Ray:
		x0, y0 := p.point(v.Start)
		x1, y1 := p.point(v.End)
		ex, ey, ok := extendToBox(p.cb, x0, y0, x1, y1)
		if ok {
			strokeLine(r, x0, y0, ex, ey)
		}

	case *tool.ExtendedLine:
		x0, y0 := p.point(v.Start)
		x1, y1 := p.point(v.End)
		ax, ay, aok := extendToBox(p.cb, x1, y1, x0, y0)
		bx, by, bok := extendToBox(p.cb, x0, y0, x1, y1)
		if aok && bok {
			strokeLine(r, ax, ay, bx, by)
		}

	case *tool.HorizontalLine:
		y := p.y(v.Price)
		strokeLine(r, float64(p.cb.Left), y, float64(p.cb.Right), y)

	case *tool.VerticalLine:
		x := p.x(v.Index)
		strokeLine(r, x, float64(p.cb.Top), x, float64(p.cb.Bottom))

	case *tool.Rectangle:
		strokeRect(r, p, v.A, v.B, v.GetMeta().Fill)

	case *tool.PriceRange:
		strokeRect(r, p, v.A, v.B, v.GetMeta().Fill)
		mx := (p.x(v.A.Index) + p.x(v.B.Index)) / 2
		my := (p.y(v.A.Price) + p.y(v.B.Price)) / 2
		label := fmt.Sprintf("%+.2f (%.2f%%)", v.PriceDelta(), v.PercentDelta())
		drawLabel(r, t.GetMeta(), label, mx, my)

	case *tool.Circle:
		strokeEllipse(r, p, v.Center, v.Radius)

	case *tool.Fibonacci:
		x0 := p.x(v.Anchor.Index)
		x1 := p.x(v.Target.Index)
		for _, lv := range v.Levels {
			y := p.y(lv.Price)
			strokeLine(r, x0, y, x1, y)
			drawLabel(r, t.GetMeta(), fmt.Sprintf("%.3f %.2f", lv.Ratio, lv.Price), math.Min(x0, x1), y)
		}

	case *tool.ParallelChannel:
		strokeSegment(r, p, v.Start, v.End)
		s2, e2 := v.Second()
		strokeSegment(r, p, s2, e2)

	case *tool.Brush:
		strokePolyline(r, p, v.Points)

	case *tool.Highlighter:
		style := t.GetMeta().Line
		r.SetStrokeWidth(math.Max(style.Width*6, 8))
		r.SetStrokeColor(parseColor(style.Color).WithAlpha(96))
		strokePolyline(r, p, v.Points)

	case *tool.Path:
		strokePolyline(r, p, v.Points)

	case *tool.TextNote:
		x, y := p.point(v.Anchor)
		drawLabel(r, t.GetMeta(), v.Label, x, y)

	case *tool.Callout:
		strokeSegment(r, p, v.Anchor, v.Target)
		x, y := p.point(v.Anchor)
		drawLabel(r, t.GetMeta(), v.Label, x, y)
	}
}

func drawHandles(r chart.Renderer, p projector, t tool.Tool) {
	r.SetFillColor(drawing.ColorWhite)
	r.SetStrokeColor(parseColor(t.GetMeta().Line.Color))
	r.SetStrokeWidth(1)
	for _, h := range t.Handles() {
		x, y := p.point(h)
		r.Circle(handleRadius, int(x), int(y))
		r.FillStroke()
	}
}

func applyStroke(r chart.Renderer, ls tool.LineStyle) {
	width := ls.Width
	if width <= 0 {
		width = 1
	}
	r.SetStrokeColor(parseColor(ls.Color))
	r.SetStrokeWidth(width)
	r.SetStrokeDashArray(ls.Dash)
}

func parseColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 3 && len(hex) != 6 {
		return drawing.ColorBlue
	}
	return drawing.ColorFromHex(hex)
}

func strokeLine(r chart.Renderer, x0, y0, x1, y1 float64) {
	r.MoveTo(int(x0), int(y0))
	r.LineTo(int(x1), int(y1))
	r.Stroke()
}

func strokeSegment(r chart.Renderer, p projector, a, b tool.Point) {
	x0, y0 := p.point(a)
	x1, y1 := p.point(b)
	strokeLine(r, x0, y0, x1, y1)
}

func strokePolyline(r chart.Renderer, p projector, pts []tool.Point) {
	if len(pts) == 0 {
		return
	}
	x, y := p.point(pts[0])
	r.MoveTo(int(x), int(y))
	for _, pt := range pts[1:] {
		x, y = p.point(pt)
		r.LineTo(int(x), int(y))
	}
	r.Stroke()
}

func strokeRect(r chart.Renderer, p projector, a, b tool.Point, fill *tool.FillStyle) {
	x0, y0 := p.point(a)
	x1, y1 := p.point(b)

	if fill != nil {
		alpha := uint8(math.Min(math.Max(fill.Opacity, 0), 1) * 255)
		r.SetFillColor(parseColor(fill.Color).WithAlpha(alpha))
		rectPath(r, x0, y0, x1, y1)
		r.Fill()
	}
	rectPath(r, x0, y0, x1, y1)
	r.Stroke()
}

func rectPath(r chart.Renderer, x0, y0, x1, y1 float64) {
	r.MoveTo(int(x0), int(y0))
	r.LineTo(int(x1), int(y0))
	r.LineTo(int(x1), int(y1))
	r.LineTo(int(x0), int(y1))
	r.LineTo(int(x0), int(y0))
}

// strokeEllipse approximates the data-space circle, which is an
// ellipse in pixels whenever the axes are scaled differently.
func strokeEllipse(r chart.Renderer, p projector, center, radius tool.Point) {
	cx, cy := p.point(center)
	rx := math.Abs(p.x(radius.Index) - cx)
	ry := math.Abs(p.y(radius.Price) - cy)
	if rx == 0 && ry == 0 {
		return
	}

	const segments = 64
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / segments
		x := cx + rx*math.Cos(theta)
		y := cy + ry*math.Sin(theta)
		if i == 0 {
			r.MoveTo(int(x), int(y))
		} else {
			r.LineTo(int(x), int(y))
		}
	}
	r.Stroke()
}

func strokeArrowHead(r chart.Renderer, p projector, from, to tool.Point) {
	x0, y0 := p.point(from)
	x1, y1 := p.point(to)
	angle := math.Atan2(y1-y0, x1-x0)

	const length = 10.0
	const flare = math.Pi / 7
	for _, a := range []float64{angle + math.Pi - flare, angle + math.Pi + flare} {
		strokeLine(r, x1, y1, x1+length*math.Cos(a), y1+length*math.Sin(a))
	}
}

func drawLabel(r chart.Renderer, m *tool.Meta, label string, x, y float64) {
	if label == "" {
		return
	}

	style := chart.Style{
		FontSize:  10,
		FontColor: parseColor(m.Line.Color),
	}
	if m.Text != nil {
		if m.Text.Size > 0 {
			style.FontSize = m.Text.Size
		}
		if m.Text.Color != "" {
			style.FontColor = parseColor(m.Text.Color)
		}
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return
	}
	style.Font = font

	chart.Draw.Text(r, label, int(x), int(y)-4, style)
}

// extendToBox pushes the ray from (x0, y0) through (x1, y1) out to
// the box boundary, returning the exit point.
func extendToBox(cb chart.Box, x0, y0, x1, y1 float64) (float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	if dx == 0 && dy == 0 {
		return 0, 0, false
	}

	tMax := math.Inf(1)
	consider := func(t float64) {
		if t > 0 && t < tMax {
			tMax = t
		}
	}
	if dx > 0 {
		consider((float64(cb.Right) - x0) / dx)
	} else if dx < 0 {
		consider((float64(cb.Left) - x0) / dx)
	}
	if dy > 0 {
		consider((float64(cb.Bottom) - y0) / dy)
	} else if dy < 0 {
		consider((float64(cb.Top) - y0) / dy)
	}
	if math.IsInf(tMax, 1) {
		return x1, y1, true
	}
	return x0 + tMax*dx, y0 + tMax*dy, true
}
