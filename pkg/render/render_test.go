package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/chartview/pkg/chartview"
	"github.com/c9s/chartview/pkg/tool"
	"github.com/c9s/chartview/pkg/types"
)

func testChart(t *testing.T) *chartview.Chart {
	t.Helper()

	candles := make([]types.Candle, 60)
	price := 100.0
	for i := range candles {
		open := price
		if i%2 == 0 {
			price += 2
		} else {
			price -= 1
		}
		candles[i] = types.Candle{
			Open:   open,
			High:   open + 3,
			Low:    open - 3,
			Close:  price,
			Volume: 10,
		}
	}

	c := chartview.New(chartview.DefaultConfig())
	c.SetCandles(candles)
	return c
}

func annotatedChart(t *testing.T) *chartview.Chart {
	t.Helper()
	c := testChart(t)

	col := tool.NewCollection()
	line := tool.DefaultLineStyle()
	add := func(tl tool.Tool) {
		require.NoError(t, col.Add(tl))
	}

	add(&tool.Trendline{
		Meta:  tool.Meta{ID: "t1", Line: line},
		Start: tool.Point{Index: 5, Price: 100},
		End:   tool.Point{Index: 40, Price: 120},
	})
	add(&tool.Arrow{
		Meta:  tool.Meta{ID: "t2", Line: line},
		Start: tool.Point{Index: 10, Price: 95},
		End:   tool.Point{Index: 20, Price: 110},
	})
	add(&tool.Ray{
		Meta:  tool.Meta{ID: "t3", Line: line},
		Start: tool.Point{Index: 0, Price: 100},
		End:   tool.Point{Index: 10, Price: 105},
	})
	add(&tool.ExtendedLine{
		Meta:  tool.Meta{ID: "t4", Line: line},
		Start: tool.Point{Index: 10, Price: 100},
		End:   tool.Point{Index: 30, Price: 110},
	})
	add(&tool.HorizontalLine{Meta: tool.Meta{ID: "t5", Line: line}, Price: 115})
	add(&tool.VerticalLine{Meta: tool.Meta{ID: "t6", Line: line}, Index: 30})
	add(&tool.Rectangle{
		Meta: tool.Meta{ID: "t7", Line: line, Fill: &tool.FillStyle{Color: "#2962ff", Opacity: 0.15}},
		A:    tool.Point{Index: 15, Price: 100},
		B:    tool.Point{Index: 25, Price: 110},
	})
	add(&tool.PriceRange{
		Meta: tool.Meta{ID: "t8", Line: line},
		A:    tool.Point{Index: 35, Price: 100},
		B:    tool.Point{Index: 45, Price: 125},
	})
	add(&tool.Circle{
		Meta:   tool.Meta{ID: "t9", Line: line},
		Center: tool.Point{Index: 30, Price: 110},
		Radius: tool.Point{Index: 35, Price: 115},
	})
	fib := &tool.Fibonacci{
		Meta:   tool.Meta{ID: "t10", Line: line},
		Anchor: tool.Point{Index: 5, Price: 95},
		Target: tool.Point{Index: 50, Price: 130},
	}
	fib.Recompute()
	add(fib)
	add(&tool.ParallelChannel{
		Meta:   tool.Meta{ID: "t11", Line: line, Selected: true},
		Start:  tool.Point{Index: 10, Price: 100},
		End:    tool.Point{Index: 40, Price: 115},
		Offset: 8,
	})
	add(&tool.Brush{
		Meta: tool.Meta{ID: "t12", Line: line},
		Points: []tool.Point{
			{Index: 12, Price: 102}, {Index: 13, Price: 104}, {Index: 14, Price: 103},
		},
	})
	add(&tool.Highlighter{
		Meta: tool.Meta{ID: "t13", Line: line},
		Points: []tool.Point{
			{Index: 20, Price: 108}, {Index: 24, Price: 112},
		},
	})
	add(&tool.Path{
		Meta: tool.Meta{ID: "t14", Line: line},
		Points: []tool.Point{
			{Index: 40, Price: 100}, {Index: 44, Price: 108}, {Index: 48, Price: 104},
		},
	})
	add(&tool.TextNote{
		Meta:   tool.Meta{ID: "t15", Line: line},
		Anchor: tool.Point{Index: 8, Price: 125},
		Label:  "breakout",
	})
	add(&tool.Callout{
		Meta:   tool.Meta{ID: "t16", Line: line},
		Anchor: tool.Point{Index: 50, Price: 95},
		Target: tool.Point{Index: 45, Price: 105},
		Label:  "entry",
	})

	snapshot, err := tool.EncodeSnapshot(col)
	require.NoError(t, err)
	require.NoError(t, c.Engine().Deserialize(snapshot))
	return c
}

func assertPNG(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}

func TestRenderCandlesOnly(t *testing.T) {
	c := testChart(t)

	var buf bytes.Buffer
	require.NoError(t, NewCanvas(c, "BTCUSDT").Render(&buf))
	assertPNG(t, &buf)
}

func TestRenderEveryToolKind(t *testing.T) {
	c := annotatedChart(t)
	require.Len(t, c.Engine().Tools(), 16)

	var buf bytes.Buffer
	require.NoError(t, NewCanvas(c, "BTCUSDT").Render(&buf))
	assertPNG(t, &buf)
}

func TestRenderAfterZoom(t *testing.T) {
	c := annotatedChart(t)
	c.HandleWheel(512, 2)
	require.True(t, c.Flush())

	var buf bytes.Buffer
	require.NoError(t, NewCanvas(c, "zoomed").Render(&buf))
	assertPNG(t, &buf)
}
