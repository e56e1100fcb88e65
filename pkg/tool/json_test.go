package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTools(t *testing.T) *Collection {
	t.Helper()

	line := DefaultLineStyle()
	meta := func(z int64) Meta {
		return Meta{ID: NewID(), ZIndex: z, Line: line}
	}

	fib := &Fibonacci{Meta: meta(8), Anchor: Point{Index: 1, Price: 10}, Target: Point{Index: 6, Price: 30}}
	fib.Recompute()

	tools := []Tool{
		&Trendline{Meta: meta(1), Start: Point{Index: 0, Price: 100}, End: Point{Index: 10, Price: 120}},
		&Rectangle{Meta: meta(2), A: Point{Index: 1, Price: 90}, B: Point{Index: 4, Price: 110}},
		&Arrow{Meta: meta(3), Start: Point{Index: 2, Price: 95}, End: Point{Index: 5, Price: 99}},
		&Ray{Meta: meta(4), Start: Point{Index: 0, Price: 80}, End: Point{Index: 3, Price: 85}},
		&ExtendedLine{Meta: meta(5), Start: Point{Index: 0, Price: 70}, End: Point{Index: 9, Price: 75}},
		&HorizontalLine{Meta: meta(6), Price: 105},
		&VerticalLine{Meta: meta(7), Index: 4},
		fib,
		&ParallelChannel{Meta: meta(9), Start: Point{Index: 1, Price: 60}, End: Point{Index: 7, Price: 66}, Offset: 5},
		&Brush{Meta: meta(10), Points: []Point{{1, 50}, {2, 51}, {3, 52}}},
		&Highlighter{Meta: meta(11), Points: []Point{{4, 50}, {5, 51}}},
		&Path{Meta: meta(12), Points: []Point{{0, 40}, {2, 45}, {4, 42}}},
		&Circle{Meta: meta(13), Center: Point{Index: 5, Price: 55}, Radius: Point{Index: 7, Price: 58}},
		&PriceRange{Meta: meta(14), A: Point{Index: 2, Price: 30}, B: Point{Index: 6, Price: 45}},
		&TextNote{Meta: meta(15), Anchor: Point{Index: 3, Price: 33}, Label: "note"},
		&Callout{Meta: meta(16), Anchor: Point{Index: 1, Price: 20}, Target: Point{Index: 4, Price: 28}, Label: "look here"},
	}

	col := NewCollection()
	for _, tl := range tools {
		require.NoError(t, col.Add(tl))
	}
	require.Equal(t, len(Kinds), col.Len())
	return col
}

func TestSnapshotRoundTrip(t *testing.T) {
	col := sampleTools(t)

	data, err := EncodeSnapshot(col)
	require.NoError(t, err)

	back, err := DecodeSnapshot(data, nil)
	require.NoError(t, err)
	require.Equal(t, col.Len(), back.Len())

	orig := col.Tools()
	decoded := back.Tools()
	for i := range orig {
		assert.Equal(t, orig[i].Kind(), decoded[i].Kind())
		assert.Equal(t, orig[i].GetMeta().ID, decoded[i].GetMeta().ID)
		assert.Equal(t, orig[i].GetMeta().ZIndex, decoded[i].GetMeta().ZIndex)
		assert.Equal(t, orig[i].Handles(), decoded[i].Handles())
		assert.Equal(t, orig[i].GetMeta().Line, decoded[i].GetMeta().Line)
	}

	// re-encoding is byte stable
	again, err := EncodeSnapshot(back)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestDecodeSnapshotDefaults(t *testing.T) {
	raw := `[{"kind":"horizontal-line","price":15}]`

	col, err := DecodeSnapshot([]byte(raw), nil)
	require.NoError(t, err)
	require.Equal(t, 1, col.Len())

	got := col.Tools()[0]
	assert.NotEmpty(t, got.GetMeta().ID)
	assert.Equal(t, int64(0), got.GetMeta().ZIndex)
	assert.False(t, got.GetMeta().Locked)
	assert.Equal(t, DefaultLineStyle(), got.GetMeta().Line)
	assert.Equal(t, 15.0, got.(*HorizontalLine).Price)
}

func TestDecodeSnapshotUnknownKindSkipped(t *testing.T) {
	raw := `[
		{"kind":"hexagon","a":{"index":1,"price":2}},
		{"kind":"horizontal-line","price":15}
	]`

	var warnings []error
	col, err := DecodeSnapshot([]byte(raw), func(err error) {
		warnings = append(warnings, err)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, col.Len())
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], ErrUnknownKind)
}

func TestDecodeSnapshotAllOrNothing(t *testing.T) {
	// second entry is missing its end point: the whole snapshot fails
	raw := `[
		{"kind":"horizontal-line","price":15},
		{"kind":"trendline","start":{"index":0,"price":100}}
	]`

	col, err := DecodeSnapshot([]byte(raw), nil)
	assert.Error(t, err)
	assert.Nil(t, col)
}

func TestDecodeSnapshotDuplicateID(t *testing.T) {
	raw := `[
		{"id":"a","kind":"horizontal-line","price":15},
		{"id":"a","kind":"vertical-line","index":3}
	]`

	col, err := DecodeSnapshot([]byte(raw), nil)
	assert.Error(t, err)
	assert.Nil(t, col)
}

func TestDecodeSnapshotMalformed(t *testing.T) {
	col, err := DecodeSnapshot([]byte(`{"not":"an array"`), nil)
	assert.Error(t, err)
	assert.Nil(t, col)
}

func TestDecodeSnapshotFibLevelsRecomputed(t *testing.T) {
	raw := `[{"kind":"fibonacci","anchor":{"index":1,"price":10},"target":{"index":5,"price":30}}]`

	col, err := DecodeSnapshot([]byte(raw), nil)
	require.NoError(t, err)

	fib := col.Tools()[0].(*Fibonacci)
	require.Len(t, fib.Levels, len(FibRatios))
	assert.InDelta(t, 10.0, fib.Levels[0].Price, 1e-9)
	assert.InDelta(t, 20.0, fib.Levels[3].Price, 1e-9)
	assert.InDelta(t, 30.0, fib.Levels[len(fib.Levels)-1].Price, 1e-9)
}
