package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hline(id string, z int64, price float64) *HorizontalLine {
	return &HorizontalLine{
		Meta:  Meta{ID: id, ZIndex: z, Line: DefaultLineStyle()},
		Price: price,
	}
}

func TestCollectionAddRemove(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.Add(hline("a", 1, 10)))
	require.NoError(t, c.Add(hline("b", 2, 20)))

	assert.Equal(t, 2, c.Len())

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10.0, got.(*HorizontalLine).Price)

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, 1, c.Len())
}

func TestCollectionDuplicateID(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.Add(hline("a", 1, 10)))
	assert.Error(t, c.Add(hline("a", 2, 20)))

	assert.Error(t, c.Add(hline("", 3, 30)))
}

func TestCollectionZOrder(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.Add(hline("low", 1, 10)))
	require.NoError(t, c.Add(hline("high", 5, 20)))
	require.NoError(t, c.Add(hline("mid-first", 3, 30)))
	require.NoError(t, c.Add(hline("mid-second", 3, 40)))

	desc := c.ZDescending()
	ids := make([]string, len(desc))
	for i, tl := range desc {
		ids[i] = tl.GetMeta().ID
	}

	// front-most first; insertion order breaks the z tie, later wins
	assert.Equal(t, []string{"high", "mid-second", "mid-first", "low"}, ids)
	assert.Equal(t, int64(5), c.MaxZIndex())
}

func TestCollectionCloneIsDeep(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.Add(hline("a", 1, 10)))

	clone := c.Clone()
	clone.Tools()[0].(*HorizontalLine).Price = 99
	clone.Tools()[0].GetMeta().Selected = true

	orig, _ := c.Get("a")
	assert.Equal(t, 10.0, orig.(*HorizontalLine).Price)
	assert.False(t, orig.GetMeta().Selected)
}

func TestCollectionSelection(t *testing.T) {
	c := NewCollection()
	require.NoError(t, c.Add(hline("a", 1, 10)))
	require.NoError(t, c.Add(hline("b", 2, 20)))

	_, ok := c.Selected()
	assert.False(t, ok)

	b, _ := c.Get("b")
	b.GetMeta().Selected = true

	sel, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", sel.GetMeta().ID)

	c.ClearSelection()
	_, ok = c.Selected()
	assert.False(t, ok)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		parsed, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("pentagram")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestValidateRejectsDegenerate(t *testing.T) {
	tl := &Trendline{Start: Point{Index: 1, Price: 10}, End: Point{Index: 1, Price: 10}}
	assert.Error(t, tl.Validate())

	br := &Brush{}
	assert.Error(t, br.Validate())

	txt := &TextNote{Anchor: Point{Index: 1, Price: 10}}
	assert.Error(t, txt.Validate())
}
