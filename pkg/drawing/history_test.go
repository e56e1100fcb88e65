package drawing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/chartview/pkg/tool"
)

func collectionWith(t *testing.T, prices ...float64) *tool.Collection {
	t.Helper()
	col := tool.NewCollection()
	for _, p := range prices {
		hl := &tool.HorizontalLine{
			Meta:  tool.Meta{ID: tool.NewID(), Line: tool.DefaultLineStyle()},
			Price: p,
		}
		require.NoError(t, col.Add(hl))
	}
	return col
}

func TestHistorySeedIsTheFloor(t *testing.T) {
	h := NewHistory(10, collectionWith(t))
	assert.Equal(t, 1, h.UndoDepth())

	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestHistoryPushUndoRedo(t *testing.T) {
	h := NewHistory(10, collectionWith(t))

	one := collectionWith(t, 10)
	two := collectionWith(t, 10, 20)
	h.Push(one)
	h.Push(two)
	require.Equal(t, 3, h.UndoDepth())

	back, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, 1, back.Len())
	assert.Equal(t, 1, h.RedoDepth())

	fwd, ok := h.Redo()
	require.True(t, ok)
	assert.Equal(t, 2, fwd.Len())
	assert.Equal(t, 0, h.RedoDepth())
}

func TestHistoryPushClearsRedo(t *testing.T) {
	h := NewHistory(10, collectionWith(t))
	h.Push(collectionWith(t, 10))
	h.Push(collectionWith(t, 10, 20))

	_, ok := h.Undo()
	require.True(t, ok)
	require.Equal(t, 1, h.RedoDepth())

	h.Push(collectionWith(t, 10, 30))
	assert.Equal(t, 0, h.RedoDepth())
}

func TestHistoryEvictsPastLimit(t *testing.T) {
	h := NewHistory(3, collectionWith(t))

	for i := 1; i <= 5; i++ {
		h.Push(collectionWith(t, float64(i)))
	}
	assert.Equal(t, 3, h.UndoDepth())

	_, ok := h.Undo()
	require.True(t, ok)
	_, ok = h.Undo()
	require.True(t, ok)
	_, ok = h.Undo()
	assert.False(t, ok, "evicted states are unreachable")
}

func TestHistorySnapshotsAreIsolated(t *testing.T) {
	h := NewHistory(10, collectionWith(t))

	live := collectionWith(t, 10)
	h.Push(live)

	// mutating the live collection must not reach the stored snapshot
	id := live.Tools()[0].GetMeta().ID
	require.True(t, live.Remove(id))

	h.Push(live)
	restored, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, 1, restored.Len())

	// restored state is itself a copy
	restored.Tools()[0].(*tool.HorizontalLine).Price = 999
	again, ok := h.Redo()
	require.True(t, ok)
	_ = again
	back, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, 10.0, back.Tools()[0].(*tool.HorizontalLine).Price)
}

func TestHistoryMinimumLimit(t *testing.T) {
	h := NewHistory(0, collectionWith(t))
	h.Push(collectionWith(t, 1))
	h.Push(collectionWith(t, 1, 2))
	assert.Equal(t, 2, h.UndoDepth())
}
