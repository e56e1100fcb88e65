package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalescerLatestWins(t *testing.T) {
	c := NewCoalescer()
	c.Offer(ZoomRequest{AnchorPixel: 10, Factor: 1.1})
	c.Offer(ZoomRequest{AnchorPixel: 20, Factor: 1.2})
	c.Offer(ZoomRequest{AnchorPixel: 30, Factor: 1.3})

	var applied []ZoomRequest
	ok := c.Flush(func(req ZoomRequest) {
		applied = append(applied, req)
	})

	assert.True(t, ok)
	assert.Equal(t, []ZoomRequest{{AnchorPixel: 30, Factor: 1.3}}, applied)
	assert.Equal(t, uint64(2), c.Dropped())
}

func TestCoalescerFlushEmpty(t *testing.T) {
	c := NewCoalescer()
	ok := c.Flush(func(ZoomRequest) {
		t.Fatal("apply must not be called with no pending request")
	})
	assert.False(t, ok)
}

func TestCoalescerFlushClearsPending(t *testing.T) {
	c := NewCoalescer()
	c.Offer(ZoomRequest{AnchorPixel: 10, Factor: 2})

	count := 0
	c.Flush(func(ZoomRequest) { count++ })
	c.Flush(func(ZoomRequest) { count++ })

	assert.Equal(t, 1, count)
}
