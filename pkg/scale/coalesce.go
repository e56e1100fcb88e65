package scale

import "sync"

// ZoomRequest is one wheel/pinch zoom demand: which pixel to anchor
// and the zoom factor to apply.
type ZoomRequest struct {
	AnchorPixel float64
	Factor      float64
}

// Coalescer collapses high-frequency zoom requests down to one
// applied update per paint tick. The scale itself always computes
// immediately; this layer sits at the event-ingestion boundary and
// decides how often to invoke it. Latest request wins, intermediate
// requests are dropped, never queued.
type Coalescer struct {
	mu      sync.Mutex
	pending *ZoomRequest
	dropped uint64
}

func NewCoalescer() *Coalescer {
	return &Coalescer{}
}

// Offer records a request, replacing any pending one.
func (c *Coalescer) Offer(req ZoomRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.dropped++
	}
	r := req
	c.pending = &r
}

// Flush applies the pending request, if any. The host calls this once
// per paint tick.
func (c *Coalescer) Flush(apply func(ZoomRequest)) bool {
	c.mu.Lock()
	req := c.pending
	c.pending = nil
	c.mu.Unlock()

	if req == nil {
		return false
	}
	apply(*req)
	return true
}

// Dropped reports how many requests were superseded before a flush.
func (c *Coalescer) Dropped() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}
