package tool

import (
	"sort"

	"github.com/pkg/errors"
)

// Collection is the ordered, id-unique set of persisted tools.
// Insertion order is the tie-break for equal z-index.
type Collection struct {
	tools []Tool
	byID  map[string]Tool
}

func NewCollection() *Collection {
	return &Collection{byID: make(map[string]Tool)}
}

func (c *Collection) Len() int { return len(c.tools) }

// Add appends a tool. A duplicate id is an internal invariant
// violation surfaced as an error, not silently replaced.
func (c *Collection) Add(t Tool) error {
	id := t.GetMeta().ID
	if id == "" {
		return errors.New("tool: missing id")
	}
	if _, ok := c.byID[id]; ok {
		return errors.Errorf("tool: duplicate id %q", id)
	}
	c.tools = append(c.tools, t)
	c.byID[id] = t
	return nil
}

func (c *Collection) Remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, t := range c.tools {
		if t.GetMeta().ID == id {
			c.tools = append(c.tools[:i], c.tools[i+1:]...)
			break
		}
	}
	return true
}

func (c *Collection) Get(id string) (Tool, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Tools returns the tools in insertion order.
func (c *Collection) Tools() []Tool {
	out := make([]Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// ZAscending returns the paint order: lowest z-index first, insertion
// order breaking ties.
func (c *Collection) ZAscending() []Tool {
	out := c.Tools()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GetMeta().ZIndex < out[j].GetMeta().ZIndex
	})
	return out
}

// ZDescending returns the hit-test order: front-most tool first.
func (c *Collection) ZDescending() []Tool {
	asc := c.ZAscending()
	out := make([]Tool, len(asc))
	for i, t := range asc {
		out[len(asc)-1-i] = t
	}
	return out
}

// MaxZIndex returns the highest z-index in the collection, 0 when
// empty.
func (c *Collection) MaxZIndex() int64 {
	var max int64
	for _, t := range c.tools {
		if z := t.GetMeta().ZIndex; z > max {
			max = z
		}
	}
	return max
}

// ClearSelection clears the selected flag on every tool.
func (c *Collection) ClearSelection() {
	for _, t := range c.tools {
		t.GetMeta().Selected = false
	}
}

// Selected returns the currently selected tool, if any.
func (c *Collection) Selected() (Tool, bool) {
	for _, t := range c.tools {
		if t.GetMeta().Selected {
			return t, true
		}
	}
	return nil, false
}

// Clone deep-copies the collection; history snapshots depend on this.
func (c *Collection) Clone() *Collection {
	out := NewCollection()
	for _, t := range c.tools {
		clone := t.Clone()
		out.tools = append(out.tools, clone)
		out.byID[clone.GetMeta().ID] = clone
	}
	return out
}
