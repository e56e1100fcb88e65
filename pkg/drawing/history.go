package drawing

import "github.com/c9s/chartview/pkg/tool"

// History is the linear undo/redo store: two bounded stacks of full
// collection snapshots. A new commit clears redo; the oldest undo
// entry is evicted past the cap.
type History struct {
	limit int
	undo  []*tool.Collection
	redo  []*tool.Collection
}

// NewHistory seeds the undo stack with the initial state, so a fresh
// engine has depth 1 and Undo is a no-op.
func NewHistory(limit int, initial *tool.Collection) *History {
	if limit < 2 {
		limit = 2
	}
	return &History{
		limit: limit,
		undo:  []*tool.Collection{initial.Clone()},
	}
}

func (h *History) Push(c *tool.Collection) {
	h.undo = append(h.undo, c.Clone())
	if len(h.undo) > h.limit {
		evicted := len(h.undo) - h.limit
		h.undo = append([]*tool.Collection(nil), h.undo[evicted:]...)
	}
	h.redo = nil
}

// Undo steps back one committed state. It returns false when only the
// initial state remains.
func (h *History) Undo() (*tool.Collection, bool) {
	if len(h.undo) <= 1 {
		return nil, false
	}

	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, top)

	return h.undo[len(h.undo)-1].Clone(), true
}

// Redo reapplies the most recently undone state.
func (h *History) Redo() (*tool.Collection, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}

	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, top)

	return top.Clone(), true
}

func (h *History) UndoDepth() int { return len(h.undo) }
func (h *History) RedoDepth() int { return len(h.redo) }
