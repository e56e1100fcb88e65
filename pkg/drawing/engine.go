// Package drawing implements the annotation engine: the interactive
// state machine that creates, edits, hit-tests, persists, and undoes
// chart tools. Its only view of pixel space is a scale.Provider.
package drawing

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/c9s/chartview/pkg/metrics"
	"github.com/c9s/chartview/pkg/scale"
	"github.com/c9s/chartview/pkg/tool"
)

// Options are the engine settings. Invalid values fall back to
// defaults.
type Options struct {
	// Epsilon is the hit-test tolerance in pixels, independent of
	// zoom.
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`

	// HistoryLimit caps the undo stack entry count.
	HistoryLimit int `json:"historyLimit" yaml:"historyLimit"`
}

func DefaultOptions() Options {
	return Options{Epsilon: 6, HistoryLimit: 50}
}

func (o Options) sanitize() Options {
	def := DefaultOptions()
	if !(o.Epsilon > 0) || o.Epsilon > 100 {
		o.Epsilon = def.Epsilon
	}
	if o.HistoryLimit < 2 {
		o.HistoryLimit = def.HistoryLimit
	}
	return o
}

// Engine owns the tool collection, the in-progress draft, selection
// and edit state, and the undo history. All entry points recover
// locally from bad input; none of them panic mid-gesture.
type Engine struct {
	scales scale.Provider
	opts   Options

	collection *tool.Collection
	history    *History

	mode       Mode
	activeKind tool.Kind
	create     *createSession
	edit       *editSession
	nextZ      int64

	changeCallbacks []func()
	warnCallbacks   []func(error)
}

func NewEngine(scales scale.Provider, opts Options) *Engine {
	col := tool.NewCollection()
	o := opts.sanitize()
	return &Engine{
		scales:     scales,
		opts:       o,
		collection: col,
		history:    NewHistory(o.HistoryLimit, col),
		mode:       ModeChart,
		activeKind: tool.KindTrendline,
		nextZ:      1,
	}
}

func (e *Engine) OnChange(cb func()) {
	e.changeCallbacks = append(e.changeCallbacks, cb)
}

func (e *Engine) OnWarn(cb func(error)) {
	e.warnCallbacks = append(e.warnCallbacks, cb)
}

func (e *Engine) emitChange() {
	for _, cb := range e.changeCallbacks {
		cb()
	}
}

// emitWarn reports a recovered failure to the host; the interaction
// itself continues.
func (e *Engine) emitWarn(err error) {
	log.WithError(err).Warn("drawing engine warning")
	for _, cb := range e.warnCallbacks {
		cb(err)
	}
}

func (e *Engine) Mode() Mode                { return e.mode }
func (e *Engine) ActiveKind() tool.Kind     { return e.activeKind }
func (e *Engine) Tools() []tool.Tool        { return e.collection.Tools() }
func (e *Engine) PaintOrder() []tool.Tool   { return e.collection.ZAscending() }
func (e *Engine) UndoDepth() int            { return e.history.UndoDepth() }
func (e *Engine) RedoDepth() int            { return e.history.RedoDepth() }
func (e *Engine) Epsilon() float64          { return e.opts.Epsilon }
func (e *Engine) Selected() (tool.Tool, bool) { return e.collection.Selected() }

// Draft returns the tool under construction, nil outside a creation
// gesture. It is never part of the persisted collection.
func (e *Engine) Draft() tool.Tool {
	if e.create == nil {
		return nil
	}
	return e.create.draft
}

// SetMode switches interpretation of pointer events. Leaving draw
// mode aborts any in-progress draft without committing; this is the
// cancellation path.
func (e *Engine) SetMode(m Mode) {
	if m == e.mode {
		return
	}
	e.abortGesture()
	e.mode = m
	e.emitChange()
}

// SetActiveKind selects the tool to draw next. An unknown kind is a
// warned no-op. Switching kinds aborts any in-progress draft.
func (e *Engine) SetActiveKind(k tool.Kind) {
	kind, err := tool.ParseKind(string(k))
	if err != nil {
		e.emitWarn(err)
		return
	}
	if kind == e.activeKind {
		return
	}
	e.abortGesture()
	e.activeKind = kind
	e.emitChange()
}

func (e *Engine) abortGesture() {
	e.create = nil
	e.edit = nil
}

// HandlePointer feeds one normalized pointer event into the engine.
func (e *Engine) HandlePointer(ev PointerEvent) {
	switch e.mode {
	case ModeDraw:
		e.handleDraw(ev)
	case ModeSelect:
		e.handleSelect(ev)
	}
	// ModeChart: panning is the host's business
}

func (e *Engine) dataPoint(ev PointerEvent) (tool.Point, bool) {
	pt := tool.Point{Index: e.scales.UnscaleX(ev.X), Price: e.scales.UnscaleY(ev.Y)}
	if !pt.Finite() {
		e.emitWarn(errors.Errorf("drawing: pointer (%v, %v) maps to non-finite data point", ev.X, ev.Y))
		return tool.Point{}, false
	}
	return pt, true
}

func (e *Engine) handleDraw(ev PointerEvent) {
	pt, ok := e.dataPoint(ev)
	if !ok {
		return
	}

	switch kindCategory(e.activeKind) {
	case oneShot:
		if ev.Kind == PointerDown {
			e.finalize(newDraft(e.activeKind, pt, tool.DefaultLineStyle()))
		}

	case twoPoint:
		switch ev.Kind {
		case PointerDown:
			if e.create == nil {
				e.create = &createSession{
					kind:  e.activeKind,
					draft: newDraft(e.activeKind, pt, tool.DefaultLineStyle()),
				}
				e.emitChange()
			}
		case PointerMove:
			if e.create != nil {
				e.create.track(pt)
				e.emitChange()
			}
		case PointerUp:
			if e.create != nil {
				e.create.track(pt)
				e.finalize(e.create.draft)
			}
		}

	case threePoint:
		switch ev.Kind {
		case PointerDown:
			if e.create == nil {
				e.create = &createSession{
					kind:  e.activeKind,
					draft: newDraft(e.activeKind, pt, tool.DefaultLineStyle()),
					stage: 1,
				}
				e.emitChange()
				return
			}
			// commit the current stage's point, then advance
			e.create.track(pt)
			e.create.stage++
			if e.create.stage >= 3 {
				e.finalize(e.create.draft)
				return
			}
			e.emitChange()
		case PointerMove:
			if e.create != nil {
				e.create.track(pt)
				e.emitChange()
			}
		}
		// pointer-up does not advance a click-sequenced tool

	case accumulating:
		switch ev.Kind {
		case PointerDown:
			if e.create == nil {
				e.create = &createSession{
					kind:  e.activeKind,
					draft: newDraft(e.activeKind, pt, tool.DefaultLineStyle()),
				}
				e.emitChange()
			}
		case PointerMove:
			if e.create != nil && ev.Buttons > 0 {
				e.create.append(pt)
				e.emitChange()
			}
		case PointerUp:
			if e.create != nil {
				e.finalize(e.create.draft)
			}
		}
	}
}

// finalize validates the draft and commits it. An invalid draft is
// discarded with a warning and the engine returns to the last good
// state; the user just tries again.
func (e *Engine) finalize(t tool.Tool) {
	e.create = nil

	if t == nil {
		return
	}
	if err := t.Validate(); err != nil {
		e.emitWarn(errors.Wrap(err, "drawing: draft discarded"))
		e.emitChange()
		return
	}

	m := t.GetMeta()
	m.ZIndex = e.nextZ
	e.nextZ++

	e.collection.ClearSelection()
	m.Selected = true

	if err := e.collection.Add(t); err != nil {
		// duplicate id here means an internal bug, not user input
		e.emitWarn(err)
		return
	}

	metrics.ToolsCreatedCounter.WithLabelValues(string(t.Kind())).Inc()
	e.commit()
}

func (e *Engine) handleSelect(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		e.selectAt(ev)
	case PointerMove:
		if e.edit != nil && ev.Buttons > 0 {
			if pt, ok := e.dataPoint(ev); ok {
				e.edit.target.MoveHandle(e.edit.handle, pt)
				e.edit.moved = true
				e.emitChange()
			}
		}
	case PointerUp:
		if e.edit != nil {
			// one history entry per drag, not per intermediate move
			if e.edit.moved {
				e.commit()
			}
			e.edit = nil
		}
	}
}

// selectAt hit-tests unlocked tools front-most first and begins a
// handle drag when the cursor landed on a control point.
func (e *Engine) selectAt(ev PointerEvent) {
	for _, t := range e.collection.ZDescending() {
		if t.GetMeta().Locked {
			continue
		}
		hit, handle := t.Hit(e.scales, ev.X, ev.Y, e.opts.Epsilon)
		if !hit {
			continue
		}

		e.collection.ClearSelection()
		t.GetMeta().Selected = true
		if handle != tool.NoHandle {
			e.edit = &editSession{target: t, handle: handle}
		}
		e.emitChange()
		return
	}

	if _, had := e.collection.Selected(); had {
		e.collection.ClearSelection()
		e.emitChange()
	}
}

// commit pushes an undo snapshot and notifies the host.
func (e *Engine) commit() {
	e.history.Push(e.collection)
	metrics.HistoryDepthGauge.Set(float64(e.history.UndoDepth()))
	e.emitChange()
}

// Undo restores the previous committed state; a no-op when only the
// initial empty state remains.
func (e *Engine) Undo() bool {
	col, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.abortGesture()
	e.collection = col
	e.nextZ = col.MaxZIndex() + 1
	e.emitChange()
	return true
}

// Redo reapplies the most recently undone state.
func (e *Engine) Redo() bool {
	col, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.abortGesture()
	e.collection = col
	e.nextZ = col.MaxZIndex() + 1
	e.emitChange()
	return true
}

// Remove deletes a tool by id and commits.
func (e *Engine) Remove(id string) bool {
	if !e.collection.Remove(id) {
		return false
	}
	e.commit()
	return true
}

// DeleteSelected removes the selected tool, if any.
func (e *Engine) DeleteSelected() bool {
	sel, ok := e.collection.Selected()
	if !ok {
		return false
	}
	return e.Remove(sel.GetMeta().ID)
}

// Lock marks a tool as excluded from hit-testing and selection.
func (e *Engine) Lock(id string, locked bool) bool {
	t, ok := e.collection.Get(id)
	if !ok {
		return false
	}
	t.GetMeta().Locked = locked
	if locked && t.GetMeta().Selected {
		t.GetMeta().Selected = false
	}
	e.commit()
	return true
}

// UpdateLabel replaces the label of a text-bearing tool and commits.
func (e *Engine) UpdateLabel(id, label string) error {
	t, ok := e.collection.Get(id)
	if !ok {
		return errors.Errorf("drawing: no tool %q", id)
	}

	switch v := t.(type) {
	case *tool.TextNote:
		v.Label = label
	case *tool.Callout:
		v.Label = label
	default:
		return errors.Errorf("drawing: %s carries no label", t.Kind())
	}

	if err := t.Validate(); err != nil {
		return err
	}
	e.commit()
	return nil
}

// Serialize produces the textual snapshot of the collection.
func (e *Engine) Serialize() ([]byte, error) {
	return tool.EncodeSnapshot(e.collection)
}

// Deserialize replaces the collection from a snapshot, all or
// nothing: on any validation failure the previous state is kept.
func (e *Engine) Deserialize(data []byte) error {
	col, err := tool.DecodeSnapshot(data, e.emitWarn)
	if err != nil {
		metrics.SnapshotErrorsCounter.Inc()
		e.emitWarn(err)
		return err
	}

	e.abortGesture()
	e.collection = col
	e.nextZ = col.MaxZIndex() + 1
	e.commit()
	return nil
}
