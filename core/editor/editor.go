// Package editor turns pointer events into edits of a patch: dragging nodes,
// drawing and re-routing wires, and rubber-band selection. It owns no
// rendering; hosts read DragState and Selection to draw feedback.
//
// An Editor is not safe for concurrent use. Pointer events, gesture deltas
// and edits must all come from the thread that owns it.
package editor

import (
	"maps"
	"slices"

	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/layout"
	"github.com/ingyamilmolinar/nodeflow/core/model"
	"github.com/ingyamilmolinar/nodeflow/core/topology"
	"github.com/ingyamilmolinar/nodeflow/core/view"
	"github.com/ingyamilmolinar/nodeflow/internal/log"
)

// Mode is what the current pointer drag is doing.
type Mode int

const (
	ModeIdle Mode = iota
	ModeMoveNodes
	ModeWire
	ModeSelectRect
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeMoveNodes:
		return "move"
	case ModeWire:
		return "wire"
	case ModeSelectRect:
		return "select"
	default:
		return "unknown"
	}
}

// DragState is a snapshot of the drag in flight, in graph coordinates.
type DragState struct {
	Mode Mode
	From geom.Point // output port centre for wires, press point otherwise
	To   geom.Point // current pointer position
	// Output is the wire source while Mode is ModeWire.
	Output model.OutputID
}

// Rect is the rubber band spanned by From and To.
func (d DragState) Rect() geom.Rect { return geom.RectFromPoints(d.From, d.To) }

type drag struct {
	mode     Mode
	origin   geom.Point // graph point of the press
	current  geom.Point
	additive bool

	starts map[model.NodeIndex]geom.Point // ModeMoveNodes

	output   model.OutputID // ModeWire
	detached *model.Wire    // wire lifted off an input, restored on Cancel
}

type Editor struct {
	patch       *model.Patch
	layout      layout.Layout
	view        *view.Transform
	logger      *log.Logger
	grid        geom.Grid
	allowCycles bool
	observer    Observer

	selected map[model.NodeIndex]bool
	drag     drag
}

var _ view.GestureSink = (*Editor)(nil)

type Option func(*Editor)

func WithTransform(t *view.Transform) Option { return func(e *Editor) { e.view = t } }
func WithLogger(l *log.Logger) Option        { return func(e *Editor) { e.logger = l } }
func WithGrid(step float64) Option           { return func(e *Editor) { e.grid = geom.NewGrid(step) } }
func WithAllowCycles(ok bool) Option         { return func(e *Editor) { e.allowCycles = ok } }
func WithObserver(o Observer) Option         { return func(e *Editor) { e.observer = o } }

// New returns an editor operating on p in place.
func New(p *model.Patch, l layout.Layout, opts ...Option) *Editor {
	e := &Editor{
		patch:    p,
		layout:   l,
		selected: map[model.NodeIndex]bool{},
	}
	for _, o := range opts {
		o(e)
	}
	if e.view == nil {
		e.view = view.New()
	}
	if e.logger == nil {
		e.logger = log.Discard()
	}
	if e.observer == nil {
		e.observer = ObserverFuncs{}
	}
	return e
}

func (e *Editor) Patch() *model.Patch        { return e.patch }
func (e *Editor) Transform() *view.Transform { return e.view }

/* ───────────────────────── gestures ───────────────────────── */

func (e *Editor) ApplyPan(dx, dy float64) { e.view.ApplyPan(dx, dy) }

func (e *Editor) ApplyZoom(scale float64, focal geom.Point) { e.view.ApplyZoom(scale, focal) }

/* ───────────────────────── pointer ───────────────────────── */

// PointerDown starts an interaction at the given screen position. With
// additive set, clicking a node toggles it in the selection and a rubber
// band adds to the selection instead of replacing it.
func (e *Editor) PointerDown(screen geom.Point, additive bool) model.HitResult {
	if e.drag.mode != ModeIdle {
		e.Cancel()
	}
	at := e.view.ScreenToGraph(screen)
	hit := e.patch.HitTest(at, e.layout)
	e.drag = drag{origin: at, current: at, additive: additive}

	switch hit.Kind {
	case model.HitNode:
		e.pressNode(hit.Node, additive)
	case model.HitOutput:
		e.drag.mode = ModeWire
		e.drag.output = hit.Output()
		e.logger.Debugf("[EDITOR] wire drag from %v", e.drag.output)
	case model.HitInput:
		e.pressInput(hit.Input())
	default:
		e.drag.mode = ModeSelectRect
	}
	return hit
}

func (e *Editor) pressNode(i model.NodeIndex, additive bool) {
	switch {
	case additive && e.selected[i]:
		delete(e.selected, i)
		return
	case additive:
		e.selected[i] = true
	case !e.selected[i]:
		clear(e.selected)
		e.selected[i] = true
	}
	e.drag.mode = ModeMoveNodes
	e.drag.starts = make(map[model.NodeIndex]geom.Point, len(e.selected))
	for s := range e.selected {
		if s < len(e.patch.Nodes) && !e.patch.Nodes[s].Locked {
			e.drag.starts[s] = e.patch.Nodes[s].Position
		}
	}
	e.logger.Debugf("[EDITOR] move drag: %d node(s)", len(e.drag.starts))
}

// pressInput lifts the last wire into in, in sorted order (highest output
// node, then port), so it can be re-routed.
// Inputs with nothing attached do not start a drag.
func (e *Editor) pressInput(in model.InputID) {
	wires := e.patch.WiresTo(in)
	if len(wires) == 0 {
		return
	}
	w := wires[len(wires)-1]
	e.patch.Disconnect(w)
	e.observer.WireRemoved(w)
	e.drag.mode = ModeWire
	e.drag.output = w.Output
	e.drag.detached = &w
	e.logger.Debugf("[EDITOR] rewire %v", w)
}

// PointerMove updates the drag in flight.
func (e *Editor) PointerMove(screen geom.Point) {
	if e.drag.mode == ModeIdle {
		return
	}
	e.drag.current = e.view.ScreenToGraph(screen)
	if e.drag.mode != ModeMoveNodes {
		return
	}
	delta := e.drag.current.Sub(e.drag.origin)
	for _, i := range slices.Sorted(maps.Keys(e.drag.starts)) {
		pos := e.grid.Snap(e.drag.starts[i].Add(delta))
		if pos == e.patch.Nodes[i].Position {
			continue
		}
		if e.patch.SetPosition(i, pos) {
			e.observer.NodeMoved(i, pos)
		}
	}
}

// PointerUp finishes the drag at the given screen position.
func (e *Editor) PointerUp(screen geom.Point) {
	e.PointerMove(screen)
	d := e.drag
	e.drag = drag{}

	switch d.mode {
	case ModeWire:
		hit := e.patch.HitTest(d.current, e.layout)
		if hit.Kind != model.HitInput {
			if d.detached != nil {
				e.logger.Debugf("[EDITOR] dropped %v", *d.detached)
			}
			return
		}
		if !e.connect(model.NewWire(d.output, hit.Input())) && d.detached != nil {
			// a rejected re-route puts the lifted wire back
			if e.patch.Connect(*d.detached) {
				e.observer.WireAdded(*d.detached)
			}
		}
	case ModeSelectRect:
		picked := e.patch.NodesIn(geom.RectFromPoints(d.origin, d.current), e.layout)
		if !d.additive {
			clear(e.selected)
		}
		for _, i := range picked {
			e.selected[i] = true
		}
	}
}

// Cancel abandons the drag in flight. Moved nodes go back to where they
// started and a lifted wire is reattached.
func (e *Editor) Cancel() {
	d := e.drag
	e.drag = drag{}
	switch d.mode {
	case ModeMoveNodes:
		for _, i := range slices.Sorted(maps.Keys(d.starts)) {
			if e.patch.Nodes[i].Position != d.starts[i] && e.patch.SetPosition(i, d.starts[i]) {
				e.observer.NodeMoved(i, d.starts[i])
			}
		}
	case ModeWire:
		if d.detached != nil && e.patch.Connect(*d.detached) {
			e.observer.WireAdded(*d.detached)
		}
	}
}

func (e *Editor) connect(w model.Wire) bool {
	if err := e.patch.CheckWire(w); err != nil {
		e.logger.Warnf("[EDITOR] rejected %v: %v", w, err)
		return false
	}
	if !e.allowCycles && topology.WouldCycle(e.patch, w) {
		e.logger.Warnf("[EDITOR] rejected %v: would create a cycle", w)
		return false
	}
	if !e.patch.Connect(w) {
		return false
	}
	e.logger.Debugf("[EDITOR] connected %v", w)
	e.observer.WireAdded(w)
	return true
}

// Connect adds w subject to the same checks as a wire drag.
func (e *Editor) Connect(w model.Wire) bool { return e.connect(w) }

// DragState reports the drag in flight; Mode is ModeIdle when there is none.
func (e *Editor) DragState() DragState {
	d := DragState{Mode: e.drag.mode, From: e.drag.origin, To: e.drag.current}
	if d.Mode == ModeWire {
		d.Output = e.drag.output
		if n := e.drag.output.Node; n >= 0 && n < len(e.patch.Nodes) {
			d.From = e.patch.Nodes[n].OutputRect(e.drag.output.Port, e.layout).Center()
		}
	}
	return d
}

/* ───────────────────────── selection ───────────────────────── */

// Selection returns the selected node indices in ascending order.
func (e *Editor) Selection() []model.NodeIndex {
	return slices.Sorted(maps.Keys(e.selected))
}

func (e *Editor) IsSelected(i model.NodeIndex) bool { return e.selected[i] }

// Select replaces the selection. Out of range indices are ignored.
func (e *Editor) Select(nodes ...model.NodeIndex) {
	clear(e.selected)
	for _, i := range nodes {
		if i >= 0 && i < len(e.patch.Nodes) {
			e.selected[i] = true
		}
	}
}

func (e *Editor) ClearSelection() { clear(e.selected) }

// DeleteSelection removes every selected node and its wires, highest index
// first so the remaining selected indices stay valid. It returns how many
// nodes were removed.
func (e *Editor) DeleteSelection() int {
	if e.drag.mode != ModeIdle {
		e.Cancel()
	}
	sel := e.Selection()
	clear(e.selected)
	n := 0
	for _, i := range slices.Backward(sel) {
		removed, ok := e.patch.RemoveNode(i)
		if !ok {
			continue
		}
		for _, w := range removed {
			e.observer.WireRemoved(w)
		}
		e.observer.NodeRemoved(i)
		n++
	}
	if n > 0 {
		e.logger.Infof("[EDITOR] deleted %d node(s)", n)
	}
	return n
}
