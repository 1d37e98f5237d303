package model

import (
	"errors"
	"fmt"

	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/layout"
)

var (
	ErrNodeOutOfRange = errors.New("model: node index out of range")
	ErrPortOutOfRange = errors.New("model: port index out of range")
)

/* ───────────────────────── nodes ───────────────────────── */

// AddNode appends n on top of the paint order and returns its index.
func (p *Patch) AddNode(n Node) NodeIndex {
	p.Nodes = append(p.Nodes, n)
	return len(p.Nodes) - 1
}

// RemoveNode deletes node i together with every wire touching it, and shifts
// wires on later nodes down so the remaining wire set stays consistent.
// Indices captured before the call are invalid afterwards.
func (p *Patch) RemoveNode(i NodeIndex) (removed []Wire, ok bool) {
	if !p.hasNode(i) {
		return nil, false
	}
	p.Nodes = append(p.Nodes[:i], p.Nodes[i+1:]...)

	next := make(WireSet, len(p.Wires))
	for _, w := range p.wires().Sorted() {
		if w.Output.Node == i || w.Input.Node == i {
			removed = append(removed, w)
			continue
		}
		if w.Output.Node > i {
			w.Output.Node--
		}
		if w.Input.Node > i {
			w.Input.Node--
		}
		next[w] = struct{}{}
	}
	p.Wires = next
	return removed, true
}

// MoveNode translates node i by off. Locked nodes are left alone.
func (p *Patch) MoveNode(i NodeIndex, off geom.Size) bool {
	if !p.hasNode(i) || p.Nodes[i].Locked {
		return false
	}
	p.Nodes[i] = p.Nodes[i].Translate(off)
	return true
}

// SetPosition places node i at pos unless it is locked.
func (p *Patch) SetPosition(i NodeIndex, pos geom.Point) bool {
	if !p.hasNode(i) || p.Nodes[i].Locked {
		return false
	}
	p.Nodes[i].Position = pos
	return true
}

/* ───────────────────────── wires ───────────────────────── */

// CheckWire reports why w cannot exist in p, or nil.
func (p *Patch) CheckWire(w Wire) error {
	if !p.hasNode(w.Output.Node) {
		return fmt.Errorf("%w: wire %v output node", ErrNodeOutOfRange, w)
	}
	if !p.hasNode(w.Input.Node) {
		return fmt.Errorf("%w: wire %v input node", ErrNodeOutOfRange, w)
	}
	if o := w.Output.Port; o < 0 || o >= len(p.Nodes[w.Output.Node].Outputs) {
		return fmt.Errorf("%w: wire %v output port", ErrPortOutOfRange, w)
	}
	if in := w.Input.Port; in < 0 || in >= len(p.Nodes[w.Input.Node].Inputs) {
		return fmt.Errorf("%w: wire %v input port", ErrPortOutOfRange, w)
	}
	return nil
}

// Connect adds w if its endpoints exist and it is not already present.
func (p *Patch) Connect(w Wire) bool {
	if p.CheckWire(w) != nil {
		return false
	}
	if p.Wires == nil {
		p.Wires = WireSet{}
	}
	return p.Wires.Add(w)
}

func (p *Patch) Disconnect(w Wire) bool { return p.wires().Remove(w) }

// DisconnectInput removes every wire ending at in.
func (p *Patch) DisconnectInput(in InputID) []Wire {
	removed := p.WiresTo(in)
	for _, w := range removed {
		delete(p.Wires, w)
	}
	return removed
}

// WiresTo returns the wires ending at in, sorted.
func (p *Patch) WiresTo(in InputID) []Wire {
	return p.filterWires(func(w Wire) bool { return w.Input == in })
}

// WiresInto returns the wires ending at any input of node i, sorted by input
// port.
func (p *Patch) WiresInto(i NodeIndex) []Wire {
	return p.filterWires(func(w Wire) bool { return w.Input.Node == i })
}

// WiresFrom returns the wires leaving any output of node i, sorted.
func (p *Patch) WiresFrom(i NodeIndex) []Wire {
	return p.filterWires(func(w Wire) bool { return w.Output.Node == i })
}

func (p *Patch) filterWires(keep func(Wire) bool) []Wire {
	var out []Wire
	for _, w := range p.wires().Sorted() {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

// DanglingWires lists wires whose endpoints no longer exist, typically after
// the host edited Nodes directly.
func (p *Patch) DanglingWires() []Wire {
	return p.filterWires(func(w Wire) bool { return p.CheckWire(w) != nil })
}

// Prune removes dangling wires and returns them.
func (p *Patch) Prune() []Wire {
	dangling := p.DanglingWires()
	for _, w := range dangling {
		delete(p.Wires, w)
	}
	return dangling
}

// Validate returns the first referential problem in the wire set.
func (p *Patch) Validate() error {
	for _, w := range p.wires().Sorted() {
		if err := p.CheckWire(w); err != nil {
			return err
		}
	}
	return nil
}

/* ───────────────────────── geometry ───────────────────────── */

// WireEndpoints returns the centres of the output and input rects a wire
// joins, for drawing its curve. ok is false for a dangling wire.
func (p *Patch) WireEndpoints(w Wire, l layout.Layout) (from, to geom.Point, ok bool) {
	if p.CheckWire(w) != nil {
		return geom.Point{}, geom.Point{}, false
	}
	from = p.Nodes[w.Output.Node].OutputRect(w.Output.Port, l).Center()
	to = p.Nodes[w.Input.Node].InputRect(w.Input.Port, l).Center()
	return from, to, true
}

// NodesIn returns the nodes whose rect intersects r, in paint order.
func (p *Patch) NodesIn(r geom.Rect, l layout.Layout) []NodeIndex {
	var out []NodeIndex
	for i, n := range p.Nodes {
		if n.Rect(l).Intersects(r) {
			out = append(out, i)
		}
	}
	return out
}

// Bounds is the union of every node rect.
func (p *Patch) Bounds(l layout.Layout) geom.Rect {
	var b geom.Rect
	for _, n := range p.Nodes {
		b = b.Union(n.Rect(l))
	}
	return b
}
