package model

import (
	"slices"

	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/layout"
)

// Port is a named connection point. Its identity is its index.
type Port struct {
	Name string
}

// Node is a graph vertex drawn as a box at Position (graph-local, top-left
// corner) with inputs down the left edge and outputs down the right.
type Node struct {
	Name     string
	Position geom.Point
	Locked   bool // position fixed; the editor will not drag it
	Inputs   []Port
	Outputs  []Port
}

// NodeOption customises NewNode.
type NodeOption func(*Node)

func At(x, y float64) NodeOption { return func(n *Node) { n.Position = geom.Pt(x, y) } }
func Locked() NodeOption         { return func(n *Node) { n.Locked = true } }

// NewNode builds a node whose ports are named by inputs and outputs.
func NewNode(name string, inputs, outputs []string, opts ...NodeOption) Node {
	n := Node{Name: name, Inputs: ports(inputs), Outputs: ports(outputs)}
	for _, o := range opts {
		o(&n)
	}
	return n
}

func ports(names []string) []Port {
	if len(names) == 0 {
		return nil
	}
	out := make([]Port, len(names))
	for i, name := range names {
		out[i] = Port{Name: name}
	}
	return out
}

// Equal compares nodes field by field, treating nil and empty port lists as
// equal.
func (n Node) Equal(o Node) bool {
	return n.Name == o.Name && n.Position == o.Position && n.Locked == o.Locked &&
		slices.Equal(n.Inputs, o.Inputs) && slices.Equal(n.Outputs, o.Outputs)
}

func (n Node) Clone() Node {
	n.Inputs = slices.Clone(n.Inputs)
	n.Outputs = slices.Clone(n.Outputs)
	return n
}

// Translate returns a copy of n moved by off.
func (n Node) Translate(off geom.Size) Node {
	n.Position = n.Position.Add(off)
	return n
}

// PortRows is the number of port rows the node needs.
func (n Node) PortRows() int { return max(len(n.Inputs), len(n.Outputs)) }

// Rect is the node's bounding box.
func (n Node) Rect(l layout.Layout) geom.Rect {
	return geom.RectAt(n.Position, l.RectSize(n.PortRows()))
}

// InputRect is the hit rect of input i, not including its label. i is not
// range checked.
func (n Node) InputRect(i PortIndex, l layout.Layout) geom.Rect {
	return l.InputRect(i).Translate(n.Position)
}

// OutputRect is the hit rect of output i, not including its label. i is not
// range checked.
func (n Node) OutputRect(i PortIndex, l layout.Layout) geom.Rect {
	return l.OutputRect(i).Translate(n.Position)
}

// FindInput returns the first input whose rect contains p.
func (n Node) FindInput(p geom.Point, l layout.Layout) (PortIndex, bool) {
	for i := range n.Inputs {
		if n.InputRect(i, l).Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// FindOutput returns the first output whose rect contains p.
func (n Node) FindOutput(p geom.Point, l layout.Layout) (PortIndex, bool) {
	for i := range n.Outputs {
		if n.OutputRect(i, l).Contains(p) {
			return i, true
		}
	}
	return -1, false
}
