// Package model holds the editor's graph value: a Patch of Nodes with named
// ports, connected by Wires.
//
// Identity is positional. A node is its index in Patch.Nodes and a port is
// its index in Node.Inputs or Node.Outputs. Indices are only meaningful
// within one snapshot: any structural edit may invalidate indices captured
// earlier. Hosts are expected to regenerate a Patch from their own stably
// identified model rather than use the Patch as that model.
package model

import (
	"fmt"
	"maps"
	"slices"
)

type (
	NodeIndex = int
	PortIndex = int
)

// OutputID names one output port of one node.
type OutputID struct {
	Node NodeIndex
	Port PortIndex
}

// InputID names one input port of one node.
type InputID struct {
	Node NodeIndex
	Port PortIndex
}

func (o OutputID) String() string { return fmt.Sprintf("%d.out%d", o.Node, o.Port) }
func (i InputID) String() string  { return fmt.Sprintf("%d.in%d", i.Node, i.Port) }

// Wire is a directed edge from an output port to an input port. Wires are
// compared and hashed by value.
type Wire struct {
	Output OutputID
	Input  InputID
}

func NewWire(from OutputID, to InputID) Wire { return Wire{Output: from, Input: to} }

func (w Wire) String() string { return w.Output.String() + "->" + w.Input.String() }

// WireSet is a set of wires. Adding a structurally identical wire twice
// stores it once.
type WireSet map[Wire]struct{}

func NewWireSet(wires ...Wire) WireSet {
	s := make(WireSet, len(wires))
	for _, w := range wires {
		s[w] = struct{}{}
	}
	return s
}

// Add inserts w and reports whether it was not already present.
func (s WireSet) Add(w Wire) bool {
	if _, ok := s[w]; ok {
		return false
	}
	s[w] = struct{}{}
	return true
}

// Remove deletes w and reports whether it was present.
func (s WireSet) Remove(w Wire) bool {
	if _, ok := s[w]; !ok {
		return false
	}
	delete(s, w)
	return true
}

func (s WireSet) Contains(w Wire) bool {
	_, ok := s[w]
	return ok
}

func (s WireSet) Len() int { return len(s) }

// Sorted returns the wires in a deterministic order: by input node, input
// port, output node, output port.
func (s WireSet) Sorted() []Wire {
	out := slices.Collect(maps.Keys(s))
	slices.SortFunc(out, compareWires)
	return out
}

func compareWires(a, b Wire) int {
	switch {
	case a.Input.Node != b.Input.Node:
		return a.Input.Node - b.Input.Node
	case a.Input.Port != b.Input.Port:
		return a.Input.Port - b.Input.Port
	case a.Output.Node != b.Output.Node:
		return a.Output.Node - b.Output.Node
	default:
		return a.Output.Port - b.Output.Port
	}
}

// Patch is the complete graph. The order of Nodes is the paint order: later
// nodes are drawn on top and win hit tests.
type Patch struct {
	Nodes []Node
	Wires WireSet
}

// New builds a patch from nodes and wires. Duplicate wires collapse.
func New(nodes []Node, wires ...Wire) *Patch {
	return &Patch{Nodes: nodes, Wires: NewWireSet(wires...)}
}

// Equal reports structural equality: same nodes in the same order and the
// same wire set.
func (p *Patch) Equal(o *Patch) bool {
	if p == nil || o == nil {
		return p == o
	}
	return slices.EqualFunc(p.Nodes, o.Nodes, Node.Equal) && maps.Equal(p.wires(), o.wires())
}

// Clone returns a deep copy so the result can be edited independently.
func (p *Patch) Clone() *Patch {
	nodes := make([]Node, len(p.Nodes))
	for i, n := range p.Nodes {
		nodes[i] = n.Clone()
	}
	return &Patch{Nodes: nodes, Wires: maps.Clone(p.wires())}
}

// wires tolerates a zero Patch whose set was never allocated.
func (p *Patch) wires() WireSet {
	if p.Wires == nil {
		return WireSet{}
	}
	return p.Wires
}

func (p *Patch) hasNode(i NodeIndex) bool { return i >= 0 && i < len(p.Nodes) }
