package model

import (
	"fmt"

	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/layout"
)

// HitKind classifies what a point landed on.
type HitKind int

const (
	HitBackground HitKind = iota
	HitNode
	HitInput
	HitOutput
)

func (k HitKind) String() string {
	switch k {
	case HitBackground:
		return "background"
	case HitNode:
		return "node"
	case HitInput:
		return "input"
	case HitOutput:
		return "output"
	default:
		return "unknown"
	}
}

// HitResult is the answer of a hit test. Node is -1 for background hits and
// Port is -1 unless Kind is HitInput or HitOutput.
type HitResult struct {
	Kind HitKind
	Node NodeIndex
	Port PortIndex
}

var Background = HitResult{Kind: HitBackground, Node: -1, Port: -1}

func NodeHit(n NodeIndex) HitResult {
	return HitResult{Kind: HitNode, Node: n, Port: -1}
}

func InputHit(n NodeIndex, p PortIndex) HitResult {
	return HitResult{Kind: HitInput, Node: n, Port: p}
}

func OutputHit(n NodeIndex, p PortIndex) HitResult {
	return HitResult{Kind: HitOutput, Node: n, Port: p}
}

func (h HitResult) Input() InputID   { return InputID{Node: h.Node, Port: h.Port} }
func (h HitResult) Output() OutputID { return OutputID{Node: h.Node, Port: h.Port} }

func (h HitResult) String() string {
	switch h.Kind {
	case HitNode:
		return fmt.Sprintf("node(%d)", h.Node)
	case HitInput, HitOutput:
		return fmt.Sprintf("%s(%d,%d)", h.Kind, h.Node, h.Port)
	default:
		return h.Kind.String()
	}
}

// HitTest checks ports before the body: ports sit inside the body rect and
// are the more specific target. Inputs are checked before outputs, each in
// index order.
func (n Node) HitTest(index NodeIndex, p geom.Point, l layout.Layout) (HitResult, bool) {
	if i, ok := n.FindInput(p, l); ok {
		return InputHit(index, i), true
	}
	if o, ok := n.FindOutput(p, l); ok {
		return OutputHit(index, o), true
	}
	if n.Rect(l).Contains(p) {
		return NodeHit(index), true
	}
	return HitResult{}, false
}

// HitTest resolves a graph-local point (the inverse view transform already
// applied) to the topmost element under it. Nodes are visited from last to
// first so the answer matches what is painted on top. It always returns a
// result; Background when nothing is hit.
func (p *Patch) HitTest(pt geom.Point, l layout.Layout) HitResult {
	for i := len(p.Nodes) - 1; i >= 0; i-- {
		if h, ok := p.Nodes[i].HitTest(i, pt, l); ok {
			return h
		}
	}
	return Background
}
