package main

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/ingyamilmolinar/nodeflow/core/model"
)

type attrs []encoding.Attribute

func (a attrs) Attributes() []encoding.Attribute { return a }

// dotGraph keeps parallel wires between the same two nodes apart, which a
// simple graph would merge.
type dotGraph struct{ *multi.DirectedGraph }

func (dotGraph) DOTAttributers() (g, n, e encoding.Attributer) {
	return attrs{{Key: "rankdir", Value: "LR"}}, attrs{{Key: "shape", Value: "box"}}, attrs{}
}

type dotNode struct {
	id   int64
	name string
}

func (n dotNode) ID() int64                        { return n.id }
func (n dotNode) DOTID() string                    { return fmt.Sprintf("n%d", n.id) }
func (n dotNode) Attributes() []encoding.Attribute { return attrs{{Key: "label", Value: n.name}} }

type dotLine struct {
	from, to dotNode
	id       int64
	label    string
}

func (l dotLine) From() graph.Node { return l.from }
func (l dotLine) To() graph.Node   { return l.to }
func (l dotLine) ID() int64        { return l.id }

func (l dotLine) ReversedLine() graph.Line {
	return dotLine{from: l.to, to: l.from, id: l.id, label: l.label}
}

func (l dotLine) Attributes() []encoding.Attribute {
	return attrs{{Key: "label", Value: l.label}}
}

// marshalDOT renders p as a digraph with one edge per wire, labelled with
// the port names it joins. Dangling wires are left out.
func marshalDOT(p *model.Patch, name string) ([]byte, error) {
	g := dotGraph{multi.NewDirectedGraph()}
	nodes := make([]dotNode, len(p.Nodes))
	for i, n := range p.Nodes {
		nodes[i] = dotNode{id: int64(i), name: n.Name}
		g.AddNode(nodes[i])
	}
	for id, w := range p.Wires.Sorted() {
		if p.CheckWire(w) != nil {
			continue
		}
		out := p.Nodes[w.Output.Node].Outputs[w.Output.Port].Name
		in := p.Nodes[w.Input.Node].Inputs[w.Input.Port].Name
		g.SetLine(dotLine{
			from:  nodes[w.Output.Node],
			to:    nodes[w.Input.Node],
			id:    int64(id),
			label: out + " -> " + in,
		})
	}
	return dot.MarshalMulti(g, name, "", "\t")
}
