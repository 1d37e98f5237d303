// Package topology answers node-level questions about a patch's wires
// (ordering, reachability, cycles) using gonum's graph algorithms.
package topology

import (
	"errors"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/ingyamilmolinar/nodeflow/core/model"
)

// ErrCycle is returned when an operation needs an acyclic wire graph.
var ErrCycle = errors.New("topology: wires form a cycle")

// Graph is the node-level view of a patch: one gonum node per patch node and
// one edge per connected ordered pair, however many wires join them.
type Graph struct {
	*simple.DirectedGraph
	// SelfLoops lists nodes wired into themselves. gonum's simple graphs
	// cannot hold self edges, so they are kept here.
	SelfLoops []model.NodeIndex
}

// Build projects p onto a gonum directed graph. Wires referencing missing
// nodes are skipped.
func Build(p *model.Patch) *Graph {
	g := &Graph{DirectedGraph: simple.NewDirectedGraph()}
	for i := range p.Nodes {
		g.AddNode(simple.Node(i))
	}
	for _, w := range p.Wires.Sorted() {
		from, to := int64(w.Output.Node), int64(w.Input.Node)
		if g.Node(from) == nil || g.Node(to) == nil {
			continue
		}
		if from == to {
			if !slices.Contains(g.SelfLoops, w.Output.Node) {
				g.SelfLoops = append(g.SelfLoops, w.Output.Node)
			}
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
	}
	return g
}

// Order returns the nodes so that every wire runs from an earlier node to a
// later one. Ties are broken by node index.
func Order(p *model.Patch) ([]model.NodeIndex, error) {
	g := Build(p)
	if len(g.SelfLoops) > 0 {
		return nil, ErrCycle
	}
	sorted, err := topo.SortStabilized(g, byID)
	if err != nil {
		var u topo.Unorderable
		if errors.As(err, &u) {
			return nil, ErrCycle
		}
		return nil, err
	}
	return indices(sorted), nil
}

// WouldCycle reports whether adding w to p would close a loop, i.e. whether
// w's input node already reaches w's output node.
func WouldCycle(p *model.Patch, w model.Wire) bool {
	if w.Output.Node == w.Input.Node {
		return true
	}
	g := Build(p)
	from, to := g.Node(int64(w.Input.Node)), g.Node(int64(w.Output.Node))
	if from == nil || to == nil {
		return false
	}
	return topo.PathExistsIn(g, from, to)
}

// Cycles lists the elementary cycles of the wire graph, each as node indices
// starting from its smallest member. Self loops are reported as single-node
// cycles.
func Cycles(p *model.Patch) [][]model.NodeIndex {
	g := Build(p)
	var out [][]model.NodeIndex
	for _, n := range g.SelfLoops {
		out = append(out, []model.NodeIndex{n})
	}
	for _, c := range topo.DirectedCyclesIn(g) {
		idx := indices(c)
		// gonum closes each cycle by repeating its first node
		if len(idx) > 1 && idx[0] == idx[len(idx)-1] {
			idx = idx[:len(idx)-1]
		}
		m := slices.Index(idx, slices.Min(idx))
		out = append(out, slices.Concat(idx[m:], idx[:m]))
	}
	slices.SortFunc(out, func(a, b []model.NodeIndex) int { return slices.Compare(a, b) })
	return out
}

// Sinks are nodes with no outgoing wires, in index order.
func Sinks(p *model.Patch) []model.NodeIndex {
	g := Build(p)
	var out []model.NodeIndex
	for i := range p.Nodes {
		if g.From(int64(i)).Len() == 0 {
			out = append(out, i)
		}
	}
	return out
}

func byID(nodes []graph.Node) {
	slices.SortFunc(nodes, func(a, b graph.Node) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		}
		return 0
	})
}

func indices(nodes []graph.Node) []model.NodeIndex {
	out := make([]model.NodeIndex, len(nodes))
	for i, n := range nodes {
		out[i] = model.NodeIndex(n.ID())
	}
	return out
}
