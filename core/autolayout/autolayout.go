// Package autolayout gives a patch without positions a readable initial
// arrangement. It is meant to run once, not on every edit.
//
// The main strategy walks backwards from a root through incoming wires: the
// root sits in the rightmost column and each hop towards the sources moves
// one column left. Predecessors of one node are stacked top to bottom in
// input-port order, each taking the height of its own subtree.
package autolayout

import (
	"fmt"

	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/layout"
	"github.com/ingyamilmolinar/nodeflow/core/model"
	"github.com/ingyamilmolinar/nodeflow/core/topology"
)

// Result describes one layout pass.
type Result struct {
	Height float64           // total height of the laid out subtree
	Placed []model.NodeIndex // in discovery order
}

type walker struct {
	p        *model.Patch
	l        layout.Constants
	consumed map[model.NodeIndex]bool
	placed   []model.NodeIndex
}

func newWalker(p *model.Patch, l layout.Constants) *walker {
	return &walker{p: p, l: l, consumed: make(map[model.NodeIndex]bool, len(p.Nodes))}
}

// Recursive places root with its top-left corner at at and lays out every
// node that feeds into it, transitively. Each node is placed at most once,
// so cycles terminate. Locked nodes keep their position and their feeders
// are laid out from where they are.
func Recursive(p *model.Patch, root model.NodeIndex, at geom.Point, l layout.Constants) Result {
	if root < 0 || root >= len(p.Nodes) {
		return Result{}
	}
	w := newWalker(p, l)
	h := w.place(root, at)
	return Result{Height: h, Placed: w.placed}
}

func (w *walker) place(i model.NodeIndex, at geom.Point) float64 {
	w.consumed[i] = true
	w.placed = append(w.placed, i)
	w.p.SetPosition(i, at)
	at = w.p.Nodes[i].Position // locked nodes stay put and feeders follow them

	var stack float64
	first := true
	for _, wire := range w.p.WiresInto(i) {
		src := wire.Output.Node
		if src < 0 || src >= len(w.p.Nodes) || w.consumed[src] {
			continue
		}
		if !first {
			stack += w.l.NodeSpacing
		}
		first = false
		width := w.p.Nodes[src].Rect(w.l).Size.W
		next := geom.Pt(at.X-width-w.l.NodeSpacing, at.Y+stack)
		stack += w.place(src, next)
	}
	return max(stack, w.p.Nodes[i].Rect(w.l).Size.H)
}

// Stacked places the given columns left to right starting at at, and the
// nodes of each column top to bottom. Column width is the widest node in it.
func Stacked(p *model.Patch, columns [][]model.NodeIndex, at geom.Point, l layout.Constants) geom.Rect {
	x := at.X
	var bounds geom.Rect
	for _, col := range columns {
		y := at.Y
		var width float64
		for _, i := range col {
			if i < 0 || i >= len(p.Nodes) {
				continue
			}
			p.SetPosition(i, geom.Pt(x, y))
			r := p.Nodes[i].Rect(l)
			bounds = bounds.Union(r)
			y += r.Size.H + l.NodeSpacing
			width = max(width, r.Size.W)
		}
		x += width + l.NodeSpacing
	}
	return bounds
}

// Columns assigns every node to a column by longest path from the sources,
// so every wire points rightwards. Nodes within a column keep index order.
func Columns(p *model.Patch) ([][]model.NodeIndex, error) {
	order, err := topology.Order(p)
	if err != nil {
		return nil, fmt.Errorf("autolayout: columns: %w", err)
	}
	rank := make([]int, len(p.Nodes))
	deepest := 0
	for _, i := range order {
		for _, w := range p.WiresFrom(i) {
			if to := w.Input.Node; to >= 0 && to < len(rank) && rank[to] < rank[i]+1 {
				rank[to] = rank[i] + 1
				deepest = max(deepest, rank[to])
			}
		}
	}
	if len(p.Nodes) == 0 {
		return nil, nil
	}
	cols := make([][]model.NodeIndex, deepest+1)
	for i, r := range rank {
		cols[r] = append(cols[r], i)
	}
	return cols, nil
}

// Layered lays out the whole patch in Columns, left to right from at. Cyclic
// patches fall back to All.
func Layered(p *model.Patch, at geom.Point, l layout.Constants) geom.Rect {
	cols, err := Columns(p)
	if err != nil {
		All(p, at, l)
		return p.Bounds(l)
	}
	return Stacked(p, cols, at, l)
}

// All lays out the whole patch with Recursive, one tree per sink stacked
// downwards from at, then any node not reached from a sink (cycles with no
// exit). Sinks sit in the column at at.X; their feeders extend to the left.
func All(p *model.Patch, at geom.Point, l layout.Constants) Result {
	w := newWalker(p, l)
	y := at.Y
	roots := append(topology.Sinks(p), indices(len(p.Nodes))...)
	first := true
	for _, r := range roots {
		if w.consumed[r] {
			continue
		}
		if !first {
			y += l.NodeSpacing
		}
		first = false
		y += w.place(r, geom.Pt(at.X, y))
	}
	return Result{Height: y - at.Y, Placed: w.placed}
}

func indices(n int) []model.NodeIndex {
	out := make([]model.NodeIndex, n)
	for i := range out {
		out[i] = i
	}
	return out
}
