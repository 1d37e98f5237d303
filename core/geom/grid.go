package geom

import "math"

const DefaultGridStep = 20 // graph-space px between vertices

// Grid snaps graph-space points to a regular lattice. A zero step disables
// snapping.
type Grid struct {
	Step float64
}

func NewGrid(step float64) Grid { return Grid{Step: step} }

// Snap returns the lattice vertex nearest to p.
func (g Grid) Snap(p Point) Point {
	if g.Step <= 0 {
		return p
	}
	return Point{
		X: math.Round(p.X/g.Step) * g.Step,
		Y: math.Round(p.Y/g.Step) * g.Step,
	}
}
