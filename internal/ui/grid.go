package ui

import (
	"math"

	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/view"
)

// StepPixels converts a zoom to an integer pixel spacing between grid lines.
// This keeps vertical and horizontal gaps consistent across zoom levels.
func StepPixels(g geom.Grid, zoom float64) int {
	px := int(math.Round(zoom * g.Step))
	if px < 1 {
		return 1
	}
	return px
}

// GridLines returns the screen-space positions of the vertical (xs) and
// horizontal (ys) lines of g visible in a screenW x screenH viewport.
func GridLines(g geom.Grid, t *view.Transform, screenW, screenH int) (xs, ys []float64) {
	if g.Step <= 0 {
		return nil, nil
	}
	stepPx := float64(StepPixels(g, t.Zoom))
	visible := t.GraphRect(geom.R(0, 0, float64(screenW), float64(screenH)))
	origin := t.GraphToScreen(geom.Point{})
	offX, offY := math.Round(origin.X), math.Round(origin.Y)

	lo, hi := visible.Min(), visible.Max()
	startI := int(math.Floor(lo.X / g.Step))
	endI := int(math.Ceil(hi.X / g.Step))
	startJ := int(math.Floor(lo.Y / g.Step))
	endJ := int(math.Ceil(hi.Y / g.Step))

	for i := startI; i <= endI; i++ {
		xs = append(xs, float64(i)*stepPx+offX)
	}
	for j := startJ; j <= endJ; j++ {
		ys = append(ys, float64(j)*stepPx+offY)
	}
	return
}
