package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/nodeflow/core/view"
)

// GeoM returns the graph-to-screen matrix of t for use in DrawImageOptions,
// so drawings line up exactly with hit testing.
func GeoM(t *view.Transform) ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(t.Pan.W, t.Pan.H)
	m.Scale(t.Zoom, t.Zoom)
	return m
}

// GeoMRounded returns a matrix like GeoM but rounds the translation
// to integer pixels. This keeps grid lines and nodes aligned when
// the view moves with fractional offsets.
func GeoMRounded(t *view.Transform) ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(t.Zoom, t.Zoom)
	m.Translate(math.Round(t.Pan.W*t.Zoom), math.Round(t.Pan.H*t.Zoom))
	return m
}
