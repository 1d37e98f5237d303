// Package view owns the pan/zoom state of the workspace and the mapping
// between screen pixels and graph-local coordinates:
//
//	graph  = screen/zoom - pan
//	screen = (graph + pan) * zoom
//
// Pan is kept in unscaled graph units so a pan delta of n screen pixels
// always moves the graph n pixels on screen, whatever the zoom.
package view

import (
	"math"

	"github.com/ingyamilmolinar/nodeflow/core/geom"
)

const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 10.0

	panLimit = 1e6 // keep pan in a sane range for numeric stability
)

// Transform is the workspace camera. The zero value is not usable; build one
// with New so Zoom starts strictly positive.
type Transform struct {
	Pan     geom.Size
	Zoom    float64
	MinZoom float64
	MaxZoom float64
}

type Option func(*Transform)

// WithZoomLimits sets the clamp range. Non-positive or inverted limits are
// ignored.
func WithZoomLimits(minZoom, maxZoom float64) Option {
	return func(t *Transform) {
		if minZoom > 0 && maxZoom >= minZoom {
			t.MinZoom, t.MaxZoom = minZoom, maxZoom
		}
	}
}

func WithZoom(z float64) Option  { return func(t *Transform) { t.Zoom = z } }
func WithPan(p geom.Size) Option { return func(t *Transform) { t.Pan = p } }

func New(opts ...Option) *Transform {
	t := &Transform{Zoom: 1, MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom}
	for _, o := range opts {
		o(t)
	}
	t.Zoom = t.clampZoom(t.Zoom)
	return t
}

// ApplyPan consumes a translation delta in screen pixels.
func (t *Transform) ApplyPan(dx, dy float64) {
	t.Pan.W += dx / t.Zoom
	t.Pan.H += dy / t.Zoom
	t.clampPan()
}

// ApplyZoom multiplies the zoom by scale while keeping the graph point under
// the screen point focal fixed. The new zoom is clamped before the pan is
// solved for, so the anchor holds even at the limits. The pan is then held
// to the same range ApplyPan keeps it in, and the anchor gives way only if
// that range is hit. A non-positive or non-finite scale is ignored.
func (t *Transform) ApplyZoom(scale float64, focal geom.Point) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return
	}
	local := t.ScreenToGraph(focal)
	newZoom := t.clampZoom(scale * t.Zoom)
	t.Pan = focal.Scale(1 / newZoom).Sub(local)
	t.Zoom = newZoom
	t.clampPan()
}

// ScreenToGraph maps a screen pixel to graph-local coordinates.
func (t *Transform) ScreenToGraph(p geom.Point) geom.Point {
	return p.Scale(1 / t.Zoom).SubSize(t.Pan)
}

// GraphToScreen maps graph-local coordinates to a screen pixel.
func (t *Transform) GraphToScreen(p geom.Point) geom.Point {
	return p.Add(t.Pan).Scale(t.Zoom)
}

func (t *Transform) ScreenRect(r geom.Rect) geom.Rect {
	return geom.RectAt(t.GraphToScreen(r.Origin), r.Size.Scale(t.Zoom))
}

func (t *Transform) GraphRect(r geom.Rect) geom.Rect {
	return geom.RectAt(t.ScreenToGraph(r.Origin), r.Size.Div(t.Zoom))
}

// Reset returns to identity: no pan, zoom 1 (clamped).
func (t *Transform) Reset() {
	t.Pan = geom.Size{}
	t.Zoom = t.clampZoom(1)
}

// Fit frames bounds (graph-local) inside a viewport of the given screen size,
// leaving padding pixels on every side.
func (t *Transform) Fit(bounds geom.Rect, viewport geom.Size, padding float64) {
	if bounds.Empty() || viewport.W <= 2*padding || viewport.H <= 2*padding {
		return
	}
	zx := (viewport.W - 2*padding) / bounds.Size.W
	zy := (viewport.H - 2*padding) / bounds.Size.H
	t.Zoom = t.clampZoom(math.Min(zx, zy))
	center := viewport.Point().Scale(0.5)
	t.Pan = center.Scale(1 / t.Zoom).Sub(bounds.Center())
	t.clampPan()
}

func (t *Transform) clampZoom(z float64) float64 {
	if !(z > 0) || math.IsNaN(z) {
		z = 1
	}
	if t.MinZoom > 0 && z < t.MinZoom {
		z = t.MinZoom
	}
	if t.MaxZoom > 0 && z > t.MaxZoom {
		z = t.MaxZoom
	}
	return z
}

func (t *Transform) clampPan() {
	t.Pan.W = math.Max(-panLimit, math.Min(panLimit, t.Pan.W))
	t.Pan.H = math.Max(-panLimit, math.Min(panLimit, t.Pan.H))
}
