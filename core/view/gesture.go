package view

import "github.com/ingyamilmolinar/nodeflow/core/geom"

// GestureSink receives the two continuous gesture streams. Deltas are
// relative to the previous update of the same stream and must be delivered
// in temporal order on the thread that owns the sink.
type GestureSink interface {
	ApplyPan(dx, dy float64)
	ApplyZoom(scale float64, focal geom.Point)
}

var _ GestureSink = (*Transform)(nil)

// Delta is one step of either stream.
type Delta interface {
	Apply(GestureSink)
}

// PanDelta is a translation in screen pixels since the last pan update.
type PanDelta struct{ DX, DY float64 }

// ZoomDelta is a scale factor since the last zoom update, anchored at Focal
// (pinch centroid or cursor position, in screen pixels).
type ZoomDelta struct {
	Scale float64
	Focal geom.Point
}

func (d PanDelta) Apply(s GestureSink)  { s.ApplyPan(d.DX, d.DY) }
func (d ZoomDelta) Apply(s GestureSink) { s.ApplyZoom(d.Scale, d.Focal) }

// Feed applies deltas to s in order.
func Feed(s GestureSink, deltas ...Delta) {
	for _, d := range deltas {
		d.Apply(s)
	}
}

// PanTracker turns a cumulative translation (measured from the start of a
// gesture, as most toolkits report it) into per-update deltas.
type PanTracker struct {
	last   geom.Point
	active bool
}

// Update takes the gesture's total translation so far and returns the
// change since the previous call.
func (p *PanTracker) Update(total geom.Point) PanDelta {
	if !p.active {
		p.active = true
		p.last = geom.Point{}
	}
	d := total.Sub(p.last)
	p.last = total
	return PanDelta{DX: d.W, DY: d.H}
}

// End finishes the gesture; the next Update starts from zero.
func (p *PanTracker) End() { p.active = false }

// ZoomTracker turns a cumulative magnification (1 at gesture start) into
// per-update multiplicative deltas.
type ZoomTracker struct {
	last   float64
	active bool
}

// Update takes the gesture's total scale so far and returns the factor since
// the previous call, anchored at focal.
func (z *ZoomTracker) Update(total float64, focal geom.Point) ZoomDelta {
	if !z.active || z.last <= 0 {
		z.active = true
		z.last = 1
	}
	d := ZoomDelta{Scale: 1, Focal: focal}
	if total > 0 {
		d.Scale = total / z.last
		z.last = total
	}
	return d
}

func (z *ZoomTracker) End() { z.active = false }
