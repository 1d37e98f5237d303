// Package geom provides the small 2D point/size/rect toolkit shared by the
// layout, hit-testing and view packages. All values are plain structs with
// named operations; nothing here allocates.
package geom

import "math"

// Point is a location in some 2D coordinate space (screen or graph-local).
type Point struct{ X, Y float64 }

// Size is a width/height pair. It doubles as a 2D offset (translation).
type Size struct{ W, H float64 }

// Rect is an axis-aligned rectangle given by its minimum corner and size.
type Rect struct {
	Origin Point
	Size   Size
}

func Pt(x, y float64) Point          { return Point{X: x, Y: y} }
func Sz(w, h float64) Size           { return Size{W: w, H: h} }
func R(x, y, w, h float64) Rect      { return Rect{Origin: Point{x, y}, Size: Size{w, h}} }
func RectAt(p Point, s Size) Rect    { return Rect{Origin: p, Size: s} }
func RectOfSize(s Size) Rect         { return Rect{Size: s} }
func (p Point) Size() Size           { return Size{W: p.X, H: p.Y} }
func (s Size) Point() Point          { return Point{X: s.W, Y: s.H} }
func (p Point) Add(s Size) Point     { return Point{X: p.X + s.W, Y: p.Y + s.H} }
func (p Point) SubSize(s Size) Point { return Point{X: p.X - s.W, Y: p.Y - s.H} }
func (p Point) Plus(q Point) Point   { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the offset that moves q onto p.
func (p Point) Sub(q Point) Size { return Size{W: p.X - q.X, H: p.Y - q.Y} }

func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }
func (p Point) Div(f float64) Point   { return Point{X: p.X / f, Y: p.Y / f} }

// Distance is the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

func (s Size) Add(o Size) Size      { return Size{W: s.W + o.W, H: s.H + o.H} }
func (s Size) Sub(o Size) Size      { return Size{W: s.W - o.W, H: s.H - o.H} }
func (s Size) Scale(f float64) Size { return Size{W: s.W * f, H: s.H * f} }
func (s Size) Div(f float64) Size   { return Size{W: s.W / f, H: s.H / f} }
func (s Size) IsZero() bool         { return s.W == 0 && s.H == 0 }

// RectFromPoints returns the normalised rectangle spanning corners a and b,
// whichever way round they are given.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		Origin: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Size:   Size{W: math.Abs(a.X - b.X), H: math.Abs(a.Y - b.Y)},
	}
}

func (r Rect) Min() Point    { return r.Origin }
func (r Rect) Max() Point    { return r.Origin.Add(r.Size) }
func (r Rect) MidX() float64 { return r.Origin.X + r.Size.W/2 }
func (r Rect) MidY() float64 { return r.Origin.Y + r.Size.H/2 }
func (r Rect) Center() Point { return Point{X: r.MidX(), Y: r.MidY()} }

// Empty reports whether r encloses no area.
func (r Rect) Empty() bool { return r.Size.W <= 0 || r.Size.H <= 0 }

// Contains reports whether p lies inside r. The min edges are inclusive and
// the max edges exclusive, so two abutting rects never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.W &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.H
}

// Offset moves r by off.
func (r Rect) Offset(off Size) Rect { return Rect{Origin: r.Origin.Add(off), Size: r.Size} }

// Translate moves a rect expressed relative to some origin into the frame
// whose origin is p.
func (r Rect) Translate(p Point) Rect { return Rect{Origin: p.Plus(r.Origin), Size: r.Size} }

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	rmax, omax := r.Max(), o.Max()
	return r.Origin.X < omax.X && o.Origin.X < rmax.X &&
		r.Origin.Y < omax.Y && o.Origin.Y < rmax.Y
}

// Union returns the smallest rect containing both r and o. An empty operand
// is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	rmax, omax := r.Max(), o.Max()
	minX, minY := math.Min(r.Origin.X, o.Origin.X), math.Min(r.Origin.Y, o.Origin.Y)
	maxX, maxY := math.Max(rmax.X, omax.X), math.Max(rmax.Y, omax.Y)
	return Rect{Origin: Point{minX, minY}, Size: Size{maxX - minX, maxY - minY}}
}

// Scale multiplies both origin and size by f.
func (r Rect) Scale(f float64) Rect {
	return Rect{Origin: r.Origin.Scale(f), Size: r.Size.Scale(f)}
}
