package ui

import (
	"math"
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/nodeflow/core/editor"
	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/layout"
	"github.com/ingyamilmolinar/nodeflow/core/model"
	"github.com/ingyamilmolinar/nodeflow/core/view"
)

// input is one frame of fake device state.
type input struct {
	x, y    int
	buttons []ebiten.MouseButton
	keys    []ebiten.Key
	wheelY  float64
	touches [][2]int
}

// fakeInput routes every input function to *cur until restored.
func fakeInput(cur *input) func() {
	restoreMouse := SetInputForTest(
		func() (int, int) { return cur.x, cur.y },
		func(b ebiten.MouseButton) bool {
			for _, p := range cur.buttons {
				if p == b {
					return true
				}
			}
			return false
		},
		func(k ebiten.Key) bool {
			for _, p := range cur.keys {
				if p == k {
					return true
				}
			}
			return false
		},
		func() (float64, float64) { return 0, cur.wheelY },
	)
	restoreTouch := SetTouchesForTest(func() [][2]int { return cur.touches })
	return func() {
		restoreTouch()
		restoreMouse()
	}
}

func run(t *testing.T, w *Workspace, frames ...input) {
	t.Helper()
	var cur input
	defer fakeInput(&cur)()
	for _, f := range frames {
		cur = f
		if err := w.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
}

func patch() *model.Patch {
	return model.New([]model.Node{
		model.NewNode("osc", nil, []string{"out"}, model.At(0, 0)),
		model.NewNode("fx", []string{"in"}, []string{"out"}, model.At(400, 0)),
	})
}

func newWorkspace(p *model.Patch) *Workspace {
	return NewWorkspace(editor.New(p, layout.Default()), nil)
}

func TestWheelZoomAnchorsCursor(t *testing.T) {
	w := newWorkspace(patch())
	tr := w.Editor().Transform()
	tr.ApplyZoom(2, geom.Pt(0, 0))
	tr.ApplyPan(10, 20)

	cursor := geom.Pt(100, 50)
	local := tr.ScreenToGraph(cursor)
	run(t, w, input{x: 100, y: 50, wheelY: 1})

	if got := tr.GraphToScreen(local); got.Distance(cursor) > 1e-9 {
		t.Fatalf("cursor moved after zoom: got %v want %v", got, cursor)
	}
	expected := 2 * math.Pow(zoomFactor, DefaultWheelSensitivity)
	if math.Abs(tr.Zoom-expected) > 1e-9 {
		t.Fatalf("zoom=%f want %f", tr.Zoom, expected)
	}
}

func TestRightDragPans(t *testing.T) {
	w := newWorkspace(patch())
	right := []ebiten.MouseButton{ebiten.MouseButtonRight}
	run(t, w,
		input{x: 10, y: 10, buttons: right},
		input{x: 30, y: 25, buttons: right},
		input{x: 30, y: 25},
		input{x: 90, y: 90}, // released: no pan
	)
	if got := w.Editor().Transform().Pan; got != (geom.Size{W: 20, H: 15}) {
		t.Fatalf("pan=%v want {20 15}", got)
	}
}

func TestLeftDragDrawsWire(t *testing.T) {
	p := patch()
	w := newWorkspace(p)
	left := []ebiten.MouseButton{ebiten.MouseButtonLeft}
	run(t, w,
		input{x: 180, y: 60, buttons: left},
		input{x: 300, y: 60, buttons: left},
		input{x: 420, y: 60, buttons: left},
		input{x: 420, y: 60},
	)
	want := model.NewWire(model.OutputID{Node: 0}, model.InputID{Node: 1})
	if !p.Wires.Contains(want) {
		t.Fatalf("wires=%v", p.Wires.Sorted())
	}
}

func TestShiftClickAndDelete(t *testing.T) {
	p := patch()
	w := newWorkspace(p)
	left := []ebiten.MouseButton{ebiten.MouseButtonLeft}
	shift := []ebiten.Key{ebiten.KeyShiftLeft}
	run(t, w,
		input{x: 100, y: 20, buttons: left},
		input{x: 100, y: 20},
		input{x: 500, y: 20, buttons: left, keys: shift},
		input{x: 500, y: 20, keys: shift},
	)
	if got := w.Editor().Selection(); !reflect.DeepEqual(got, []model.NodeIndex{0, 1}) {
		t.Fatalf("selection=%v", got)
	}
	del := []ebiten.Key{ebiten.KeyDelete}
	run(t, w, input{keys: del}, input{keys: del}, input{})
	if len(p.Nodes) != 0 {
		t.Fatalf("nodes left: %d", len(p.Nodes))
	}
}

func TestPinchZoomsAtCentroid(t *testing.T) {
	w := newWorkspace(patch())
	run(t, w,
		input{touches: [][2]int{{100, 100}, {200, 100}}},
		input{touches: [][2]int{{50, 100}, {250, 100}}},
		input{},
	)
	tr := w.Editor().Transform()
	if tr.Zoom != 2 {
		t.Fatalf("zoom=%f want 2", tr.Zoom)
	}
	if tr.Pan != (geom.Size{W: -75, H: -50}) {
		t.Fatalf("pan=%v want {-75 -50}", tr.Pan)
	}
}

func TestTwoFingerPan(t *testing.T) {
	w := newWorkspace(patch())
	run(t, w,
		input{touches: [][2]int{{100, 100}, {200, 100}}},
		input{touches: [][2]int{{110, 120}, {210, 120}}},
		input{touches: [][2]int{{130, 120}, {230, 120}}},
	)
	if got := w.Editor().Transform().Pan; got != (geom.Size{W: 30, H: 20}) {
		t.Fatalf("pan=%v want {30 20}", got)
	}
}

func TestGeoMMatchesTransform(t *testing.T) {
	tr := view.New(view.WithZoom(2.5), view.WithPan(geom.Size{W: -12, H: 7}))
	m := GeoM(tr)
	for _, p := range []geom.Point{{}, {X: 10, Y: -4}, {X: 300, Y: 120}} {
		x, y := m.Apply(p.X, p.Y)
		want := tr.GraphToScreen(p)
		if math.Abs(x-want.X) > 1e-9 || math.Abs(y-want.Y) > 1e-9 {
			t.Fatalf("GeoM(%v)=(%f,%f) want %v", p, x, y, want)
		}
	}
}

func TestGridLines(t *testing.T) {
	g := geom.NewGrid(20)
	xs, ys := GridLines(g, view.New(), 40, 40)
	if !reflect.DeepEqual(xs, []float64{0, 20, 40}) || !reflect.DeepEqual(ys, []float64{0, 20, 40}) {
		t.Fatalf("xs=%v ys=%v", xs, ys)
	}
	for _, z := range []float64{0.5, 0.75, 1.0, 1.25, 1.7} {
		if got, want := StepPixels(g, z), int(20*z+0.5); got != want {
			t.Fatalf("StepPixels(%f)=%d want %d", z, got, want)
		}
	}
	if xs, _ := GridLines(geom.Grid{}, view.New(), 40, 40); xs != nil {
		t.Fatal("zero step produced lines")
	}
}
