package editor

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/layout"
	"github.com/ingyamilmolinar/nodeflow/core/model"
	"github.com/ingyamilmolinar/nodeflow/core/view"
)

// With the default layout every node here is 200x80. Port centres sit at
// y=60; the output centre is x+180 and the input centre x+20.
func chain() *model.Patch {
	return model.New([]model.Node{
		model.NewNode("osc", nil, []string{"out"}, model.At(0, 0)),
		model.NewNode("fx", []string{"in"}, []string{"out"}, model.At(400, 0)),
		model.NewNode("mix", []string{"a"}, nil, model.At(800, 0)),
	})
}

func wire(from, to model.NodeIndex) model.Wire {
	return model.NewWire(model.OutputID{Node: from}, model.InputID{Node: to})
}

type recorder struct{ events []string }

func (r *recorder) observer() Observer {
	return ObserverFuncs{
		OnNodeMoved:   func(i model.NodeIndex, p geom.Point) { r.add("moved %d %v", i, p) },
		OnWireAdded:   func(w model.Wire) { r.add("added %v", w) },
		OnWireRemoved: func(w model.Wire) { r.add("removed %v", w) },
		OnNodeRemoved: func(i model.NodeIndex) { r.add("deleted %d", i) },
	}
}

func (r *recorder) add(format string, v ...any) {
	r.events = append(r.events, fmt.Sprintf(format, v...))
}

func newEditor(p *model.Patch, opts ...Option) (*Editor, *recorder) {
	rec := &recorder{}
	return New(p, layout.Default(), append(opts, WithObserver(rec.observer()))...), rec
}

func TestWireDragConnects(t *testing.T) {
	p := chain()
	e, rec := newEditor(p)

	if hit := e.PointerDown(geom.Pt(180, 60), false); hit != model.OutputHit(0, 0) {
		t.Fatalf("down hit=%v", hit)
	}
	e.PointerMove(geom.Pt(300, 70))
	d := e.DragState()
	if d.Mode != ModeWire || d.From != geom.Pt(180, 60) || d.To != geom.Pt(300, 70) {
		t.Fatalf("drag state=%+v", d)
	}
	e.PointerUp(geom.Pt(420, 60))

	if !p.Wires.Contains(wire(0, 1)) {
		t.Fatalf("wire not added: %v", p.Wires.Sorted())
	}
	if want := []string{"added 0.out0->1.in0"}; !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("events=%v want %v", rec.events, want)
	}
	if e.DragState().Mode != ModeIdle {
		t.Fatal("drag still active after release")
	}
}

func TestWireDragReleasedOnBackgroundCancels(t *testing.T) {
	p := chain()
	e, rec := newEditor(p)
	e.PointerDown(geom.Pt(180, 60), false)
	e.PointerUp(geom.Pt(300, 300))
	if p.Wires.Len() != 0 || len(rec.events) != 0 {
		t.Fatalf("wires=%v events=%v", p.Wires.Sorted(), rec.events)
	}
}

func TestWireDragHonoursZoom(t *testing.T) {
	p := chain()
	e, _ := newEditor(p, WithTransform(view.New(view.WithZoom(2))))
	e.PointerDown(geom.Pt(360, 120), false)
	e.PointerUp(geom.Pt(840, 120))
	if !p.Wires.Contains(wire(0, 1)) {
		t.Fatalf("wires=%v", p.Wires.Sorted())
	}
}

func TestCyclePolicy(t *testing.T) {
	tests := []struct {
		allow bool
		want  bool
	}{
		{allow: false, want: false},
		{allow: true, want: true},
	}
	for _, tt := range tests {
		p := chain()
		p.Connect(wire(0, 1))
		e, _ := newEditor(p, WithAllowCycles(tt.allow))
		// fx output back into fx input
		e.PointerDown(geom.Pt(580, 60), false)
		e.PointerUp(geom.Pt(420, 60))
		if got := p.Wires.Contains(wire(1, 1)); got != tt.want {
			t.Errorf("allow=%v: self wire present=%v", tt.allow, got)
		}
	}
}

func TestRewireFromInput(t *testing.T) {
	p := chain()
	p.Connect(wire(0, 1))
	e, rec := newEditor(p)

	if hit := e.PointerDown(geom.Pt(420, 60), false); hit != model.InputHit(1, 0) {
		t.Fatalf("down hit=%v", hit)
	}
	if d := e.DragState(); d.Mode != ModeWire || d.Output != (model.OutputID{Node: 0}) {
		t.Fatalf("drag state=%+v", d)
	}
	e.PointerUp(geom.Pt(820, 60))

	want := []string{"removed 0.out0->1.in0", "added 0.out0->2.in0"}
	if !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("events=%v want %v", rec.events, want)
	}
	if got := p.Wires.Sorted(); !reflect.DeepEqual(got, []model.Wire{wire(0, 2)}) {
		t.Fatalf("wires=%v", got)
	}
}

func TestRewireDroppedOnBackgroundRemoves(t *testing.T) {
	p := chain()
	p.Connect(wire(0, 1))
	e, _ := newEditor(p)
	e.PointerDown(geom.Pt(420, 60), false)
	e.PointerUp(geom.Pt(420, 400))
	if p.Wires.Len() != 0 {
		t.Fatalf("wires=%v", p.Wires.Sorted())
	}
}

func TestCancelRestoresLiftedWire(t *testing.T) {
	p := chain()
	p.Connect(wire(0, 1))
	e, _ := newEditor(p)
	e.PointerDown(geom.Pt(420, 60), false)
	e.Cancel()
	if !p.Wires.Contains(wire(0, 1)) || e.DragState().Mode != ModeIdle {
		t.Fatalf("wire not restored: %v", p.Wires.Sorted())
	}
}

func TestRejectedRewireRestoresWire(t *testing.T) {
	tests := []struct {
		name string
		drop geom.Point
	}{
		{"back on its own input", geom.Pt(420, 60)},
		{"onto a cycle", geom.Pt(20, 60)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.New([]model.Node{
				model.NewNode("a", []string{"in"}, []string{"out"}, model.At(0, 0)),
				model.NewNode("b", []string{"in"}, []string{"out"}, model.At(400, 0)),
			})
			p.Connect(wire(0, 1))
			p.Connect(wire(1, 0))
			e, rec := newEditor(p)

			e.PointerDown(geom.Pt(420, 60), false)
			e.PointerUp(tt.drop)

			if p.Wires.Len() != 2 || !p.Wires.Contains(wire(0, 1)) || !p.Wires.Contains(wire(1, 0)) {
				t.Fatalf("wires=%v", p.Wires.Sorted())
			}
			want := []string{"removed 0.out0->1.in0", "added 0.out0->1.in0"}
			if !reflect.DeepEqual(rec.events, want) {
				t.Fatalf("events=%v want %v", rec.events, want)
			}
			if e.DragState().Mode != ModeIdle {
				t.Fatal("drag still active after release")
			}
		})
	}
}

func TestUnwiredInputDoesNothing(t *testing.T) {
	e, _ := newEditor(chain())
	e.PointerDown(geom.Pt(420, 60), false)
	if e.DragState().Mode != ModeIdle {
		t.Fatalf("mode=%v", e.DragState().Mode)
	}
}

func TestNodeDrag(t *testing.T) {
	tests := []struct {
		name string
		grid float64
		want geom.Point
	}{
		{"free", 0, geom.Pt(33, 27)},
		{"snapped", 20, geom.Pt(40, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := chain()
			e, rec := newEditor(p, WithGrid(tt.grid))
			if hit := e.PointerDown(geom.Pt(100, 20), false); hit != model.NodeHit(0) {
				t.Fatalf("down hit=%v", hit)
			}
			e.PointerMove(geom.Pt(120, 30))
			e.PointerUp(geom.Pt(133, 47))
			if p.Nodes[0].Position != tt.want {
				t.Fatalf("position=%v want %v", p.Nodes[0].Position, tt.want)
			}
			if len(rec.events) == 0 || rec.events[len(rec.events)-1] != fmt.Sprintf("moved 0 %v", tt.want) {
				t.Fatalf("events=%v", rec.events)
			}
			if !reflect.DeepEqual(e.Selection(), []model.NodeIndex{0}) {
				t.Fatalf("selection=%v", e.Selection())
			}
		})
	}
}

func TestNodeDragMovesWholeSelectionButNotLocked(t *testing.T) {
	p := chain()
	p.Nodes[1].Locked = true
	e, _ := newEditor(p)
	e.Select(0, 1, 2)
	e.PointerDown(geom.Pt(900, 20), false)
	e.PointerUp(geom.Pt(910, 25))

	want := []geom.Point{{X: 10, Y: 5}, {X: 400, Y: 0}, {X: 810, Y: 5}}
	for i, w := range want {
		if p.Nodes[i].Position != w {
			t.Errorf("node %d at %v want %v", i, p.Nodes[i].Position, w)
		}
	}
}

func TestCancelRestoresMovedNodes(t *testing.T) {
	p := chain()
	e, _ := newEditor(p)
	e.PointerDown(geom.Pt(100, 20), false)
	e.PointerMove(geom.Pt(150, 70))
	e.Cancel()
	if p.Nodes[0].Position != (geom.Point{}) {
		t.Fatalf("position=%v", p.Nodes[0].Position)
	}
}

func TestRubberBandSelection(t *testing.T) {
	e, _ := newEditor(chain())

	e.PointerDown(geom.Pt(-50, -50), false)
	if d := e.DragState(); d.Mode != ModeSelectRect {
		t.Fatalf("mode=%v", d.Mode)
	}
	e.PointerMove(geom.Pt(450, 10))
	if r := e.DragState().Rect(); r != geom.R(-50, -50, 500, 60) {
		t.Fatalf("band=%v", r)
	}
	e.PointerUp(geom.Pt(450, 10))
	if got := e.Selection(); !reflect.DeepEqual(got, []model.NodeIndex{0, 1}) {
		t.Fatalf("selection=%v", got)
	}

	// additive click toggles
	e.PointerDown(geom.Pt(900, 20), true)
	e.PointerUp(geom.Pt(900, 20))
	if got := e.Selection(); !reflect.DeepEqual(got, []model.NodeIndex{0, 1, 2}) {
		t.Fatalf("selection=%v", got)
	}
	e.PointerDown(geom.Pt(900, 20), true)
	e.PointerUp(geom.Pt(900, 20))
	if got := e.Selection(); !reflect.DeepEqual(got, []model.NodeIndex{0, 1}) {
		t.Fatalf("selection=%v", got)
	}

	// plain click on background clears
	e.PointerDown(geom.Pt(-50, 500), false)
	e.PointerUp(geom.Pt(-50, 500))
	if got := e.Selection(); len(got) != 0 {
		t.Fatalf("selection=%v", got)
	}
}

func TestDeleteSelection(t *testing.T) {
	p := chain()
	p.Connect(wire(0, 1))
	p.Connect(model.NewWire(model.OutputID{Node: 1}, model.InputID{Node: 2}))
	e, rec := newEditor(p)
	e.Select(1, 7)

	if n := e.DeleteSelection(); n != 1 {
		t.Fatalf("deleted %d", n)
	}
	want := []string{"removed 0.out0->1.in0", "removed 1.out0->2.in0", "deleted 1"}
	if !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("events=%v want %v", rec.events, want)
	}
	if len(p.Nodes) != 2 || p.Nodes[1].Name != "mix" || p.Wires.Len() != 0 {
		t.Fatalf("patch=%+v", p)
	}
	if len(e.Selection()) != 0 {
		t.Fatal("selection survived delete")
	}
}

func TestEditorIsGestureSink(t *testing.T) {
	e, _ := newEditor(chain())
	view.Feed(e, view.ZoomDelta{Scale: 2, Focal: geom.Pt(100, 100)}, view.PanDelta{DX: 20, DY: 0})
	tr := e.Transform()
	if tr.Zoom != 2 || tr.Pan != (geom.Size{W: -40, H: -50}) {
		t.Fatalf("transform=%+v", tr)
	}
}
