package main

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/model"
)

const mixerYAML = `
nodes:
  - {name: osc, outputs: [out]}
  - {name: fx, inputs: [in], outputs: [out]}
  - {name: mixer, inputs: [a, b]}
  - {name: lfo, outputs: [out], at: [-5, 7], locked: true}
wires:
  - {from: osc.out, to: fx.in}
  - {from: fx.out, to: mixer.a}
  - {from: lfo.out, to: mixer.b}
`

func TestDecodePatch(t *testing.T) {
	p, err := decodePatch([]byte(mixerYAML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(p.Nodes) != 4 || p.Wires.Len() != 3 {
		t.Fatalf("nodes=%d wires=%d", len(p.Nodes), p.Wires.Len())
	}
	lfo := p.Nodes[3]
	if lfo.Position != geom.Pt(-5, 7) || !lfo.Locked {
		t.Fatalf("lfo=%+v", lfo)
	}
	want := model.NewWire(model.OutputID{Node: 3}, model.InputID{Node: 2, Port: 1})
	if !p.Wires.Contains(want) {
		t.Fatalf("missing %v in %v", want, p.Wires.Sorted())
	}
}

func TestEncodeDecodeKeepsPatch(t *testing.T) {
	p, err := decodePatch([]byte(mixerYAML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, err := encodePatch(p)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := decodePatch(data)
	if err != nil {
		t.Fatalf("decode again: %v\n%s", err, data)
	}
	if !p.Equal(back) {
		t.Fatalf("patch changed:\n%s", data)
	}
}

func TestDecodePatchErrors(t *testing.T) {
	tests := map[string]string{
		"no name":      "nodes: [{outputs: [out]}]",
		"duplicate":    "nodes: [{name: a}, {name: a}]",
		"bad at":       "nodes: [{name: a, at: [1]}]",
		"unknown node": "nodes: [{name: a, outputs: [o]}]\nwires: [{from: a.o, to: b.i}]",
		"unknown port": "nodes: [{name: a, outputs: [o]}, {name: b, inputs: [i]}]\nwires: [{from: a.x, to: b.i}]",
		"no port":      "nodes: [{name: a, outputs: [o]}]\nwires: [{from: a, to: a.i}]",
		"not yaml":     "nodes: [",
	}
	for name, in := range tests {
		if _, err := decodePatch([]byte(in)); !errors.Is(err, ErrPatchFile) {
			t.Errorf("%s: err=%v want ErrPatchFile", name, err)
		}
	}
}

func TestNodeRef(t *testing.T) {
	p, _ := decodePatch([]byte(mixerYAML))
	got := []model.NodeIndex{}
	for _, ref := range []string{"osc", "mixer", "3"} {
		i, err := nodeRef(p, ref)
		if err != nil {
			t.Fatalf("nodeRef(%q): %v", ref, err)
		}
		got = append(got, i)
	}
	if !reflect.DeepEqual(got, []model.NodeIndex{0, 2, 3}) {
		t.Fatalf("got %v", got)
	}
	for _, ref := range []string{"nope", "4", "-1"} {
		if _, err := nodeRef(p, ref); err == nil {
			t.Errorf("nodeRef(%q) resolved", ref)
		}
	}
}
