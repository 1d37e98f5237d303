package editor

import (
	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/model"
)

// Observer is told about every change the editor makes to the patch, after
// the change is applied. NodeMoved and WireAdded use indices valid at call
// time. WireRemoved and NodeRemoved carry the indices the wire or node had
// before it was removed. Removing a node shifts every later node down by one,
// and surviving wires are renumbered to match without a separate event.
type Observer interface {
	NodeMoved(i model.NodeIndex, pos geom.Point)
	WireAdded(w model.Wire)
	WireRemoved(w model.Wire)
	NodeRemoved(i model.NodeIndex)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnNodeMoved   func(model.NodeIndex, geom.Point)
	OnWireAdded   func(model.Wire)
	OnWireRemoved func(model.Wire)
	OnNodeRemoved func(model.NodeIndex)
}

var _ Observer = ObserverFuncs{}

func (f ObserverFuncs) NodeMoved(i model.NodeIndex, pos geom.Point) {
	if f.OnNodeMoved != nil {
		f.OnNodeMoved(i, pos)
	}
}

func (f ObserverFuncs) WireAdded(w model.Wire) {
	if f.OnWireAdded != nil {
		f.OnWireAdded(w)
	}
}

func (f ObserverFuncs) WireRemoved(w model.Wire) {
	if f.OnWireRemoved != nil {
		f.OnWireRemoved(w)
	}
}

func (f ObserverFuncs) NodeRemoved(i model.NodeIndex) {
	if f.OnNodeRemoved != nil {
		f.OnNodeRemoved(i)
	}
}
