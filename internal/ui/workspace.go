package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/nodeflow/core/editor"
	"github.com/ingyamilmolinar/nodeflow/core/geom"
	"github.com/ingyamilmolinar/nodeflow/core/view"
	"github.com/ingyamilmolinar/nodeflow/internal/log"
)

const (
	zoomFactor              = 1.05
	DefaultWheelSensitivity = 0.1
)

// Workspace polls ebiten input once per frame and routes it: the wheel zooms
// at the cursor, right or middle drag pans, two fingers pan and pinch, and
// the left button drives the editor.
type Workspace struct {
	editor *editor.Editor
	logger *log.Logger

	WheelSensitivity float64

	leftPrev   bool
	deletePrev bool
	lastPan    *geom.Point // cursor at the previous frame of a pan drag

	touching  bool
	touch0    geom.Point // centroid when the second finger landed
	spread0   float64    // finger distance at the same moment
	touchPan  view.PanTracker
	touchZoom view.ZoomTracker
}

func NewWorkspace(e *editor.Editor, logger *log.Logger) *Workspace {
	if logger == nil {
		logger = log.Discard()
	}
	return &Workspace{editor: e, logger: logger, WheelSensitivity: DefaultWheelSensitivity}
}

func (w *Workspace) Editor() *editor.Editor { return w.editor }

// Update consumes one frame of input.
func (w *Workspace) Update() error {
	x, y := cursorPosition()
	cursor := geom.Pt(float64(x), float64(y))

	if w.handleTouches() {
		return nil
	}
	w.handleWheel(cursor)
	w.handlePanDrag(cursor)
	w.handlePointer(cursor)
	w.handleKeys()
	return nil
}

func (w *Workspace) handleWheel(cursor geom.Point) {
	_, wheelY := wheel()
	if wheelY == 0 {
		return
	}
	d := view.ZoomDelta{Scale: math.Pow(zoomFactor, wheelY*w.WheelSensitivity), Focal: cursor}
	d.Apply(w.editor)
	w.logger.Debugf("[WORKSPACE] wheel zoom=%.3f at %v", w.editor.Transform().Zoom, cursor)
}

func (w *Workspace) handlePanDrag(cursor geom.Point) {
	if !isMouseButtonPressed(ebiten.MouseButtonRight) && !isMouseButtonPressed(ebiten.MouseButtonMiddle) {
		w.lastPan = nil
		return
	}
	if w.lastPan != nil && cursor != *w.lastPan {
		d := cursor.Sub(*w.lastPan)
		view.PanDelta{DX: d.W, DY: d.H}.Apply(w.editor)
	}
	w.lastPan = &cursor
}

func (w *Workspace) handlePointer(cursor geom.Point) {
	left := isMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case left && !w.leftPrev:
		shift := isKeyPressed(ebiten.KeyShiftLeft) || isKeyPressed(ebiten.KeyShiftRight)
		hit := w.editor.PointerDown(cursor, shift)
		w.logger.Debugf("[WORKSPACE] press %v -> %v", cursor, hit)
	case left:
		w.editor.PointerMove(cursor)
	case w.leftPrev:
		w.editor.PointerUp(cursor)
	}
	w.leftPrev = left
}

func (w *Workspace) handleKeys() {
	if isKeyPressed(ebiten.KeyEscape) {
		w.editor.Cancel()
	}
	del := isKeyPressed(ebiten.KeyDelete) || isKeyPressed(ebiten.KeyBackspace)
	if del && !w.deletePrev {
		w.editor.DeleteSelection()
	}
	w.deletePrev = del
}

// handleTouches reports whether a two-finger gesture owns this frame.
func (w *Workspace) handleTouches() bool {
	ids := appendTouchIDs(nil)
	if len(ids) != 2 {
		if w.touching {
			w.touchPan.End()
			w.touchZoom.End()
			w.touching = false
			w.logger.Debugf("[WORKSPACE] touch gesture end")
		}
		return false
	}
	ax, ay := touchPosition(ids[0])
	bx, by := touchPosition(ids[1])
	a, b := geom.Pt(float64(ax), float64(ay)), geom.Pt(float64(bx), float64(by))
	centroid := geom.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
	spread := a.Distance(b)

	if !w.touching {
		// a pointer drag that was running when the second finger landed is abandoned
		if w.leftPrev {
			w.editor.Cancel()
			w.leftPrev = false
		}
		w.touching = true
		w.touch0, w.spread0 = centroid, spread
		w.logger.Debugf("[WORKSPACE] touch gesture start at %v", centroid)
	}

	moved := centroid.Sub(w.touch0)
	w.touchPan.Update(moved.Point()).Apply(w.editor)
	if w.spread0 > 0 {
		w.touchZoom.Update(spread/w.spread0, centroid).Apply(w.editor)
	}
	return true
}
