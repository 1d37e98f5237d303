package ui

import "github.com/hajimehoshi/ebiten/v2"

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyPressed         = ebiten.IsKeyPressed
	wheel                = ebiten.Wheel
	appendTouchIDs       = ebiten.AppendTouchIDs
	touchPosition        = ebiten.TouchPosition
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
	wh func() (float64, float64),
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyPressed
	oldWheel := wheel
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyPressed = key
	wheel = wh
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyPressed = oldKey
		wheel = oldWheel
	}
}

// SetTouchesForTest makes the given points the active touches, keyed by
// their slice index, until the returned function is called.
func SetTouchesForTest(points func() [][2]int) func() {
	oldIDs := appendTouchIDs
	oldPos := touchPosition
	appendTouchIDs = func(ids []ebiten.TouchID) []ebiten.TouchID {
		for i := range points() {
			ids = append(ids, ebiten.TouchID(i))
		}
		return ids
	}
	touchPosition = func(id ebiten.TouchID) (int, int) {
		ps := points()
		if int(id) < 0 || int(id) >= len(ps) {
			return 0, 0
		}
		return ps[id][0], ps[id][1]
	}
	return func() {
		appendTouchIDs = oldIDs
		touchPosition = oldPos
	}
}
