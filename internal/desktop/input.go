package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type point struct {
	x, y float64
}

// frame is one frame of input.
type frame struct {
	presses []point // Pointer presses in layout coordinates
	advance bool
	stop    bool
	quit    bool
}

// readFrame collects edge-triggered input. touchIDs is a reusable buffer.
func readFrame(touchIDs []ebiten.TouchID) (frame, []ebiten.TouchID) {
	var f frame

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		f.presses = append(f.presses, point{float64(x), float64(y)})
	}

	touchIDs = inpututil.AppendJustPressedTouchIDs(touchIDs[:0])
	for _, id := range touchIDs {
		x, y := ebiten.TouchPosition(id)
		f.presses = append(f.presses, point{float64(x), float64(y)})
	}

	f.advance = inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	f.stop = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	f.quit = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	return f, touchIDs
}
