package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/centerfire/internal/object"
)

// trailFade darkens the previous frame instead of erasing it, leaving short
// motion trails behind moving circles.
var trailFade = color.RGBA{A: 26}

// surface draws game circles onto an ebiten image.
type surface struct {
	img *ebiten.Image
}

func (s surface) Width() int  { return s.img.Bounds().Dx() }
func (s surface) Height() int { return s.img.Bounds().Dy() }

func (s surface) Clear() {
	vector.DrawFilledRect(s.img, 0, 0, float32(s.Width()), float32(s.Height()), trailFade, false)
}

func (s surface) DrawCircle(x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(max(r, 0.5)), c, true)
}

var _ object.Surface = surface{}
