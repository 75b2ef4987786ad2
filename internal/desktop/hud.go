package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/centerfire/internal/loop"
)

var (
	colorText      = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colorTitle     = color.RGBA{R: 255, G: 210, B: 70, A: 255}
	colorPanel     = color.RGBA{R: 16, G: 16, B: 28, A: 220}
	colorBorder    = color.RGBA{R: 120, G: 120, B: 160, A: 255}
	colorButton    = color.RGBA{R: 60, G: 60, B: 110, A: 255}
	colorButtonTxt = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	panelWidth  = 300
	panelHeight = 150
	lineHeight  = 20
)

// modal is the content of the dialog shown between rounds.
type modal struct {
	title  string
	detail string
	button string
}

// modalFor returns the dialog for a paused state, or false while playing.
func modalFor(g *loop.Game) (modal, bool) {
	switch g.State() {
	case loop.GameStateInit:
		return modal{
			title:  "CENTERFIRE",
			detail: "Click to shoot. Hold the center.",
			button: "Start",
		}, true
	case loop.GameStateLost:
		return modal{
			title:  "GAME OVER",
			detail: fmt.Sprintf("Score %d, level %d of %d", g.Score(), g.Level(), g.MaxLevel()),
			button: "Restart",
		}, true
	case loop.GameStateNext:
		return modal{
			title:  fmt.Sprintf("LEVEL %d CLEARED", g.Level()-1),
			detail: fmt.Sprintf("Score %d", g.Score()),
			button: fmt.Sprintf("Level %d", g.Level()),
		}, true
	case loop.GameStateWin:
		return modal{
			title:  "YOU WIN",
			detail: fmt.Sprintf("Final score %d", g.Score()),
			button: "Play again",
		}, true
	}
	return modal{}, false
}

func (a *App) drawUI(screen *ebiten.Image) {
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())

	if a.game.State() != loop.GameStateInit {
		a.drawText(screen, fmt.Sprintf("Score: %d", a.game.Score()), 10, 8, text.AlignStart, colorText)
		a.drawText(screen, fmt.Sprintf("Level: %d/%d", a.game.Level(), a.game.MaxLevel()), w-10, 8, text.AlignEnd, colorText)
	}

	m, ok := modalFor(a.game)
	if !ok {
		return
	}

	x := float32(w-panelWidth) / 2
	y := float32(h-panelHeight) / 2
	vector.DrawFilledRect(screen, x, y, panelWidth, panelHeight, colorPanel, true)
	vector.StrokeRect(screen, x, y, panelWidth, panelHeight, 2, colorBorder, true)

	cx := w / 2
	top := float64(y) + 18
	a.drawText(screen, m.title, cx, top, text.AlignCenter, colorTitle)
	a.drawText(screen, m.detail, cx, top+2*lineHeight, text.AlignCenter, colorText)

	bw, bh := float32(120), float32(28)
	bx := float32(cx) - bw/2
	by := y + panelHeight - bh - 16
	vector.DrawFilledRect(screen, bx, by, bw, bh, colorButton, true)
	a.drawText(screen, m.button, cx, float64(by)+7, text.AlignCenter, colorButtonTxt)
}

func (a *App) drawText(dst *ebiten.Image, s string, x, y float64, align text.Align, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = align
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, a.face, op)
}
