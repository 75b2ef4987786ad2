package draw

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

func TestDrawCircleFillsInterior(t *testing.T) {
	// 1:1 scale in both axes: 40 columns x 20 rows = 40x40 pixels.
	c := NewScaledCanvas(40, 20, 40, 40)
	c.DrawCircle(20, 20, 5, red)

	if got := c.pixels[20*40+20]; got != red {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := c.pixels[0]; got.A != 0 {
		t.Errorf("corner pixel = %v, want empty", got)
	}
	if got := c.pixels[20*40+26]; got.A != 0 {
		t.Errorf("pixel outside the radius = %v, want empty", got)
	}
}

func TestDrawCircleTinyStillVisible(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.DrawCircle(55, 55, 0.5, red)

	lit := 0
	for _, p := range c.pixels {
		if p.A != 0 {
			lit++
		}
	}
	if lit != 1 {
		t.Fatalf("%d pixels lit, want 1", lit)
	}
}

func TestDrawCircleClipsOffCanvas(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawCircle(-50, -50, 5, red)
	c.DrawCircle(5, 5, 100, red)
	for i, p := range c.pixels {
		if p != red {
			t.Fatalf("pixel %d = %v, want the covering circle", i, p)
		}
	}
}

func TestBlendTranslucent(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	half := color.RGBA{R: 128, G: 128, B: 128, A: 128}
	c.blendPixel(0, 0, half)
	if got := c.pixels[0]; got != half {
		t.Fatalf("blend over empty = %v, want %v", got, half)
	}
	c.blendPixel(0, 0, red)
	if got := c.pixels[0]; got != red {
		t.Fatalf("opaque blend = %v, want red", got)
	}
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var out bytes.Buffer

	c.Render(&out)
	if out.Len() == 0 {
		t.Fatal("first render wrote nothing")
	}

	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", out.String())
	}

	c.DrawCircle(5, 5, 1, red)
	out.Reset()
	c.Render(&out)
	s := out.String()
	if !strings.Contains(s, "38;2;255;0;0") {
		t.Fatalf("changed frame missing red: %q", s)
	}

	out.Reset()
	c.MarkTextDirty(1, 1, 3)
	c.Render(&out)
	if got := strings.Count(out.String(), string(BlockEmpty)); got != 3 {
		t.Fatalf("dirty render wrote %d blank cells, want 3", got)
	}

	out.Reset()
	c.ForceRedraw()
	c.Render(&out)
	if strings.Count(out.String(), "\033[") < 2 {
		t.Fatal("forced redraw wrote nothing")
	}
}

func TestCellRune(t *testing.T) {
	blue := color.RGBA{B: 255, A: 255}
	tests := []struct {
		name string
		c    cell
		want rune
	}{
		{"empty", cell{}, BlockEmpty},
		{"top", cell{top: red}, BlockUpperHalf},
		{"bottom", cell{bottom: red}, BlockLowerHalf},
		{"same", cell{top: red, bottom: red}, BlockFull},
		{"different", cell{top: red, bottom: blue}, BlockUpperHalf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellRune(tt.c); got != tt.want {
				t.Errorf("cellRune = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTerminalToLogical(t *testing.T) {
	// 120x40 cells over a 480x320 view: 4 logical units per column, 4 per sub-pixel.
	c := NewScaledCanvas(120, 40, 480, 320)
	c.SetOffset(5, 2)

	x, y, ok := c.TerminalToLogical(6, 3)
	if !ok {
		t.Fatal("top-left cell reported outside")
	}
	if x != 2 || y != 4 {
		t.Errorf("top-left cell -> (%f, %f), want (2, 4)", x, y)
	}

	x, y, ok = c.TerminalToLogical(5+61, 2+21)
	if !ok || x != 242 || y != 164 {
		t.Errorf("center cell -> (%f, %f, %v)", x, y, ok)
	}

	for _, pos := range [][2]int{{5, 3}, {6, 2}, {126, 10}, {10, 43}} {
		if _, _, ok := c.TerminalToLogical(pos[0], pos[1]); ok {
			t.Errorf("position %v reported inside", pos)
		}
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(120, 40, 480, 320)
	col, row := c.LogicalToTerminal(240, 160)
	if col != 61 || row != 21 {
		t.Errorf("center -> (%d, %d), want (61, 21)", col, row)
	}
}

func TestResizeKeepsLogicalSize(t *testing.T) {
	c := NewScaledCanvas(120, 40, 480, 320)
	c.Resize(60, 20)
	if c.Width() != 480 || c.Height() != 320 {
		t.Fatalf("logical size = %dx%d", c.Width(), c.Height())
	}
	if len(c.pixels) != 60*40 {
		t.Fatalf("pixel buffer = %d, want %d", len(c.pixels), 60*40)
	}
	c.DrawCircle(240, 160, 10, red)
	if c.pixels[20*60+30] != red {
		t.Fatal("center not drawn after resize")
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := out.String(); got != "\033[3;4Hhi" {
		t.Fatalf("output = %q", got)
	}
	if cw.Len() != 0 {
		t.Fatal("buffer not reset after Flush")
	}
}

func TestChunkWriterLargeFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	payload := strings.Repeat("x", maxChunkSize*3+17)
	cw.WriteString(payload)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if out.String() != payload {
		t.Fatal("chunked flush altered the payload")
	}
}

func TestGameScreenModes(t *testing.T) {
	var out bytes.Buffer
	EnterGameScreen(&out)
	if s := out.String(); !strings.Contains(s, "\033[?25l") || !strings.Contains(s, "\033[?1000h") || !strings.HasSuffix(s, SeqClear) {
		t.Fatalf("enter = %q", s)
	}

	out.Reset()
	LeaveGameScreen(&out)
	if s := out.String(); !strings.HasPrefix(s, SeqClear) || !strings.Contains(s, "\033[?1000l") || !strings.HasSuffix(s, "\033[?25h") {
		t.Fatalf("leave = %q", s)
	}
}
