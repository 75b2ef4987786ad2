package draw

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
)

// cell is the pair of sub-pixels rendered by one terminal character.
type cell struct {
	top, bottom color.RGBA
}

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Game objects draw in logical coordinates which are scaled to terminal pixels.
// Render only emits cells that changed since the previous frame.
type Canvas struct {
	termWidth      int          // Actual terminal columns
	termHeight     int          // Actual terminal rows
	subPixelHeight int          // termHeight * 2
	pixels         []color.RGBA // Flat slice: [y * termWidth + x], premultiplied; A == 0 is empty

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	last        []cell // Cells as they were last written to the terminal
	dirty       []bool // Cells overwritten by text since the last render
	forceRedraw bool

	renderBuf strings.Builder
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]color.RGBA, subPixelHeight*termWidth)
		c.last = make([]cell, termWidth*termHeight)
		c.dirty = make([]bool, termWidth*termHeight)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.forceRedraw = true
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Width returns the logical width.
func (c *Canvas) Width() int {
	return int(c.logicalWidth)
}

// Height returns the logical height.
func (c *Canvas) Height() int {
	return int(c.logicalHeight)
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render write every cell, e.g. after the terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.dirty[r*c.termWidth+x] = true
		}
	}
}

// blendPixel composites a premultiplied colour over the pixel at terminal coordinates.
func (c *Canvas) blendPixel(x, y int, src color.RGBA) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	i := y*c.termWidth + x
	if src.A == 0xff {
		c.pixels[i] = src
		return
	}
	dst := c.pixels[i]
	inv := uint32(0xff - src.A)
	c.pixels[i] = color.RGBA{
		R: over(src.R, dst.R, inv),
		G: over(src.G, dst.G, inv),
		B: over(src.B, dst.B, inv),
		A: over(src.A, dst.A, inv),
	}
}

func over(src, dst uint8, inv uint32) uint8 {
	return uint8(min(uint32(src)+uint32(dst)*inv/0xff, 0xff))
}

// DrawCircle fills a circle given in logical coordinates.
// Circles smaller than a pixel still light the pixel under their center.
func (c *Canvas) DrawCircle(x, y, r float64, col color.Color) {
	if r <= 0 || col == nil {
		return
	}
	src := color.RGBAModel.Convert(col).(color.RGBA)
	if src.A == 0 {
		return
	}

	cx, cy := x*c.scaleX, y*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY

	x0 := max(int(math.Floor(cx-rx)), 0)
	x1 := min(int(math.Ceil(cx+rx)), c.termWidth-1)
	y0 := max(int(math.Floor(cy-ry)), 0)
	y1 := min(int(math.Ceil(cy+ry)), c.subPixelHeight-1)

	drawn := false
	for py := y0; py <= y1; py++ {
		dy := (float64(py) + 0.5 - cy) / ry
		for px := x0; px <= x1; px++ {
			dx := (float64(px) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				c.blendPixel(px, py, src)
				drawn = true
			}
		}
	}
	if !drawn {
		c.blendPixel(int(math.Floor(cx)), int(math.Floor(cy)), src)
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs changed cells to the writer using truecolor half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	force := c.forceRedraw
	c.forceRedraw = false

	var style cell
	styled := false
	nextCol, nextRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			i := row*c.termWidth + col
			if !force && !c.dirty[i] && c.last[i] == cur {
				continue
			}
			c.last[i] = cur
			c.dirty[i] = false

			if col != nextCol || row != nextRow {
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			}
			if !styled || style != cur {
				writeStyle(&c.renderBuf, cur)
				style = cur
				styled = true
			}
			c.renderBuf.WriteRune(cellRune(cur))
			nextCol, nextRow = col+1, row
		}
	}
	if styled {
		c.renderBuf.WriteString(ColorReset)
	}

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// cellRune picks the glyph for a cell; colours come from writeStyle.
func cellRune(c cell) rune {
	top, bottom := c.top.A != 0, c.bottom.A != 0
	switch {
	case top && bottom && c.top == c.bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	default:
		return BlockEmpty
	}
}

// writeStyle emits the SGR sequence matching cellRune: the upper half is the
// foreground, a differing lower half is the background.
func writeStyle(b *strings.Builder, c cell) {
	top, bottom := c.top.A != 0, c.bottom.A != 0
	b.WriteString("\033[0")
	switch {
	case top && bottom && c.top == c.bottom:
		writeRGB(b, 38, c.top)
	case top && bottom:
		writeRGB(b, 38, c.top)
		writeRGB(b, 48, c.bottom)
	case top:
		writeRGB(b, 38, c.top)
	case bottom:
		writeRGB(b, 38, c.bottom)
	}
	b.WriteByte('m')
}

func writeRGB(b *strings.Builder, layer int, c color.RGBA) {
	fmt.Fprintf(b, ";%d;2;%d;%d;%d", layer, c.R, c.G, c.B)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.Grow((c.termWidth+2)*2 + c.termHeight*2*12)

	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based absolute terminal position, as reported
// by mouse events, to logical coordinates at the center of that cell.
// ok is false when the position lies outside the render area.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	cx := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	if cx < 0 || cx >= c.termWidth || cy < 0 || cy >= c.termHeight {
		return 0, 0, false
	}
	px := float64(cx) + 0.5
	py := float64(cy)*2 + 1
	return px / c.scaleX, py / c.scaleY, true
}
