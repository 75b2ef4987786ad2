package draw

import (
	"fmt"
	"image/color"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI styles for text overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorRed        = "\033[91m"
	ColorGreen      = "\033[92m"
	ColorYellow     = "\033[93m"
	ColorBrightCyan = "\033[96m"
)

// FgRGB returns the truecolor foreground sequence for c.
func FgRGB(c color.RGBA) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}
