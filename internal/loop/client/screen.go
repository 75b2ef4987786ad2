package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/centerfire/internal/draw"
	"github.com/tomz197/centerfire/internal/loop"
	"github.com/tomz197/centerfire/internal/loop/config"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.game.State() != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString(draw.SeqClear)
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.game.State()
		c.state.wasInactive = c.state.isInactive
	}

	c.game.Draw(c.canvas)
	c.effects.Draw(c.canvas)

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawPopups()
	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	if c.game.State() != loop.GameStateInit {
		c.drawHUD(termWidth)
	}

	switch c.game.State() {
	case loop.GameStateInit:
		c.drawStartScreen(centerX, centerY)
	case loop.GameStateLost:
		c.drawLostScreen(centerX, centerY)
	case loop.GameStateNext:
		c.drawNextScreen(centerX, centerY)
	case loop.GameStateWin:
		c.drawWinScreen(centerX, centerY)
	}
}

// centered writes s so it is horizontally centered on centerX.
func (c *Client) centered(centerX, row int, s string) {
	c.chunkWriter.WriteAt(centerX-len(s)/2, row, s)
}

// drawArt writes a block of lines centered on centerX starting at row.
func (c *Client) drawArt(centerX, row int, art []string) {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		c.chunkWriter.WriteAt(centerX-width/2, row+i, line)
	}
}

// blinkPrompt draws prompt during the visible half of the blink cycle and
// blanks it otherwise, so the text does not linger between frames.
func (c *Client) blinkPrompt(centerX, row int, prompt string) {
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = strings.Repeat(" ", len(prompt))
	}
	c.centered(centerX, row, prompt)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, "INACTIVITY WARNING")

	remaining := max(int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()), 0)
	c.centered(centerX, centerY, fmt.Sprintf("You will be disconnected in %3d seconds.", remaining))
	c.centered(centerX, centerY+2, "Press any key to continue")
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___ ___ _  _ _____ ___ ___ ___ ___ ___  `,
		` / __| __| \| |_   _| __| _ \ __|_ _| _ \ `,
		`| (__| _|| .  | | | | _||   / _| | ||   / `,
		` \___|___|_|\_| |_| |___|_|_\_| |___|_|_\ `,
	}

	titleStartY := centerY - 7
	c.drawArt(centerX, titleStartY, titleArt)

	c.centered(centerX, titleStartY+len(titleArt)+1, "~ Hold the center ~")

	controlsY := titleStartY + len(titleArt) + 3
	c.centered(centerX, controlsY, "Controls")
	controlLines := []string{
		"Click . . . . . . Shoot",
		"SPACE / Enter  .  Start",
		"ESC  . . . . . . . Menu",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.centered(centerX, controlsY+1+i, line)
	}

	c.blinkPrompt(centerX, controlsY+len(controlLines)+2, ">>  Press SPACE to Start  <<")
}

// drawHUD draws the score and level line.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(termWidth int) {
	cw := c.chunkWriter
	cw.WriteAt(2, 1, fmt.Sprintf("Score: %-8d", c.game.Score()))

	levelText := fmt.Sprintf("Level: %d/%d", c.game.Level(), c.game.MaxLevel())
	cw.WriteAt(termWidth-len(levelText)-1, 1, levelText)
}

// drawPopups draws floating score labels above hit enemies. The cells are
// marked dirty so the canvas repaints them once the label moves on.
func (c *Client) drawPopups() {
	if !c.game.State().Playing() {
		return
	}
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()

	for _, p := range c.state.popups {
		col, row := c.canvas.LogicalToTerminal(p.x, p.y)
		col -= len(p.text) / 2
		if row < 2 || row > termHeight || col < 1 || col+len(p.text) > termWidth {
			continue
		}
		c.chunkWriter.WriteAt(col, row, draw.ColorYellow+p.text+draw.ColorReset)
		c.canvas.MarkTextDirty(col, row, len(p.text))
	}
}

// drawLostScreen draws the game over screen.
func (c *Client) drawLostScreen(centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	titleStartY := centerY - 5
	c.drawArt(centerX, titleStartY, titleArt)

	c.centered(centerX, titleStartY+len(titleArt)+1, fmt.Sprintf("Score: %d", c.game.Score()))
	c.centered(centerX, titleStartY+len(titleArt)+2, fmt.Sprintf("Reached level %d of %d", c.game.Level(), c.game.MaxLevel()))
	c.blinkPrompt(centerX, titleStartY+len(titleArt)+4, ">>  Press SPACE to Restart  <<")
}

// drawNextScreen draws the level cleared screen.
func (c *Client) drawNextScreen(centerX, centerY int) {
	title := fmt.Sprintf("LEVEL %d CLEARED", c.game.Level()-1)
	c.chunkWriter.WriteAt(centerX-len(title)/2, centerY-2, draw.ColorGreen+title+draw.ColorReset)
	c.centered(centerX, centerY, fmt.Sprintf("Score: %d", c.game.Score()))
	c.blinkPrompt(centerX, centerY+2, fmt.Sprintf(">>  Press SPACE for level %d  <<", c.game.Level()))
}

// drawWinScreen draws the final victory screen.
func (c *Client) drawWinScreen(centerX, centerY int) {
	titleArt := []string{
		` __   _____  _   _  __      _____ _  _ `,
		` \ \ / / _ \| | | | \ \    / /_ _| \| |`,
		`  \ V / (_) | |_| |  \ \/\/ / | || .  |`,
		`   |_| \___/ \___/    \_/\_/ |___|_|\_|`,
	}
	titleStartY := centerY - 5
	c.drawArt(centerX, titleStartY, titleArt)

	c.centered(centerX, titleStartY+len(titleArt)+1, fmt.Sprintf("Final score: %d", c.game.Score()))
	c.blinkPrompt(centerX, titleStartY+len(titleArt)+3, ">>  Press SPACE to Play Again  <<")
}
