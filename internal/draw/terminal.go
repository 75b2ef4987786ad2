package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Escape sequences for whole-screen control.
const (
	SeqClear        = "\033[H\033[2J"
	seqHideCursor   = "\033[?25l"
	seqShowCursor   = "\033[?25h"
	seqMouseOn      = "\033[?1000h\033[?1006h" // Button presses, SGR encoding
	seqMouseOff     = "\033[?1006l\033[?1000l"
	writerBufferLen = 8192
)

// ChunkWriter collects one frame of terminal output and sends it in chunks of
// at most maxChunkSize bytes, which keeps SSH packets small. Positions passed
// to MoveCursor and WriteAt are 1-based canvas coordinates; the canvas offset
// is added for them.
type ChunkWriter struct {
	frame   strings.Builder
	out     *bufio.Writer
	scratch [20]byte
	offCol  int
	offRow  int
}

// NewChunkWriter creates a ChunkWriter sending to w, shifted by the given offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	cw := &ChunkWriter{out: bufio.NewWriterSize(w, writerBufferLen)}
	cw.SetOffset(offsetCol, offsetRow)
	return cw
}

// SetOffset changes the canvas offset, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// MoveCursor queues a cursor move to (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	b := append(cw.scratch[:0], '\033', '[')
	b = strconv.AppendInt(b, int64(row+cw.offRow), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col+cw.offCol), 10)
	b = append(b, 'H')
	cw.frame.Write(b)
}

// Write queues raw bytes. Canvas.Render writes through it.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

// WriteString queues s at the current cursor position.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame.WriteString(s)
}

// WriteAt queues s starting at (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.frame.WriteString(s)
}

// Len returns the number of queued bytes.
func (cw *ChunkWriter) Len() int {
	return cw.frame.Len()
}

// Flush sends the queued frame and empties the queue.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	for start := 0; start < len(data); start += maxChunkSize {
		end := min(start+maxChunkSize, len(data))
		if _, err := cw.out.WriteString(data[start:end]); err != nil {
			return err
		}
	}
	return cw.out.Flush()
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc reports the terminal size in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// EnterGameScreen hides the cursor, turns on mouse reporting and clears the screen.
func EnterGameScreen(w io.Writer) {
	io.WriteString(w, seqHideCursor+seqMouseOn+SeqClear)
}

// LeaveGameScreen undoes EnterGameScreen and leaves a clear screen behind.
func LeaveGameScreen(w io.Writer) {
	io.WriteString(w, SeqClear+seqMouseOff+seqShowCursor)
}
