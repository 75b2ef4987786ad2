package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Click is a left mouse button press at a 1-based terminal position.
type Click struct {
	Col, Row int
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Space   bool
	Enter   bool
	Escape  bool
	Clicks  []Click // Presses received since the previous frame, oldest first
	Pressed []byte  // Raw bytes received since the previous frame
	Closed  bool    // The underlying reader reached EOF or failed
}

// Active reports whether the user did anything this frame.
func (in Input) Active() bool {
	return len(in.Pressed) > 0
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	space  time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state between frames.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried into the next frame
	closed  bool
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Keys stay pressed for a short hold window so a frame does not miss them;
// mouse clicks are reported exactly once.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.parse(buf, time.Now())
	in.Closed = s.closed
	return in
}

// ResetKeyInput forgets held keys so one press does not trigger two actions.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// parse decodes buf into key state and clicks. An escape sequence cut off at
// the end of buf is kept for the next call.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			end := csiEnd(buf, i+2)
			if end < 0 {
				s.pending = append(s.pending, buf[i:]...)
				buf = buf[:i]
				break
			}
			if c, ok := parseSGRMouse(buf[i+2 : end+1]); ok {
				in.Clicks = append(in.Clicks, c)
			}
			i = end
			continue
		}

		applyByteToState(&s.state, b, now)
	}

	in.Quit = now.Sub(s.state.quit) < keyHoldDuration
	in.Space = now.Sub(s.state.space) < keyHoldDuration
	in.Enter = now.Sub(s.state.enter) < keyHoldDuration
	in.Escape = now.Sub(s.state.escape) < keyHoldDuration
	in.Pressed = buf
	return in
}

// csiEnd returns the index of the final byte of a CSI sequence whose
// parameters start at from, or -1 if the sequence is incomplete.
func csiEnd(buf []byte, from int) int {
	for j := from; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return j
		}
	}
	return -1
}

// parseSGRMouse decodes "<b;x;yM" (the part after ESC [) into a left-button press.
func parseSGRMouse(seq []byte) (Click, bool) {
	if len(seq) < 6 || seq[0] != '<' || seq[len(seq)-1] != 'M' {
		return Click{}, false
	}

	var fields [3]int
	n := 0
	start := 1
	for j := 1; j < len(seq); j++ {
		if seq[j] != ';' && seq[j] != 'M' {
			continue
		}
		if n == len(fields) {
			return Click{}, false
		}
		v, err := strconv.Atoi(string(seq[start:j]))
		if err != nil {
			return Click{}, false
		}
		fields[n] = v
		n++
		start = j + 1
	}
	if n != len(fields) {
		return Click{}, false
	}

	button := fields[0]
	// Low bits select the button; 32 marks motion and 64 marks the wheel.
	if button&3 != 0 || button&(32|64) != 0 {
		return Click{}, false
	}
	return Click{Col: fields[1], Row: fields[2]}, true
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}
