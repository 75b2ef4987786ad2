package client

import (
	"strconv"
	"time"

	"github.com/tomz197/centerfire/internal/input"
	"github.com/tomz197/centerfire/internal/loop"
)

// ClientState holds per-session presentation state that is not part of the game itself.
type ClientState struct {
	Input         input.Input
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	prevGameState loop.GameState
	isInactive    bool // Whether the client is in inactive warning state
	wasInactive   bool
	popups        []popup
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:       true,
		prevGameState: -1,
	}
}

// popup is a floating score label shown where an enemy was hit.
type popup struct {
	x, y float64
	text string
	ttl  time.Duration
}

const popupLifetime = 700 * time.Millisecond

// popupHooks records score popups from game events.
type popupHooks struct {
	loop.NopHooks
	state       *ClientState
	damageScore int
	deadScore   int
}

func (h popupHooks) OnEnemyDamaged(ev loop.Event) { h.add(ev, h.damageScore) }
func (h popupHooks) OnEnemyKilled(ev loop.Event)  { h.add(ev, h.deadScore) }

func (h popupHooks) add(ev loop.Event, points int) {
	h.state.popups = append(h.state.popups, popup{
		x:    ev.X,
		y:    ev.Y - ev.Radius,
		text: "+" + strconv.Itoa(points),
		ttl:  popupLifetime,
	})
}

// agePopups drops expired popups and drifts the rest upward.
func (s *ClientState) agePopups(delta time.Duration) {
	kept := s.popups[:0]
	for _, p := range s.popups {
		p.ttl -= delta
		if p.ttl <= 0 {
			continue
		}
		p.y -= 30 * delta.Seconds()
		kept = append(kept, p)
	}
	s.popups = kept
}
