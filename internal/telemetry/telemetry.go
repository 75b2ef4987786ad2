// Package telemetry batches gameplay counters and reports them periodically.
package telemetry

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/centerfire/internal/loop"
)

// Kind identifies a telemetry event.
type Kind int

const (
	KindShot Kind = iota
	KindHit
	KindKill
	KindPlayerHit
	KindLevelCleared
	KindWin
	KindFrame
)

// Event is one observation sent to the sink.
type Event struct {
	Kind  Kind
	Score int
	Level int
	Dt    time.Duration // Frame time, KindFrame only
}

// Batch aggregates events over one reporting interval.
type Batch struct {
	Shots, Hits, Kills int
	Losses, Clears     int
	Wins               int
	Frames             int
	AvgFrame           time.Duration
	Score, Level       int // Latest values seen
}

func (b Batch) empty() bool {
	return b.Shots == 0 && b.Hits == 0 && b.Kills == 0 && b.Losses == 0 &&
		b.Clears == 0 && b.Wins == 0 && b.Frames == 0
}

// Sink receives events without blocking the frame loop and aggregates them on
// its own goroutine. It implements loop.Hooks.
type Sink struct {
	in      chan Event
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once
	flush   func(Batch)
	dropped atomic.Int64

	mu     sync.Mutex
	totals Batch
}

// NewSink starts a sink that logs a summary every interval.
func NewSink(interval time.Duration, logger *log.Logger) *Sink {
	return newSink(interval, func(b Batch) {
		logger.Info("telemetry",
			"shots", b.Shots,
			"hits", b.Hits,
			"kills", b.Kills,
			"losses", b.Losses,
			"clears", b.Clears,
			"wins", b.Wins,
			"frames", b.Frames,
			"avgFrame", b.AvgFrame,
			"score", b.Score,
			"level", b.Level)
	})
}

func newSink(interval time.Duration, flush func(Batch)) *Sink {
	s := &Sink{
		in:    make(chan Event, 256),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
		flush: flush,
	}
	go s.loop(interval)
	return s
}

func (s *Sink) loop(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var batch Batch
	var frameSum time.Duration

	report := func() {
		if batch.empty() {
			return
		}
		if batch.Frames > 0 {
			batch.AvgFrame = frameSum / time.Duration(batch.Frames)
		}
		if s.flush != nil {
			s.flush(batch)
		}
		batch = Batch{Score: batch.Score, Level: batch.Level}
		frameSum = 0
	}

	for {
		select {
		case <-s.quit:
			for {
				select {
				case ev := <-s.in:
					s.record(&batch, &frameSum, ev)
				default:
					report()
					return
				}
			}

		case ev := <-s.in:
			s.record(&batch, &frameSum, ev)

		case <-ticker.C:
			report()
		}
	}
}

func (s *Sink) record(batch *Batch, frameSum *time.Duration, ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range []*Batch{batch, &s.totals} {
		switch ev.Kind {
		case KindShot:
			b.Shots++
		case KindHit:
			b.Hits++
		case KindKill:
			b.Kills++
		case KindPlayerHit:
			b.Losses++
		case KindLevelCleared:
			b.Clears++
		case KindWin:
			b.Wins++
		case KindFrame:
			b.Frames++
		}
		if ev.Kind != KindFrame {
			b.Score = ev.Score
			b.Level = ev.Level
		}
	}
	if ev.Kind == KindFrame {
		*frameSum += ev.Dt
	}
}

// send enqueues ev, dropping it when the buffer is full.
func (s *Sink) send(ev Event) {
	select {
	case s.in <- ev:
	default:
		s.dropped.Add(1)
	}
}

// Frame records one rendered frame.
func (s *Sink) Frame(dt time.Duration) {
	s.send(Event{Kind: KindFrame, Dt: dt})
}

func (s *Sink) OnShoot(ev loop.Event) { s.send(Event{Kind: KindShot, Score: ev.Score, Level: ev.Level}) }
func (s *Sink) OnEnemyDamaged(ev loop.Event) {
	s.send(Event{Kind: KindHit, Score: ev.Score, Level: ev.Level})
}
func (s *Sink) OnEnemyKilled(ev loop.Event) {
	s.send(Event{Kind: KindKill, Score: ev.Score, Level: ev.Level})
}
func (s *Sink) OnPlayerHit(ev loop.Event) {
	s.send(Event{Kind: KindPlayerHit, Score: ev.Score, Level: ev.Level})
}
func (s *Sink) OnLevelCleared(ev loop.Event) {
	s.send(Event{Kind: KindLevelCleared, Score: ev.Score, Level: ev.Level})
}
func (s *Sink) OnGameWon(ev loop.Event) { s.send(Event{Kind: KindWin, Score: ev.Score, Level: ev.Level}) }

// Totals returns the counters accumulated since the sink started.
// AvgFrame is not tracked in totals.
func (s *Sink) Totals() Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

// Dropped returns how many events were discarded because the buffer was full.
func (s *Sink) Dropped() int64 {
	return s.dropped.Load()
}

// Close flushes pending events and stops the sink. Safe to call more than once.
func (s *Sink) Close() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
}

var _ loop.Hooks = (*Sink)(nil)
