// Package sound plays short synthesized effects for game events.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/centerfire/internal/loop"
)

const sampleRate = beep.SampleRate(48000)

// Manager mixes effect sounds into the speaker. It implements loop.Hooks; every
// method is a no-op until Initialize succeeds.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool

	// play hands a finished streamer to the output. Replaced in tests.
	play func(beep.Streamer)
}

// NewManager creates a manager with a master volume in [0, 1].
func NewManager(volume float64) *Manager {
	m := &Manager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
	m.play = m.addToMixer
	return m
}

// Initialize opens the audio device.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup silences everything and stops accepting sounds.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

func (m *Manager) addToMixer(s beep.Streamer) {
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// emit builds and plays one effect at master volume.
func (m *Manager) emit(build func(beep.SampleRate) beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.play(newVolume(build(sampleRate), m.volume))
}

func (m *Manager) OnShoot(loop.Event)        { m.emit(shootSound) }
func (m *Manager) OnEnemyDamaged(loop.Event) { m.emit(damageSound) }
func (m *Manager) OnEnemyKilled(loop.Event)  { m.emit(killSound) }
func (m *Manager) OnPlayerHit(loop.Event)    { m.emit(playerHitSound) }
func (m *Manager) OnLevelCleared(loop.Event) { m.emit(levelClearedSound) }
func (m *Manager) OnGameWon(loop.Event)      { m.emit(gameWonSound) }

var _ loop.Hooks = (*Manager)(nil)
