// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// View resolution for terminal frontends - the logical viewport in game units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 480
	ViewHeight = 320
)

// Desktop window resolution. The desktop viewport matches it one to one.
const (
	DesktopWidth  = 800
	DesktopHeight = 600
)

// Max terminal area used for rendering; larger terminals get a centered, bordered canvas.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Scoring defaults
const (
	DefaultDamageScore = 10
	DefaultDeadScore   = 30
)

// Inactivity (remote sessions only)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Level is one difficulty tier: how many enemies it spawns and how often.
type Level struct {
	NumberEnemy       int
	EnemyGenerateTime time.Duration
}

// Levels is an ordered level table. Level 1 is Levels[0].
//
// The text form is a comma separated list of count@interval pairs,
// e.g. "5@1500ms,8@1200ms,12@900ms".
type Levels []Level

// DefaultLevels returns the reference level table. Each level spawns more
// enemies, faster, than the one before it.
func DefaultLevels() Levels {
	return Levels{
		{NumberEnemy: 5, EnemyGenerateTime: 1500 * time.Millisecond},
		{NumberEnemy: 8, EnemyGenerateTime: 1200 * time.Millisecond},
		{NumberEnemy: 12, EnemyGenerateTime: 900 * time.Millisecond},
	}
}

// UnmarshalText parses the count@interval form.
func (l *Levels) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		return errors.New("empty level table")
	}

	var levels Levels
	for i, part := range strings.Split(s, ",") {
		count, interval, ok := strings.Cut(strings.TrimSpace(part), "@")
		if !ok {
			return fmt.Errorf("level %d: want count@interval, got %q", i+1, part)
		}
		n, err := strconv.Atoi(count)
		if err != nil {
			return fmt.Errorf("level %d: enemy count: %w", i+1, err)
		}
		d, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("level %d: spawn interval: %w", i+1, err)
		}
		levels = append(levels, Level{NumberEnemy: n, EnemyGenerateTime: d})
	}

	*l = levels
	return nil
}

// String renders the table in the form accepted by UnmarshalText.
func (l Levels) String() string {
	parts := make([]string, len(l))
	for i, lv := range l {
		parts[i] = fmt.Sprintf("%d@%s", lv.NumberEnemy, lv.EnemyGenerateTime)
	}
	return strings.Join(parts, ",")
}

// Rules is the full set of level and scoring parameters for a game.
type Rules struct {
	Levels      Levels
	DamageScore int // Awarded when a hit shrinks an enemy
	DeadScore   int // Awarded when a hit destroys an enemy
}

// DefaultRules returns the reference configuration.
func DefaultRules() Rules {
	return Rules{
		Levels:      DefaultLevels(),
		DamageScore: DefaultDamageScore,
		DeadScore:   DefaultDeadScore,
	}
}

// MaxLevel returns the highest level number.
func (r Rules) MaxLevel() int {
	return len(r.Levels)
}

// Level returns the parameters for a 1-based level number.
func (r Rules) Level(n int) (Level, error) {
	if n < 1 || n > len(r.Levels) {
		return Level{}, fmt.Errorf("level %d out of range 1..%d", n, len(r.Levels))
	}
	return r.Levels[n-1], nil
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	if len(r.Levels) == 0 {
		return errors.New("rules: at least one level is required")
	}
	for i, lv := range r.Levels {
		if lv.NumberEnemy < 1 {
			return fmt.Errorf("rules: level %d: enemy count must be positive, got %d", i+1, lv.NumberEnemy)
		}
		if lv.EnemyGenerateTime <= 0 {
			return fmt.Errorf("rules: level %d: spawn interval must be positive, got %s", i+1, lv.EnemyGenerateTime)
		}
	}
	if r.DamageScore < 0 || r.DeadScore < 0 {
		return fmt.Errorf("rules: scores must not be negative (damage=%d, dead=%d)", r.DamageScore, r.DeadScore)
	}
	return nil
}
