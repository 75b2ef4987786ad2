// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/caarlos0/env/v11"

	gameconfig "github.com/tomz197/centerfire/internal/loop/config"
)

// Settings holds everything the binaries read from the environment.
type Settings struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	SSHHost        string `env:"SSH_HOST"         envDefault:"::"`
	SSHPort        string `env:"SSH_PORT"         envDefault:"2222"`
	SSHHostKey     string `env:"SSH_HOST_KEY"     envDefault:"/app/keys/host_key"`
	SSHDisplayHost string `env:"SSH_DISPLAY_HOST" envDefault:"your-server.com"`

	WebHost string `env:"WEB_HOST" envDefault:"0.0.0.0"`
	WebPort string `env:"WEB_PORT" envDefault:"8080"`

	Sound             bool          `env:"SOUND"              envDefault:"true"`
	TelemetryInterval time.Duration `env:"TELEMETRY_INTERVAL" envDefault:"30s"`

	Seed        int64  `env:"GAME_SEED"`
	DamageScore int    `env:"DAMAGE_SCORE" envDefault:"10"`
	DeadScore   int    `env:"DEAD_SCORE"   envDefault:"30"`
	Levels      string `env:"LEVELS"       envDefault:"5@1500ms,8@1200ms,12@900ms"`
}

// Load reads Settings from the environment.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// Rules builds and validates the game rules described by the settings.
func (s Settings) Rules() (gameconfig.Rules, error) {
	var levels gameconfig.Levels
	if err := levels.UnmarshalText([]byte(s.Levels)); err != nil {
		return gameconfig.Rules{}, fmt.Errorf("LEVELS: %w", err)
	}
	rules := gameconfig.Rules{
		Levels:      levels,
		DamageScore: s.DamageScore,
		DeadScore:   s.DeadScore,
	}
	if err := rules.Validate(); err != nil {
		return gameconfig.Rules{}, err
	}
	return rules, nil
}

// Rand returns a random source seeded from GAME_SEED, or from the clock when unset.
func (s Settings) Rand() *rand.Rand {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
