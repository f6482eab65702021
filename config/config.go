// Package config reads the process configuration from SPACETEAM_* environment variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"gitlab.com/prestrafe/spaceteam/labels"
	"gitlab.com/prestrafe/spaceteam/match"
)

const prefix = "spaceteam"

type Config struct {
	Addr              string        `default:"0.0.0.0"`
	Port              int           `default:"4433"`
	Debug             bool          `default:"false"`
	SinglePlayer      bool          `default:"false"`
	StartingHealth    float64       `default:"100"`
	HealthTick        time.Duration `default:"2s"`
	SpecialResetDelay time.Duration `default:"2s"`
	// Optional YAML word list replacing the embedded one.
	WordsFile string
	// Page origins allowed to open a websocket, comma separated. Empty allows every origin.
	AllowedOrigins []string `split_words:"true"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	config := new(Config)
	if err := envconfig.Process(prefix, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Match returns the settings every match is created with.
func (c *Config) Match() match.Settings {
	return match.Settings{
		SinglePlayer:      c.SinglePlayer,
		StartingHealth:    c.StartingHealth,
		HealthTick:        c.HealthTick,
		SpecialResetDelay: c.SpecialResetDelay,
	}
}

// Words loads the configured word list, or the embedded one if none is configured.
func (c *Config) Words() (*labels.Words, error) {
	return labels.Load(c.WordsFile)
}
