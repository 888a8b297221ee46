// Package config loads game settings from a YAML file with CONQUEST_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"conquest/meta"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "CONQUEST_"

var ErrInvalidConfig = errors.New("invalid config")

type Rules struct {
	MaxAttackArmies int `yaml:"max_attack_armies" env:"MAX_ATTACK_ARMIES"`
	MaxDefendArmies int `yaml:"max_defend_armies" env:"MAX_DEFEND_ARMIES"`
}

type Player struct {
	Name string `yaml:"name"`
	AI   bool   `yaml:"ai"`
}

// Settings are the scalar options; the environment may override any of them.
type Settings struct {
	Rules     Rules  `yaml:"rules" envPrefix:"RULES_"`
	MapPath   string `yaml:"map" env:"MAP"` // Empty means the embedded default map
	Seed      uint64 `yaml:"seed" env:"SEED"`
	MaxRounds int    `yaml:"max_rounds" env:"MAX_ROUNDS"`
	Games     int    `yaml:"games" env:"GAMES"`
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogPretty bool   `yaml:"log_pretty" env:"LOG_PRETTY"`
}

type Config struct {
	Settings `yaml:",inline"`
	Players  []Player `yaml:"players"`
}

func Default() *Config {
	return &Config{
		Settings: Settings{
			Rules: Rules{
				MaxAttackArmies: meta.MAX_ATTACK_ARMIES,
				MaxDefendArmies: meta.MAX_DEFEND_ARMIES,
			},
			Seed:      1,
			MaxRounds: meta.MAX_ROUNDS,
			Games:     meta.GAMES,
			OutputDir: "experiments",
			LogLevel:  "info",
			LogPretty: true,
		},
		Players: []Player{
			{Name: "Player"},
			{Name: "Ai1", AI: true},
		},
	}
}

// Load reads path on top of the defaults, then applies the environment.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg.Settings, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Rules.MaxAttackArmies < 1 || c.Rules.MaxDefendArmies < 1 {
		return fmt.Errorf("%w: rules need at least one attacking and one defending army", ErrInvalidConfig)
	}
	if len(c.Players) < 2 {
		return fmt.Errorf("%w: need at least two players, got %d", ErrInvalidConfig, len(c.Players))
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("%w: player without a name", ErrInvalidConfig)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate player %q", ErrInvalidConfig, p.Name)
		}
		seen[p.Name] = true
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("%w: max_rounds must not be negative", ErrInvalidConfig)
	}
	if c.Games < 1 {
		return fmt.Errorf("%w: games must be at least 1", ErrInvalidConfig)
	}
	return nil
}
