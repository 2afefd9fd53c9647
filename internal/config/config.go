// Package config loads process configuration through viper: defaults,
// an optional YAML config file, and DUELFORGE_* environment overrides,
// in ascending precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/duelforge/duelforge/internal/ruleset"
)

// Config is everything the process needs to set up a match.
type Config struct {
	// PoolPath is the card pool YAML file.
	PoolPath string `mapstructure:"pool"`

	// DeckPaths are the two deck list files, player 0 first.
	DeckPaths []string `mapstructure:"decks"`

	// PlayerNames label the two seats.
	PlayerNames []string `mapstructure:"players"`

	// RulesPath optionally overrides the stock rule table with a YAML file.
	RulesPath string `mapstructure:"rules"`

	// Seed drives shuffling. The same seed and decks replay identically.
	Seed int64 `mapstructure:"seed"`

	// Strict makes unhandled schema variants panic instead of degrading to
	// no-ops. On for development, off for production.
	Strict bool `mapstructure:"strict"`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration. path may be empty, in which case defaults and
// environment variables alone apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("seed", 1)
	v.SetDefault("strict", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("players", []string{"Player 1", "Player 2"})

	v.SetEnvPrefix("DUELFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.PoolPath == "" {
		return fmt.Errorf("config: pool path is required")
	}
	if len(c.DeckPaths) != 2 {
		return fmt.Errorf("config: exactly two deck paths are required, got %d", len(c.DeckPaths))
	}
	if len(c.PlayerNames) != 2 {
		return fmt.Errorf("config: exactly two player names are required, got %d", len(c.PlayerNames))
	}
	return nil
}

// Rules resolves the rule table: the stock table, or the YAML override
// when RulesPath is set.
func (c *Config) Rules() (*ruleset.Rules, error) {
	if c.RulesPath == "" {
		return ruleset.Default(), nil
	}
	raw, err := os.ReadFile(c.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", c.RulesPath, err)
	}
	rules := ruleset.Default()
	if err := yaml.Unmarshal(raw, rules); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", c.RulesPath, err)
	}
	return rules, nil
}
