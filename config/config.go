package config

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	maxFPS   = 240
	maxDecks = 8
)

// Config defines the runtime settings shared by every front end
type Config struct {
	FPS         int     `env:"BLACKJACK_FPS,default=30"`
	AssetsDir   string  `env:"BLACKJACK_ASSETS_DIR,default=resources"`
	FontName    string  `env:"BLACKJACK_FONT,default=boxfont2.ttf"`
	FontSize    float64 `env:"BLACKJACK_FONT_SIZE,default=32"`
	Decks       int     `env:"BLACKJACK_DECKS,default=1"`
	Seed        int64   `env:"BLACKJACK_SEED"`
	Debug       bool    `env:"BLACKJACK_DEBUG"`
	Addr        string  `env:"BLACKJACK_ADDR,default=:8000"`
	HistoryPath string  `env:"BLACKJACK_HISTORY_PATH"`
	PlayerName  string  `env:"BLACKJACK_PLAYER,default=Player"`
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	FPS:        30,
	AssetsDir:  "resources",
	FontName:   "boxfont2.ttf",
	FontSize:   32,
	Decks:      1,
	Addr:       ":8000",
	PlayerName: "Player",
}

// Load reads the environment on top of the defaults. The result is not
// validated, so that flags can still override it.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}

	return configDefault(cfg), nil
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > maxFPS {
		return fmt.Errorf("%w: fps %d must be between 1 and %d", ErrInvalidConfig, c.FPS, maxFPS)
	}
	if c.Decks < 1 || c.Decks > maxDecks {
		return fmt.Errorf("%w: decks %d must be between 1 and %d", ErrInvalidConfig, c.Decks, maxDecks)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("%w: font size must be positive", ErrInvalidConfig)
	}
	return nil
}

// Helper function to set default values
func configDefault(config ...Config) Config {
	// Return default config if nothing provided
	if len(config) < 1 {
		return ConfigDefault
	}

	// Override default config
	cfg := config[0]

	if cfg.FPS == 0 {
		cfg.FPS = ConfigDefault.FPS
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = ConfigDefault.AssetsDir
	}
	if cfg.FontName == "" {
		cfg.FontName = ConfigDefault.FontName
	}
	if cfg.FontSize == 0 {
		cfg.FontSize = ConfigDefault.FontSize
	}
	if cfg.Decks == 0 {
		cfg.Decks = ConfigDefault.Decks
	}
	if cfg.Addr == "" {
		cfg.Addr = ConfigDefault.Addr
	}
	if cfg.PlayerName == "" {
		cfg.PlayerName = ConfigDefault.PlayerName
	}

	return cfg
}
