// Package config loads runtime settings from FRINGE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"fringe-client/internal/render"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration shared by every binary.
type Config struct {
	TileSize             int           `env:"FRINGE_TILE_SIZE" envDefault:"32"`
	Backend              string        `env:"FRINGE_BACKEND" envDefault:"terminal"`
	DebugAsserts         bool          `env:"FRINGE_DEBUG_ASSERTS" envDefault:"false"`
	ActorsFix            int           `env:"FRINGE_ACTORS_FIX" envDefault:"0"`
	CorpseDepth          int           `env:"FRINGE_CORPSE_DEPTH" envDefault:"16"`
	HighlightAttackRange bool          `env:"FRINGE_HIGHLIGHT_ATTACK_RANGE" envDefault:"true"`
	ItemDBPath           string        `env:"FRINGE_ITEMDB_PATH"`
	AssetDir             string        `env:"FRINGE_ASSET_DIR"`
	LoadWorkers          int           `env:"FRINGE_LOAD_WORKERS" envDefault:"2"`
	LogLevel             string        `env:"FRINGE_LOG_LEVEL" envDefault:"info"`
	LogFile              string        `env:"FRINGE_LOG_FILE"`
	OTelEndpoint         string        `env:"FRINGE_OTEL_ENDPOINT"`
	Tick                 time.Duration `env:"FRINGE_TICK" envDefault:"50ms"`
	MaxReorderPasses     int           `env:"FRINGE_MAX_REORDER_PASSES" envDefault:"15"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.TileSize < 2 || c.TileSize%2 != 0 {
		errs = append(errs, fmt.Errorf("FRINGE_TILE_SIZE must be a positive even number, got %d", c.TileSize))
	}
	if _, err := render.ParseKind(c.Backend); err != nil {
		errs = append(errs, fmt.Errorf("FRINGE_BACKEND: %w", err))
	}
	if c.LoadWorkers < 0 {
		errs = append(errs, fmt.Errorf("FRINGE_LOAD_WORKERS must not be negative, got %d", c.LoadWorkers))
	}
	if c.MaxReorderPasses < 0 {
		errs = append(errs, fmt.Errorf("FRINGE_MAX_REORDER_PASSES must not be negative, got %d", c.MaxReorderPasses))
	}
	if c.Tick <= 0 {
		errs = append(errs, fmt.Errorf("FRINGE_TICK must be positive, got %s", c.Tick))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Kind returns the configured render backend.
func (c Config) Kind() render.Kind {
	k, _ := render.ParseKind(c.Backend)
	return k
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("FRINGE_LOG_LEVEL: %w", err)
	}
	return l, nil
}

// Logger builds the process logger. With LogFile set, records go to that
// file instead of fallback so a full-screen terminal stays clean. The
// returned closer releases the file.
func (c Config) Logger(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	w := fallback
	var closer io.Closer = nopCloser{}
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}
	if w == nil {
		w = io.Discard
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
