package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fringe-client/internal/render"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TileSize != 32 || cfg.Kind() != render.KindTerminal || cfg.LoadWorkers != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Tick != 50*time.Millisecond || cfg.MaxReorderPasses != 15 || cfg.CorpseDepth != 16 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.HighlightAttackRange || cfg.DebugAsserts {
		t.Fatalf("unexpected flag defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FRINGE_TILE_SIZE", "16")
	t.Setenv("FRINGE_BACKEND", "raster")
	t.Setenv("FRINGE_DEBUG_ASSERTS", "true")
	t.Setenv("FRINGE_ACTORS_FIX", "-1")
	t.Setenv("FRINGE_TICK", "100ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TileSize != 16 || cfg.Kind() != render.KindRaster || !cfg.DebugAsserts || cfg.ActorsFix != -1 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Tick != 100*time.Millisecond {
		t.Fatalf("tick = %s", cfg.Tick)
	}
}

func TestValidateRejects(t *testing.T) {
	base, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"tile size", func(c *Config) { c.TileSize = 0 }, "FRINGE_TILE_SIZE"},
		{"odd tile size", func(c *Config) { c.TileSize = 31 }, "FRINGE_TILE_SIZE"},
		{"backend", func(c *Config) { c.Backend = "opengl" }, "FRINGE_BACKEND"},
		{"workers", func(c *Config) { c.LoadWorkers = -1 }, "FRINGE_LOAD_WORKERS"},
		{"tick", func(c *Config) { c.Tick = 0 }, "FRINGE_TICK"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "FRINGE_LOG_LEVEL"},
	}
	for _, c := range cases {
		cfg := base
		c.mutate(&cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: expected error mentioning %s, got %v", c.name, c.want, err)
		}
	}
}

func TestLoggerWritesToFile(t *testing.T) {
	cfg, _ := Load()
	cfg.LogLevel = "debug"
	cfg.LogFile = filepath.Join(t.TempDir(), "fringe.log")

	var fallback bytes.Buffer
	logger, closer, err := cfg.Logger(&fallback)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Debug("hello")
	closer.Close()
	if fallback.Len() != 0 {
		t.Fatal("records should go to the log file, not the fallback")
	}
}

func TestLoggerHonoursLevel(t *testing.T) {
	cfg, _ := Load()
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger, _, err := cfg.Logger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Fatalf("level not applied: %q", buf.String())
	}
}
