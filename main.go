// fringe-client is a terminal viewer for the fringe-layer compositor: it
// lays out a seeded demo town and lets you walk through it.
//
// Settings come from FRINGE_* environment variables; see internal/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"fringe-client/internal/app"
	"fringe-client/internal/config"
	"fringe-client/internal/render"
	"fringe-client/internal/telemetry"
	"fringe-client/internal/viewer"

	"github.com/gdamore/tcell/v2"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "demo map seed")
	snapshots := flag.String("snapshots", "", "directory for WebP frames saved with 's'")
	flag.Parse()

	if err := run(*seed, *snapshots); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(seed int64, snapshots string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Kind() != render.KindTerminal {
		return fmt.Errorf("the interactive viewer needs FRINGE_BACKEND=terminal; use cmd/snapshot for %s output", cfg.Kind())
	}
	// The terminal is the display; logs only go to FRINGE_LOG_FILE.
	logger, logs, err := cfg.Logger(io.Discard)
	if err != nil {
		return err
	}
	defer logs.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "fringe-client", cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer shutdown(context.Background())

	demo, err := app.NewDemo(ctx, cfg, seed, logger)
	if err != nil {
		return err
	}
	defer demo.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	v := viewer.New(screen, demo.Session, demo.NPCs, viewer.Options{
		Tick:        cfg.Tick,
		SnapshotDir: snapshots,
	}, logger)
	return v.Run(ctx)
}
