// fringe-snapshot renders frames of the demo town with the raster backend
// and writes them as WebP files. Townspeople move between frames.
//
//	go run ./cmd/snapshot --frames 4 --out frames/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"fringe-client/internal/app"
	"fringe-client/internal/config"
	"fringe-client/internal/render"
	"fringe-client/internal/telemetry"
)

func main() {
	frames := flag.Int("frames", 1, "number of frames to write")
	ticks := flag.Int("ticks", 10, "animation ticks between frames")
	width := flag.Int("width", 640, "frame width in pixels")
	height := flag.Int("height", 480, "frame height in pixels")
	seed := flag.Int64("seed", 1, "demo map seed")
	out := flag.String("out", ".", "output directory")
	flag.Parse()

	if err := run(*frames, *ticks, *width, *height, *seed, *out); err != nil {
		log.Fatal(err)
	}
}

func run(frames, ticks, width, height int, seed int64, out string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Snapshots always rasterize, whatever the viewer backend is.
	cfg.Backend = render.KindRaster.String()
	logger, logs, err := cfg.Logger(os.Stderr)
	if err != nil {
		return err
	}
	defer logs.Close()

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, "fringe-snapshot", cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer shutdown(ctx)

	demo, err := app.NewDemo(ctx, cfg, seed, logger)
	if err != nil {
		return err
	}
	defer demo.Close()

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	batch := render.NewBatch(1024)
	for i := 0; i < frames; i++ {
		for t := 0; t < ticks; t++ {
			if err := demo.Session.Tick(1); err != nil {
				return err
			}
		}
		if i > 0 {
			if _, err := demo.NPCs.Step(ctx, demo.Session); err != nil {
				return err
			}
		}
		path := filepath.Join(out, fmt.Sprintf("frame-%04d.webp", i))
		if _, err := writeFrame(ctx, demo, cfg, batch, width, height, path); err != nil {
			return err
		}
		log.Printf("wrote %s", path)
	}
	return nil
}

// writeFrame records one composed frame into batch, replays it onto a fresh
// raster surface and encodes the result to path. It returns the number of
// replayed draw commands.
func writeFrame(ctx context.Context, demo *app.Demo, cfg config.Config, batch *render.Batch, width, height int, path string) (int, error) {
	surface, err := render.NewCanvas(cfg.Kind(), nil, cfg.TileSize, 0, width, height)
	if err != nil {
		return 0, err
	}
	raster := surface.(*render.RasterCanvas)
	raster.Clear(render.ColorBackground)

	batch.Reset()
	stats, err := demo.Session.Frame(ctx, batch, width, height)
	if err != nil {
		return 0, err
	}
	n := batch.Len()
	batch.Flush(raster)

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	if err := raster.EncodeWebP(f); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	log.Printf("rows=%d batches=%d tiles=%d markers=%d actors=%d commands=%d",
		stats.Rows, stats.Batches, stats.Tiles, stats.Markers, stats.Actors, n)
	return n, nil
}
