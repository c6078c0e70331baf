// Package fringe merges the cached terrain rows of a map with its
// depth-sorted actors into one painter's-algorithm frame.
package fringe

import (
	"context"
	"log/slog"

	"fringe-client/internal/ecs"
	"fringe-client/internal/render"
	"fringe-client/internal/tilecache"
	"fringe-client/internal/zindex"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("fringe-client/fringe")

// ActorPainter draws one actor. The compositor calls it exactly once per
// indexed actor per frame, in depth order.
type ActorPainter interface {
	PaintActor(dst render.Canvas, id ecs.EntityID, view render.Viewport)
}

// Highlight is the attack-range overlay around the local player. X and Y
// are the player's world pixel position (bottom-center of its tile) and
// Range is in tiles.
type Highlight struct {
	X, Y  int
	Range int
}

// Scene is everything one frame reads.
type Scene struct {
	Rows             *tilecache.Cache
	Actors           *zindex.Index
	Painter          ActorPainter
	View             render.Viewport
	RowStart, RowEnd int
	Highlight        *Highlight
}

// Stats counts what one Compose call drew.
type Stats struct {
	Rows    int
	Batches int
	Tiles   int
	Markers int
	Actors  int
}

// Compositor paints scenes. It keeps no state between frames.
type Compositor struct {
	actorsFix int
	logger    *slog.Logger
}

// New creates a compositor. actorsFix shifts the actor flush boundary by
// whole rows.
func New(actorsFix int, logger *slog.Logger) *Compositor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compositor{actorsFix: actorsFix, logger: logger}
}

// Compose paints rows top to bottom. After each row's tiles it flushes the
// actors whose key lies at or above the row's bottom edge, then draws the
// row's markers. Actors left over after the last row are flushed before the
// global overlays.
func (c *Compositor) Compose(ctx context.Context, dst render.Canvas, s Scene) Stats {
	_, span := tracer.Start(ctx, "fringe.Compose")
	defer span.End()

	var st Stats
	tile := s.View.Tile
	if !s.Actors.Sorted() {
		s.Actors.Sort()
	}
	actors := s.Actors.Entries()
	next := 0 // frame-local merge cursor

	flush := func(limit int, all bool) {
		for next < len(actors) && (all || actors[next].Key <= limit) {
			s.Painter.PaintActor(dst, actors[next].ID, s.View)
			st.Actors++
			next++
		}
	}

	for row := s.RowStart; row < s.RowEnd; row++ {
		r, ok := s.Rows.Row(row)
		if ok {
			st.Rows++
			for _, b := range r.Batches {
				x, y := s.View.WorldToScreen(b.X, b.Y)
				if b.Count > 1 {
					dst.DrawPattern(b.Image, x, y, b.Width, b.Image.H)
				} else {
					dst.DrawImage(b.Image, x, y)
				}
				st.Batches++
				st.Tiles += b.Count
			}
		}

		flush((row+1+c.actorsFix)*tile, false)

		if ok {
			for _, mk := range r.Markers {
				x, y := s.View.WorldToScreen(mk.X, mk.Y)
				if mk.Image != nil {
					dst.DrawImage(mk.Image, x, y)
				}
				if mk.Label != "" {
					dst.DrawText(x, y, mk.Label, render.ColorLabel)
				}
				st.Markers++
			}
		}
	}
	flush(0, true)

	if s.Highlight != nil {
		drawAttackRange(dst, s.View, *s.Highlight)
	}

	span.SetAttributes(
		attribute.Int("rows", st.Rows),
		attribute.Int("batches", st.Batches),
		attribute.Int("actors", st.Actors),
	)
	return st
}

// AttackRangeRect returns the screen rectangle of the highlight.
func AttackRangeRect(view render.Viewport, h Highlight) render.Rect {
	tile := view.Tile
	px, py := view.WorldToScreen(h.X-tile/2, h.Y-tile)
	rng := h.Range * tile
	r := render.Rect{X: px - rng, Y: py - rng, W: 2*rng + tile, H: 2*rng + tile}
	if rng <= tile {
		r.X -= tile / 2
		r.Y -= tile / 2
		r.W += tile
		r.H += tile
	}
	return r
}

func drawAttackRange(dst render.Canvas, view render.Viewport, h Highlight) {
	r := AttackRangeRect(view, h)
	dst.FillRect(r, render.ColorAttackRange)
	dst.DrawRect(r, render.ColorAttackBorder)
}
