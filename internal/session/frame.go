package session

import (
	"context"

	"fringe-client/internal/component"
	"fringe-client/internal/ecs"
	"fringe-client/internal/fringe"
	"fringe-client/internal/render"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("fringe-client/session")

// Tick advances tile animations by n ticks, invalidating the rows whose
// images changed, then applies finished image loads.
func (s *Session) Tick(n int) error {
	if err := s.live(); err != nil {
		return err
	}
	for _, row := range s.m.Advance(n) {
		if err := s.InvalidateRow(s.m.ID, row); err != nil {
			return err
		}
	}
	if s.cache.Pump() > 0 {
		for _, id := range s.world.Query(component.CSprites) {
			s.world.Get(id, component.CSprites).(*component.Sprites).Drawable.Refresh()
		}
	}
	return nil
}

// Viewport returns the view of width×height pixels centered on the local
// player, or on the map center without one.
func (s *Session) Viewport(width, height int) render.Viewport {
	tile := s.m.TileSize
	cx, cy := s.m.Width*tile/2, s.m.Height*tile/2
	if p, ok := s.world.Get(s.player, component.CPosition).(component.Position); ok {
		cx, cy = p.X, p.Y-tile/2
	}
	return render.NewViewport(cx, cy, width, height, s.m.Width, s.m.Height, tile)
}

// Frame composes one frame of width×height pixels onto dst.
func (s *Session) Frame(ctx context.Context, dst render.Canvas, width, height int) (fringe.Stats, error) {
	if err := s.live(); err != nil {
		return fringe.Stats{}, err
	}
	ctx, span := tracer.Start(ctx, "session.Frame", trace.WithAttributes(attribute.String("map", s.m.ID)))
	defer span.End()

	view := s.Viewport(width, height)
	c0, c1 := view.Columns()
	r0, r1 := view.Rows(s.m.ExtraRows())
	r1 = min(r1, s.m.Height)
	s.rows.Refresh(ctx, r0, r1, c0, c1)
	s.index.Update(s.sortKey)

	scene := fringe.Scene{
		Rows:     s.rows,
		Actors:   s.index,
		Painter:  painter{s},
		View:     view,
		RowStart: r0,
		RowEnd:   r1,
	}
	if s.opts.HighlightAttackRange {
		a, ok := s.world.Get(s.player, component.CActor).(component.Actor)
		if ok && a.AttackRange > 0 && !a.Dead {
			p := s.world.Get(s.player, component.CPosition).(component.Position)
			scene.Highlight = &fringe.Highlight{X: p.X, Y: p.Y, Range: a.AttackRange}
		}
	}
	s.last = s.comp.Compose(ctx, dst, scene)
	return s.last, nil
}

type painter struct{ s *Session }

// PaintActor draws the actor's sprite layers, or its base image when it has
// none, then its label above it.
func (p painter) PaintActor(dst render.Canvas, id ecs.EntityID, view render.Viewport) {
	w := p.s.world
	pos, ok := w.Get(id, component.CPosition).(component.Position)
	if !ok {
		return
	}
	x, y := view.WorldToScreen(pos.X, pos.Y)
	rd, _ := w.Get(id, component.CRenderable).(component.Renderable)

	drawn := 0
	if sp, ok := w.Get(id, component.CSprites).(*component.Sprites); ok {
		drawn = sp.Drawable.Draw(dst, x, y)
	}
	if drawn == 0 && rd.Base != nil {
		dst.DrawImage(rd.Base, x-rd.Base.W/2, y-rd.Base.H)
	}
	if rd.ShowLabel && rd.Label != "" {
		tile := view.Tile
		dst.DrawText(x-tile/2, y-2*tile, rd.Label, render.ColorLabel)
	}
}

// SetHighlightAttackRange toggles the attack-range overlay.
func (s *Session) SetHighlightAttackRange(on bool) { s.opts.HighlightAttackRange = on }

// HighlightAttackRange reports whether the overlay is drawn.
func (s *Session) HighlightAttackRange() bool { return s.opts.HighlightAttackRange }
