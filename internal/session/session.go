// Package session owns everything one loaded map draws from: its actors,
// their depth index, the terrain row cache, the sprite resolver and the
// compositor. A Session is used from a single goroutine.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"fringe-client/internal/component"
	"fringe-client/internal/ecs"
	"fringe-client/internal/fringe"
	"fringe-client/internal/gamemap"
	"fringe-client/internal/itemdb"
	"fringe-client/internal/render"
	"fringe-client/internal/resource"
	"fringe-client/internal/sprite"
	"fringe-client/internal/tilecache"
	"fringe-client/internal/zindex"
)

var (
	ErrUnknownActor = errors.New("unknown actor")
	ErrWrongMap     = errors.New("row invalidation for another map")
	ErrUnloaded     = errors.New("map session unloaded")
)

// DefaultSlots is the number of sprite slots an actor gets when its spec
// does not say otherwise.
const DefaultSlots = 8

// Options tunes a session.
type Options struct {
	ActorsFix            int
	Depths               zindex.Depths
	DebugAsserts         bool
	MaxReorderPasses     int
	HighlightAttackRange bool
	Placeholder          *render.Image
}

// Session is the map-scoped context the frame loop renders from.
type Session struct {
	m        *gamemap.Map
	items    itemdb.Lookup
	cache    *resource.Cache
	opts     Options
	logger   *slog.Logger
	world    *ecs.World
	index    *zindex.Index
	rows     *tilecache.Cache
	resolver *sprite.Resolver
	comp     *fringe.Compositor
	player   ecs.EntityID
	unloaded bool
	last     fringe.Stats
}

// New creates a session for m. The resource cache is shared and outlives
// the session.
func New(m *gamemap.Map, items itemdb.Lookup, cache *resource.Cache, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("map", m.ID)
	return &Session{
		m:        m,
		items:    items,
		cache:    cache,
		opts:     opts,
		logger:   logger,
		world:    ecs.NewWorld(),
		index:    zindex.New(),
		rows:     tilecache.New(m, opts.DebugAsserts, logger),
		resolver: sprite.NewResolver(items, opts.MaxReorderPasses, logger),
		comp:     fringe.New(opts.ActorsFix, logger),
	}
}

// Map returns the session's map.
func (s *Session) Map() *gamemap.Map { return s.m }

// World returns the actor store.
func (s *Session) World() *ecs.World { return s.world }

// Index returns the actor depth index.
func (s *Session) Index() *zindex.Index { return s.index }

// Rows returns the terrain row cache.
func (s *Session) Rows() *tilecache.Cache { return s.rows }

// Player returns the local player, or ecs.NilEntity.
func (s *Session) Player() ecs.EntityID { return s.player }

// LastStats returns the statistics of the most recent frame.
func (s *Session) LastStats() fringe.Stats { return s.last }

func (s *Session) live() error {
	if s.unloaded {
		return ErrUnloaded
	}
	return nil
}

func (s *Session) actor(id ecs.EntityID) (*component.Actor, *component.Position, error) {
	if err := s.live(); err != nil {
		return nil, nil, err
	}
	a, ok := s.world.Get(id, component.CActor).(component.Actor)
	if !ok {
		return nil, nil, fmt.Errorf("actor %d: %w", id, ErrUnknownActor)
	}
	p, _ := s.world.Get(id, component.CPosition).(component.Position)
	return &a, &p, nil
}

func (s *Session) sortKey(id ecs.EntityID) int {
	a, _ := s.world.Get(id, component.CActor).(component.Actor)
	p, _ := s.world.Get(id, component.CPosition).(component.Position)
	return s.opts.Depths.Key(a.SortY(p), a.Category)
}

// NotifyActorSpawned adds a live actor to the depth index.
func (s *Session) NotifyActorSpawned(id ecs.EntityID) error {
	if _, _, err := s.actor(id); err != nil {
		return err
	}
	s.index.Insert(id, s.sortKey(id))
	return nil
}

// NotifyActorDespawned removes an actor from the depth index.
func (s *Session) NotifyActorDespawned(id ecs.EntityID) error {
	if err := s.live(); err != nil {
		return err
	}
	if !s.index.Remove(id) {
		return fmt.Errorf("actor %d: %w", id, ErrUnknownActor)
	}
	return nil
}

// InvalidateRow schedules row of mapID for rebuild on the next frame.
func (s *Session) InvalidateRow(mapID string, row int) error {
	if err := s.live(); err != nil {
		return err
	}
	if mapID != s.m.ID {
		return fmt.Errorf("%s (session map %s): %w", mapID, s.m.ID, ErrWrongMap)
	}
	s.rows.Invalidate(row)
	return nil
}

// Unload clears the depth index and row cache together, then releases
// every actor's sprite references. The session is unusable afterwards.
func (s *Session) Unload() {
	if s.unloaded {
		return
	}
	s.index.Clear()
	s.rows.Clear()
	for _, id := range s.world.Query(component.CSprites) {
		if sp, ok := s.world.Get(id, component.CSprites).(*component.Sprites); ok {
			sp.Drawable.Release()
		}
	}
	n := s.world.Len()
	s.world.Clear()
	s.player = ecs.NilEntity
	s.unloaded = true
	s.logger.Info("map unloaded", "actors", n)
}
