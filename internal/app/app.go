// Package app wires configuration into a ready-to-render demo session. Every
// binary starts from here.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"fringe-client/assets"
	"fringe-client/internal/config"
	"fringe-client/internal/ecs"
	"fringe-client/internal/itemdb"
	"fringe-client/internal/itemdb/sqlite"
	"fringe-client/internal/resource"
	"fringe-client/internal/session"
	"fringe-client/internal/system"
	"fringe-client/internal/zindex"
)

// Demo is a populated session plus the resources it borrows.
type Demo struct {
	Session *session.Session
	Cache   *resource.Cache
	NPCs    *system.Wanderer
}

// Close stops the cache's loader workers.
func (d *Demo) Close() {
	d.Session.Unload()
	d.Cache.Close()
}

// LoadItems reads the item catalog from the sqlite database at path, or
// returns the built-in catalog when path is empty.
func LoadItems(ctx context.Context, path string) (*itemdb.Table, error) {
	if path == "" {
		return assets.Items(), nil
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open item db: %w", err)
	}
	defer store.Close()
	t, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load item db: %w", err)
	}
	return t, nil
}

// NewDemo builds the seeded demo map, loads items and spawns the town.
func NewDemo(ctx context.Context, cfg config.Config, seed int64, logger *slog.Logger) (*Demo, error) {
	if logger == nil {
		logger = slog.Default()
	}
	items, err := LoadItems(ctx, cfg.ItemDBPath)
	if err != nil {
		return nil, err
	}

	loader := resource.FileLoader{Root: cfg.AssetDir, Fallback: assets.SpriteLoader(cfg.TileSize)}
	cache := resource.NewCache(loader, resource.Options{Workers: cfg.LoadWorkers}, logger)

	m, start := assets.DemoMap(seed, cfg.TileSize)
	th := assets.NewTheme(cfg.TileSize)
	sess := session.New(m, items, cache, session.Options{
		ActorsFix:            cfg.ActorsFix,
		Depths:               zindex.DefaultDepths(cfg.CorpseDepth),
		DebugAsserts:         cfg.DebugAsserts,
		MaxReorderPasses:     cfg.MaxReorderPasses,
		HighlightAttackRange: cfg.HighlightAttackRange,
		Placeholder:          th.Placeholder,
	}, logger)

	rng := rand.New(rand.NewSource(seed))
	if _, err := assets.Populate(ctx, sess, start, rng); err != nil {
		cache.Close()
		return nil, err
	}

	// Alternate the townspeople between following and keeping away.
	behaviors := make(map[ecs.EntityID]system.Behavior)
	for i, e := range sess.Index().Entries() {
		if e.ID != sess.Player() {
			behaviors[e.ID] = system.Behavior(i % 3)
		}
	}
	logger.Info("demo map ready", "map", m.ID, "rooms", len(m.Rooms), "actors", sess.Index().Len(), "items", items.Len())
	return &Demo{
		Session: sess,
		Cache:   cache,
		NPCs:    &system.Wanderer{Sight: 6, Chance: 0.3, Rand: rng, Behaviors: behaviors},
	}, nil
}
