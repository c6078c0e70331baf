// Package sqlite provides a SQLite-backed item definition database.
// The store is only read at startup; lookups during rendering go through the
// in-memory itemdb.Table it produces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"fringe-client/internal/itemdb"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS item_sprites (
	item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
	gender  INTEGER NOT NULL,
	path    TEXT NOT NULL,
	PRIMARY KEY (item_id, gender)
);
CREATE TABLE IF NOT EXISTS item_rules (
	item_id     INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
	facing      INTEGER NOT NULL,
	draw_before INTEGER NOT NULL DEFAULT -1,
	draw_after  INTEGER NOT NULL DEFAULT -1,
	priority    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (item_id, facing)
);
CREATE TABLE IF NOT EXISTS item_removals (
	item_id       INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
	facing        INTEGER NOT NULL,
	target_slot   INTEGER NOT NULL,
	unconditional INTEGER NOT NULL DEFAULT 0,
	match_item    INTEGER NOT NULL DEFAULT 0,
	hide          INTEGER NOT NULL DEFAULT 0,
	replace_item  INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS item_removals_item ON item_removals(item_id, facing);
`

// Store persists item definitions in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save replaces the stored catalog with the contents of t.
func (s *Store) Save(ctx context.Context, t *itemdb.Table) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"item_removals", "item_rules", "item_sprites", "items"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, id := range t.IDs() {
		it, err := t.Get(id)
		if err != nil {
			return err
		}
		if err := saveItem(ctx, tx, it); err != nil {
			return fmt.Errorf("save item %d: %w", id, err)
		}
	}
	return tx.Commit()
}

func saveItem(ctx context.Context, tx *sql.Tx, it *itemdb.ItemInfo) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO items (id, name) VALUES (?, ?)`, it.ID, it.Name); err != nil {
		return err
	}
	for g, path := range it.Sprites {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO item_sprites (item_id, gender, path) VALUES (?, ?, ?)`,
			it.ID, int(g), path); err != nil {
			return err
		}
	}
	for f, rule := range it.Rules {
		if rule.HasOrdering() || rule.Priority != 0 {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO item_rules (item_id, facing, draw_before, draw_after, priority) VALUES (?, ?, ?, ?, ?)`,
				it.ID, f, rule.DrawBefore, rule.DrawAfter, rule.Priority); err != nil {
				return err
			}
		}
		for _, target := range rule.RemovalTargets() {
			repl := rule.RemoveSprites[target]
			if len(repl) == 0 {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO item_removals (item_id, facing, target_slot, unconditional) VALUES (?, ?, ?, 1)`,
					it.ID, f, target); err != nil {
					return err
				}
				continue
			}
			for match, r := range repl {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO item_removals (item_id, facing, target_slot, match_item, hide, replace_item) VALUES (?, ?, ?, ?, ?, ?)`,
					it.ID, f, target, match, boolToInt(r.Hide), r.Item); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Load reads the whole catalog into an in-memory table.
func (s *Store) Load(ctx context.Context) (*itemdb.Table, error) {
	items := make(map[itemdb.ItemID]*itemdb.ItemInfo)

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items[itemdb.ItemID(id)] = itemdb.NewItem(itemdb.ItemID(id), name)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	if err := s.loadSprites(ctx, items); err != nil {
		return nil, err
	}
	if err := s.loadRules(ctx, items); err != nil {
		return nil, err
	}
	if err := s.loadRemovals(ctx, items); err != nil {
		return nil, err
	}

	t := itemdb.NewTable()
	for _, it := range items {
		t.Add(it)
	}
	return t, nil
}

func (s *Store) loadSprites(ctx context.Context, items map[itemdb.ItemID]*itemdb.ItemInfo) error {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT item_id, gender, path FROM item_sprites`)
	if err != nil {
		return fmt.Errorf("query sprites: %w", err)
	}
	for rows.Next() {
		var id, gender int64
		var path string
		if err := rows.Scan(&id, &gender, &path); err != nil {
			rows.Close()
			return fmt.Errorf("scan sprite: %w", err)
		}
		if it, ok := items[itemdb.ItemID(id)]; ok {
			it.WithSprite(itemdb.Gender(gender), path)
		}
	}
	return closeRows(rows)
}

func (s *Store) loadRules(ctx context.Context, items map[itemdb.ItemID]*itemdb.ItemInfo) error {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT item_id, facing, draw_before, draw_after, priority FROM item_rules`)
	if err != nil {
		return fmt.Errorf("query rules: %w", err)
	}
	for rows.Next() {
		var id, facing, before, after, priority int64
		if err := rows.Scan(&id, &facing, &before, &after, &priority); err != nil {
			rows.Close()
			return fmt.Errorf("scan rule: %w", err)
		}
		it, ok := items[itemdb.ItemID(id)]
		if !ok || facing < 0 || facing >= itemdb.NumFacings {
			continue
		}
		r := &it.Rules[facing]
		r.DrawBefore = int(before)
		r.DrawAfter = int(after)
		r.Priority = int(priority)
	}
	return closeRows(rows)
}

func (s *Store) loadRemovals(ctx context.Context, items map[itemdb.ItemID]*itemdb.ItemInfo) error {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT item_id, facing, target_slot, unconditional, match_item, hide, replace_item FROM item_removals`)
	if err != nil {
		return fmt.Errorf("query removals: %w", err)
	}
	for rows.Next() {
		var id, facing, target, uncond, match, hide, replace int64
		if err := rows.Scan(&id, &facing, &target, &uncond, &match, &hide, &replace); err != nil {
			rows.Close()
			return fmt.Errorf("scan removal: %w", err)
		}
		it, ok := items[itemdb.ItemID(id)]
		if !ok || facing < 0 || facing >= itemdb.NumFacings {
			continue
		}
		f := itemdb.Facing(facing)
		if uncond != 0 {
			it.Hide(int(target), f)
			continue
		}
		it.Replace(int(target), itemdb.ItemID(match),
			itemdb.Replacement{Hide: hide != 0, Item: itemdb.ItemID(replace)}, f)
	}
	return closeRows(rows)
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate rows: %w", err)
	}
	return rows.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
