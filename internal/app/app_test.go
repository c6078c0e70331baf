package app

import (
	"context"
	"path/filepath"
	"testing"

	"fringe-client/assets"
	"fringe-client/internal/config"
	"fringe-client/internal/itemdb"
	"fringe-client/internal/itemdb/sqlite"
	"fringe-client/internal/render"
)

func testConfig() config.Config {
	return config.Config{
		TileSize:             16,
		Backend:              "raster",
		CorpseDepth:          8,
		HighlightAttackRange: true,
		MaxReorderPasses:     15,
	}
}

func TestLoadItemsDefaultsToBuiltIn(t *testing.T) {
	items, err := LoadItems(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if items.Len() != assets.Items().Len() {
		t.Errorf("items = %d, want %d", items.Len(), assets.Items().Len())
	}
}

func TestLoadItemsFromDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.db")
	store, err := sqlite.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(context.Background(), assets.Items()); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	items, err := LoadItems(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	rule := items.Rule(assets.ItemRobe, itemdb.FacingDown)
	if _, ok := rule.RemoveSprites[assets.SlotLegs]; !ok {
		t.Errorf("robe rule lost its leg removal: %+v", rule)
	}
}

func TestNewDemoRendersAFrame(t *testing.T) {
	d, err := NewDemo(context.Background(), testConfig(), 9, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if err := d.Session.Tick(1); err != nil {
		t.Fatal(err)
	}
	dst := render.NewRasterCanvas(320, 240)
	stats, err := d.Session.Frame(context.Background(), dst, 320, 240)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Actors == 0 {
		t.Error("no actors in view of the player")
	}
	if len(d.NPCs.Behaviors) != d.Session.Index().Len()-1 {
		t.Errorf("behaviors = %d, want one per townsperson", len(d.NPCs.Behaviors))
	}
}
