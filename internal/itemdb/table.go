package itemdb

import (
	"fmt"
	"sort"
)

// Table is an in-memory item database.
type Table struct {
	items map[ItemID]*ItemInfo
}

// NewTable builds a table from the given definitions. Later duplicates win.
func NewTable(items ...*ItemInfo) *Table {
	t := &Table{items: make(map[ItemID]*ItemInfo, len(items))}
	for _, it := range items {
		t.Add(it)
	}
	return t
}

// Add inserts or replaces a definition.
func (t *Table) Add(it *ItemInfo) {
	if it == nil || it.ID == AnyItem {
		return
	}
	t.items[it.ID] = it
}

// Get returns the definition for id.
func (t *Table) Get(id ItemID) (*ItemInfo, error) {
	it, ok := t.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, ErrUnknownItem)
	}
	return it, nil
}

// Len returns the number of definitions.
func (t *Table) Len() int { return len(t.items) }

// IDs returns all item ids in ascending order.
func (t *Table) IDs() []ItemID {
	ids := make([]ItemID, 0, len(t.items))
	for id := range t.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Rule returns the visual rule of id for facing f, or NoRule when the item is
// unknown or f is out of range.
func (t *Table) Rule(id ItemID, f Facing) VisualRule {
	it, ok := t.items[id]
	if !ok || int(f) >= NumFacings {
		return NoRule
	}
	return it.Rules[f]
}

// SpritePath returns the sprite path of id for gender g.
func (t *Table) SpritePath(id ItemID, g Gender) (string, bool) {
	it, ok := t.items[id]
	if !ok {
		return "", false
	}
	return it.SpritePath(g)
}
