// Package sprite turns an entity's equipped items into a back-to-front paint
// order and a per-slot visibility mask, and draws the visible layers.
package sprite

import (
	"errors"
	"fmt"

	"fringe-client/internal/itemdb"
)

// ErrSlotOutOfRange is returned for slot indices outside the table.
var ErrSlotOutOfRange = errors.New("slot index out of range")

// Slot is one equipment layer of an entity. Storage order is not paint order.
type Slot struct {
	Item   itemdb.ItemID // 0 = empty
	Color  uint8
	Weapon bool
}

// Empty reports whether nothing is equipped in the slot.
func (s Slot) Empty() bool { return s.Item == 0 }

// SlotTable is a fixed-size, bounds-checked slot array owned by one entity.
type SlotTable struct {
	slots   []Slot
	version uint64
}

// NewSlotTable creates a table with n empty slots.
func NewSlotTable(n int) *SlotTable {
	if n < 0 {
		n = 0
	}
	return &SlotTable{slots: make([]Slot, n)}
}

// Len returns the number of slots.
func (t *SlotTable) Len() int { return len(t.slots) }

// Version increments on every mutation; drawables use it to detect changes.
func (t *SlotTable) Version() uint64 { return t.version }

func (t *SlotTable) check(i int) error {
	if i < 0 || i >= len(t.slots) {
		return fmt.Errorf("slot %d of %d: %w", i, len(t.slots), ErrSlotOutOfRange)
	}
	return nil
}

// Get returns slot i.
func (t *SlotTable) Get(i int) (Slot, error) {
	if err := t.check(i); err != nil {
		return Slot{}, err
	}
	return t.slots[i], nil
}

// Item returns the item in slot i, or 0 when i is out of range.
func (t *SlotTable) Item(i int) itemdb.ItemID {
	if i < 0 || i >= len(t.slots) {
		return 0
	}
	return t.slots[i].Item
}

// Set replaces slot i.
func (t *SlotTable) Set(i int, s Slot) error {
	if err := t.check(i); err != nil {
		return err
	}
	t.slots[i] = s
	t.version++
	return nil
}

// Equip places item in slot i with the given dye color.
func (t *SlotTable) Equip(i int, item itemdb.ItemID, color uint8) error {
	if err := t.check(i); err != nil {
		return err
	}
	t.slots[i].Item = item
	t.slots[i].Color = color
	t.version++
	return nil
}

// Unequip empties slot i, keeping its weapon flag.
func (t *SlotTable) Unequip(i int) error {
	return t.Equip(i, 0, 0)
}

// Snapshot returns a copy of all slots.
func (t *SlotTable) Snapshot() []Slot {
	out := make([]Slot, len(t.slots))
	copy(out, t.slots)
	return out
}
