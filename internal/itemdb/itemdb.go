// Package itemdb holds item definitions and their per-facing visual rules:
// which other slot an item's sprite must paint next to, and which other
// slots it hides or replaces while worn.
package itemdb

import (
	"errors"
	"sort"
)

// ItemID identifies an item definition. Zero means "no item".
type ItemID int32

// AnyItem is the fallback key of a replacement map: it matches whatever item
// the target slot currently holds when no exact entry exists.
const AnyItem ItemID = 0

// NoSlot marks an unset draw-before/draw-after anchor.
const NoSlot = -1

// AnySlot as a removal target means "every slot whose current item matches
// a key of the replacement map".
const AnySlot = -1

// ErrUnknownItem is returned when an item id has no definition.
var ErrUnknownItem = errors.New("unknown item")

// Facing selects the direction-specific visual rules.
type Facing uint8

const (
	FacingDown Facing = iota
	FacingDownLeft
	FacingLeft
	FacingUpLeft
	FacingUp
	FacingUpRight
	FacingRight
	FacingDownRight
	FacingDefault
	FacingDead // pose used for every direction while dead

	NumFacings = 10
)

// Normalize maps an arbitrary facing to the rule index used for lookups:
// dead actors always use FacingDead, out-of-range values fall back to FacingDown.
func Normalize(f Facing, dead bool) Facing {
	if dead {
		return FacingDead
	}
	if f >= FacingDead {
		return FacingDown
	}
	return f
}

// Gender selects the sprite variant of an item.
type Gender uint8

const (
	GenderUnspecified Gender = iota
	GenderMale
	GenderFemale
)

// Replacement is what happens to a target slot matched by a removal rule.
type Replacement struct {
	Hide bool
	Item ItemID // substitute sprite when Hide is false
}

// VisualRule is one item's ordering and hiding behaviour for one facing.
type VisualRule struct {
	DrawBefore int // slot this item paints immediately before, or NoSlot
	DrawAfter  int // slot this item paints immediately after, or NoSlot
	Priority   int

	// RemoveSprites maps a target slot (or AnySlot) to a replacement map keyed
	// by the target's current item. An empty map hides the target outright.
	RemoveSprites map[int]map[ItemID]Replacement
}

// NoRule is the rule of an item that declares nothing.
var NoRule = VisualRule{DrawBefore: NoSlot, DrawAfter: NoSlot}

// HasOrdering reports whether the rule carries a draw-before or draw-after anchor.
func (r VisualRule) HasOrdering() bool {
	return r.DrawBefore >= 0 || r.DrawAfter >= 0
}

// RemovalTargets returns the removal target slots in ascending order so
// resolution never depends on map iteration order.
func (r VisualRule) RemovalTargets() []int {
	if len(r.RemoveSprites) == 0 {
		return nil
	}
	out := make([]int, 0, len(r.RemoveSprites))
	for slot := range r.RemoveSprites {
		out = append(out, slot)
	}
	sort.Ints(out)
	return out
}

// ItemInfo is a single item definition.
type ItemInfo struct {
	ID      ItemID
	Name    string
	Sprites map[Gender]string // sprite path per gender; GenderUnspecified is the fallback
	Rules   [NumFacings]VisualRule
}

// NewItem returns an item with no visual rules for any facing.
func NewItem(id ItemID, name string) *ItemInfo {
	it := &ItemInfo{ID: id, Name: name, Sprites: make(map[Gender]string)}
	for f := range it.Rules {
		it.Rules[f] = NoRule
	}
	return it
}

// WithSprite sets the sprite path for a gender.
func (it *ItemInfo) WithSprite(g Gender, path string) *ItemInfo {
	it.Sprites[g] = path
	return it
}

// DrawBefore declares, for the given facings (all when none given), that this
// item paints immediately before slot.
func (it *ItemInfo) DrawBefore(slot, priority int, facings ...Facing) *ItemInfo {
	for _, f := range facingsOrAll(facings) {
		it.Rules[f].DrawBefore = slot
		it.Rules[f].DrawAfter = NoSlot
		it.Rules[f].Priority = priority
	}
	return it
}

// DrawAfter declares that this item paints immediately after slot.
func (it *ItemInfo) DrawAfter(slot, priority int, facings ...Facing) *ItemInfo {
	for _, f := range facingsOrAll(facings) {
		it.Rules[f].DrawAfter = slot
		it.Rules[f].DrawBefore = NoSlot
		it.Rules[f].Priority = priority
	}
	return it
}

// Hide hides target outright while this item is worn.
func (it *ItemInfo) Hide(target int, facings ...Facing) *ItemInfo {
	for _, f := range facingsOrAll(facings) {
		it.removals(f)[target] = map[ItemID]Replacement{}
	}
	return it
}

// Replace sets the replacement used for target when it currently holds match
// (AnyItem for the fallback entry).
func (it *ItemInfo) Replace(target int, match ItemID, repl Replacement, facings ...Facing) *ItemInfo {
	for _, f := range facingsOrAll(facings) {
		m := it.removals(f)
		if m[target] == nil {
			m[target] = make(map[ItemID]Replacement)
		}
		m[target][match] = repl
	}
	return it
}

func (it *ItemInfo) removals(f Facing) map[int]map[ItemID]Replacement {
	if it.Rules[f].RemoveSprites == nil {
		it.Rules[f].RemoveSprites = make(map[int]map[ItemID]Replacement)
	}
	return it.Rules[f].RemoveSprites
}

// SpritePath returns the sprite for g, falling back to the unspecified variant.
func (it *ItemInfo) SpritePath(g Gender) (string, bool) {
	if p, ok := it.Sprites[g]; ok && p != "" {
		return p, true
	}
	p, ok := it.Sprites[GenderUnspecified]
	return p, ok && p != ""
}

func facingsOrAll(fs []Facing) []Facing {
	if len(fs) > 0 {
		return fs
	}
	all := make([]Facing, NumFacings)
	for i := range all {
		all[i] = Facing(i)
	}
	return all
}

// Lookup is the read side of the item database used during sprite resolution.
// Implementations must not block.
type Lookup interface {
	Rule(id ItemID, f Facing) VisualRule
	SpritePath(id ItemID, g Gender) (string, bool)
}
