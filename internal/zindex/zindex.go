// Package zindex keeps the live actors of one map ordered by depth key.
package zindex

import (
	"cmp"
	"slices"

	"fringe-client/internal/ecs"
)

// Category selects an actor's depth offset.
type Category uint8

const (
	Standing Category = iota
	Corpse
	FloorItem
	Effect

	numCategories
)

func (c Category) String() string {
	switch c {
	case Standing:
		return "standing"
	case Corpse:
		return "corpse"
	case FloorItem:
		return "floor-item"
	case Effect:
		return "effect"
	}
	return "unknown"
}

// Depths holds the depth offset of each category. A larger offset gives a
// smaller key, so the actor paints earlier (further back).
type Depths [numCategories]int

// DefaultDepths puts corpses and floor items corpse pixels behind standing
// actors on the same Y, and effects the same distance in front.
func DefaultDepths(corpse int) Depths {
	var d Depths
	d[Standing] = 0
	d[Corpse] = corpse
	d[FloorItem] = corpse
	d[Effect] = -corpse
	return d
}

// Key returns the sort key of an actor at world pixel row pixelY.
func (d Depths) Key(pixelY int, c Category) int {
	if c >= numCategories {
		return pixelY
	}
	return pixelY - d[c]
}

// Entry is one indexed actor.
type Entry struct {
	ID  ecs.EntityID
	Key int
	seq uint64
}

// Index is a depth-ordered multiset of actors. Keys may be changed freely;
// the order is only guaranteed after Sort. Equal keys keep insertion order.
type Index struct {
	entries []Entry
	pos     map[ecs.EntityID]int
	nextSeq uint64
	dirty   bool
}

// New returns an empty index.
func New() *Index {
	return &Index{pos: make(map[ecs.EntityID]int)}
}

// Insert adds id with key. An id already present is re-keyed instead and
// Insert reports false.
func (x *Index) Insert(id ecs.EntityID, key int) bool {
	if i, ok := x.pos[id]; ok {
		x.setKey(i, key)
		return false
	}
	x.pos[id] = len(x.entries)
	x.entries = append(x.entries, Entry{ID: id, Key: key, seq: x.nextSeq})
	x.nextSeq++
	x.dirty = true
	return true
}

// Remove drops id. It reports whether id was present.
func (x *Index) Remove(id ecs.EntityID) bool {
	i, ok := x.pos[id]
	if !ok {
		return false
	}
	x.entries = slices.Delete(x.entries, i, i+1)
	delete(x.pos, id)
	for j := i; j < len(x.entries); j++ {
		x.pos[x.entries[j].ID] = j
	}
	return true
}

// Rekey changes the key of id. It reports whether id was present.
func (x *Index) Rekey(id ecs.EntityID, key int) bool {
	i, ok := x.pos[id]
	if !ok {
		return false
	}
	x.setKey(i, key)
	return true
}

func (x *Index) setKey(i, key int) {
	if x.entries[i].Key != key {
		x.entries[i].Key = key
		x.dirty = true
	}
}

// Update re-keys every entry with keyOf and sorts.
func (x *Index) Update(keyOf func(ecs.EntityID) int) {
	for i := range x.entries {
		x.setKey(i, keyOf(x.entries[i].ID))
	}
	x.Sort()
}

// Sort orders entries by key, then by insertion order.
func (x *Index) Sort() {
	if !x.dirty {
		return
	}
	slices.SortFunc(x.entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Key, b.Key); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	for i, e := range x.entries {
		x.pos[e.ID] = i
	}
	x.dirty = false
}

// Sorted reports whether the entries are in key order.
func (x *Index) Sorted() bool { return !x.dirty }

// Entries returns the entries in their current order. The slice is owned by
// the index and valid until the next mutation.
func (x *Index) Entries() []Entry { return x.entries }

// Has reports whether id is indexed.
func (x *Index) Has(id ecs.EntityID) bool {
	_, ok := x.pos[id]
	return ok
}

// Key returns the current key of id.
func (x *Index) Key(id ecs.EntityID) (int, bool) {
	i, ok := x.pos[id]
	if !ok {
		return 0, false
	}
	return x.entries[i].Key, true
}

// Len returns the number of indexed actors.
func (x *Index) Len() int { return len(x.entries) }

// Clear removes every entry.
func (x *Index) Clear() {
	x.entries = x.entries[:0]
	clear(x.pos)
	x.dirty = false
}
