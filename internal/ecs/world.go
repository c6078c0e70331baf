package ecs

import "slices"

// World holds the live entities of one map session and their components.
type World struct {
	nextID EntityID
	alive  map[EntityID]struct{}
	stores map[ComponentType]map[EntityID]Component
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID: 1,
		alive:  make(map[EntityID]struct{}),
		stores: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = struct{}{}
	return id
}

// DestroyEntity forgets the entity and every component attached to it.
// Destroying an unknown entity is a no-op and reports false.
func (w *World) DestroyEntity(id EntityID) bool {
	if _, ok := w.alive[id]; !ok {
		return false
	}
	delete(w.alive, id)
	for _, store := range w.stores {
		delete(store, id)
	}
	return true
}

// Alive reports whether the entity exists.
func (w *World) Alive(id EntityID) bool {
	_, ok := w.alive[id]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.alive) }

// Clear destroys every entity. IDs keep increasing afterwards.
func (w *World) Clear() {
	clear(w.alive)
	clear(w.stores)
}

// Add attaches a component to an entity, replacing one of the same type.
// Adding to an unknown entity is ignored.
func (w *World) Add(id EntityID, c Component) {
	if !w.Alive(id) {
		return
	}
	t := c.Type()
	if w.stores[t] == nil {
		w.stores[t] = make(map[EntityID]Component)
	}
	w.stores[t][id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	return w.stores[t][id]
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	delete(w.stores[t], id)
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	_, ok := w.stores[t][id]
	return ok
}

// Query returns, in ascending ID order, every live entity that has all the
// listed component types.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Scan the smallest store.
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.stores[t]) < len(w.stores[smallest]) {
			smallest = t
		}
	}
	var result []EntityID
	for id := range w.stores[smallest] {
		if !w.Alive(id) {
			continue
		}
		match := true
		for _, t := range types {
			if t != smallest && !w.Has(id, t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}
