// Package ecs is the entity store a map session keeps its actors in.
package ecs

// EntityID identifies an actor within one session. IDs are never reused, so
// a stale ID held by the z-index cannot alias a newer actor.
type EntityID uint64

// NilEntity is the zero value; no valid entity has this ID.
const NilEntity EntityID = 0

// ComponentType is a small integer key used to store/retrieve components.
type ComponentType uint8

// Component is implemented by every data struct stored in the world.
type Component interface {
	Type() ComponentType
}
