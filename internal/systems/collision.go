package systems

import (
	"sort"

	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// CollisionSystem tests every unordered pair of colliding-capable entities
// for AABB overlap and records a CollisionEvent for each overlap found.
// Response (damage, pickup, blocking) happens later in the tick, in
// DamageSystem.
//
// Complexity is O(n²) as specified; entities are sorted by id before
// pairing so the reported collision order is deterministic given a fixed
// entity-id sequence, even though Query's own iteration order is not.
type CollisionSystem struct {
	BaseSystem
}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{BaseSystem: NewBaseSystem("Collision", PriorityCollision)}
}

var collisionMask = ecs.MaskOf(ecs.CTransform, ecs.CCollider)

type colliderEntity struct {
	id        ecs.EntityID
	transform *components.Transform
	collider  *components.Collider
}

func (s *CollisionSystem) Update(ctx *Context, dt float64) {
	ids := ctx.Registry.Query(collisionMask)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	entries := make([]colliderEntity, 0, len(ids))
	for _, id := range ids {
		transform, err := ecs.GetComponent[*components.Transform](ctx.Registry, id)
		if err != nil {
			continue
		}
		collider, err := ecs.GetComponent[*components.Collider](ctx.Registry, id)
		if err != nil {
			continue
		}
		entries = append(entries, colliderEntity{id: id, transform: transform, collider: collider})
	}

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if !components.CanCollide(a.collider.Layer, a.collider.Mask, b.collider.Layer, b.collider.Mask) {
				continue
			}
			if aabbOverlap(a.transform, a.collider, b.transform, b.collider) {
				ctx.Collisions = append(ctx.Collisions, CollisionEvent{A: a.id, B: b.id})
			}
		}
	}
}

func aabbOverlap(ta *components.Transform, ca *components.Collider, tb *components.Transform, cb *components.Collider) bool {
	aMinX := ta.X + ca.OffsetX
	aMinY := ta.Y + ca.OffsetY
	aMaxX := aMinX + ca.Width
	aMaxY := aMinY + ca.Height

	bMinX := tb.X + cb.OffsetX
	bMinY := tb.Y + cb.OffsetY
	bMaxX := bMinX + cb.Width
	bMaxY := bMinY + cb.Height

	return aMinX < bMaxX && aMaxX > bMinX && aMinY < bMaxY && aMaxY > bMinY
}
