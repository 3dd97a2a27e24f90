// Package ecs implements the entity-component-system core: opaque entity
// identifiers, a signature bitset per entity, per-type component storage,
// and mask-based queries. Components are data only; behavior lives in the
// systems package.
package ecs

import "math/rand/v2"

// EntityID is an opaque, non-zero identifier. Zero is reserved as "no
// entity" and is never handed out by the registry.
type EntityID uint32

// InvalidEntityID is the reserved zero value meaning "no entity".
const InvalidEntityID EntityID = 0

// ComponentType indexes a single bit in a Signature. Slots are assigned at
// compile time below, not discovered at runtime, so two processes compiled
// from the same source always agree on the mapping without negotiation.
type ComponentType uint8

const (
	CTransform ComponentType = iota
	CVelocity
	CHealth
	CCollider
	CPlayer
	CEnemy
	CProjectile
	CWeapon
	CBuff
	CCollectible
	COrbitalModule
	CAnimation
	CAnimationSet
	CSprite
	CPendingDestroy
	CSpawner
	CMapData
	CLuaScript

	numComponentTypes
)

// MaxComponentTypes is the hard ceiling a 32-bit Signature can address.
const MaxComponentTypes = 32

func init() {
	if numComponentTypes > MaxComponentTypes {
		panic("ecs: registered component types exceed Signature width")
	}
}

var componentTypeNames = [numComponentTypes]string{
	CTransform:      "Transform",
	CVelocity:       "Velocity",
	CHealth:         "Health",
	CCollider:       "Collider",
	CPlayer:         "Player",
	CEnemy:          "Enemy",
	CProjectile:     "Projectile",
	CWeapon:         "Weapon",
	CBuff:           "Buff",
	CCollectible:    "Collectible",
	COrbitalModule:  "OrbitalModule",
	CAnimation:      "Animation",
	CAnimationSet:   "AnimationSet",
	CSprite:         "Sprite",
	CPendingDestroy: "PendingDestroy",
	CSpawner:        "Spawner",
	CMapData:        "MapData",
	CLuaScript:      "LuaScript",
}

// String returns the human-readable name of a component type, or
// "Unknown" for an out-of-range value.
func (c ComponentType) String() string {
	if int(c) < 0 || int(c) >= len(componentTypeNames) {
		return "Unknown"
	}
	return componentTypeNames[c]
}

// Component is implemented by a pointer to every data-only component
// struct. Type must not dereference the receiver so it is safe to call on
// a nil pointer (used by the registry's zero-value plumbing).
type Component interface {
	Type() ComponentType
}

// newEntityID draws a non-zero id from rng and retries on the rare
// collision with an id already live in used. rng is supplied by the
// registry so that a fixed seed reproduces an identical sequence of ids
// across runs.
func newEntityID(rng *rand.Rand, used map[EntityID]Signature) EntityID {
	for {
		id := EntityID(rng.Uint32())
		if id == InvalidEntityID {
			continue
		}
		if _, taken := used[id]; taken {
			continue
		}
		return id
	}
}
