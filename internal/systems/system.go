// Package systems implements the fixed-order per-tick pipeline: stateless
// processors that read and mutate components through the ecs package.
// A per-entity failure (such as a missing component) makes a system skip
// that entity and go on; it is never a panic, and these skips are not
// logged. The pipeline's per-entity fault isolation is ordinary error
// handling, not a recover() shim.
package systems

import (
	"math/rand/v2"

	"github.com/rs/zerolog"

	"nova-arena/internal/ecs"
)

// Bounds is the rectangle used by the Boundary system, expanded by
// Margin on every side before an entity is considered out of bounds.
type Bounds struct {
	Width, Height, Margin float64
}

// CollisionEvent is recorded by the Collision system and consumed by the
// Damage system later in the same tick.
type CollisionEvent struct {
	A, B ecs.EntityID
}

// Context bundles the per-room state every system needs. It is rebuilt
// once per room, not per tick; Collisions is cleared at the start of each
// tick by the pipeline.
type Context struct {
	Registry   *ecs.Registry
	Events     *ecs.EventBus
	Bounds     Bounds
	Rand       *rand.Rand
	Log        zerolog.Logger
	Collisions []CollisionEvent
	Scripts    ScriptRunner
}

// ScriptRunner is the facade the Scripting system drives; it is an
// interface here so systems does not import the scripting package
// directly (scripting imports ecs/components, not the other way around).
type ScriptRunner interface {
	OnUpdate(ctx *Context, entity ecs.EntityID, scriptID string, dt float64)
}

// System is one stage of the pipeline: a pure function of the registry
// and the fixed tick delta.
type System interface {
	Name() string
	Update(ctx *Context, dt float64)
}

// Priority mirrors the fixed order from the pipeline specification; it
// exists for logging/metrics labeling, not for runtime ordering decisions
// (the pipeline's order is fixed by construction, not sorted by priority).
type Priority int

const (
	PriorityMovement Priority = iota
	PriorityCollision
	PriorityDamage
	PriorityHealth
	PrioritySpawn
	PriorityAI
	PriorityProjectile
	PriorityBoundary
	PriorityWeapon
	PriorityOrbital
	PriorityScripting
	PriorityBuff
	PriorityMapScroll
	PriorityCleanup
)

// BaseSystem carries the bookkeeping common to every system: a name for
// logging/metrics and an enabled flag a room can use to toggle a stage
// (e.g. disabling scripting for a map with no scripted entities).
type BaseSystem struct {
	name     string
	priority Priority
	enabled  bool
}

// NewBaseSystem returns an enabled system stub with the given name/priority.
func NewBaseSystem(name string, priority Priority) BaseSystem {
	return BaseSystem{name: name, priority: priority, enabled: true}
}

func (b *BaseSystem) Name() string       { return b.name }
func (b *BaseSystem) Priority() Priority { return b.priority }
func (b *BaseSystem) Enabled() bool      { return b.enabled }
func (b *BaseSystem) SetEnabled(v bool)  { b.enabled = v }
