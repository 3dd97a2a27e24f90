package systems

import (
	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// MovementSystem integrates position for every entity with Transform and
// Velocity: position += direction * speed * dt. dt is always the fixed
// tick delta; there is no sub-stepping.
type MovementSystem struct {
	BaseSystem
}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{BaseSystem: NewBaseSystem("Movement", PriorityMovement)}
}

var movementMask = ecs.MaskOf(ecs.CTransform, ecs.CVelocity)

func (s *MovementSystem) Update(ctx *Context, dt float64) {
	ctx.Registry.Each(movementMask, func(id ecs.EntityID) {
		transform, err := ecs.GetComponent[*components.Transform](ctx.Registry, id)
		if err != nil {
			return
		}
		velocity, err := ecs.GetComponent[*components.Velocity](ctx.Registry, id)
		if err != nil {
			return
		}
		transform.X += velocity.DX * velocity.Speed * dt
		transform.Y += velocity.DY * velocity.Speed * dt
	})
}
