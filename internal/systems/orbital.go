package systems

import (
	"math"

	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// OrbitalSystem advances each orbital module's angle and re-derives its
// world-space Transform from its parent's position, radius, and angle.
// A module whose parent entity no longer exists is destroyed rather than
// left orbiting a void.
type OrbitalSystem struct {
	BaseSystem
}

func NewOrbitalSystem() *OrbitalSystem {
	return &OrbitalSystem{BaseSystem: NewBaseSystem("Orbital", PriorityOrbital)}
}

var orbitalMask = ecs.MaskOf(ecs.COrbitalModule, ecs.CTransform)

func (s *OrbitalSystem) Update(ctx *Context, dt float64) {
	ctx.Registry.Each(orbitalMask, func(id ecs.EntityID) {
		if ecs.HasComponent[*components.PendingDestroy](ctx.Registry, id) {
			return
		}
		module, err := ecs.GetComponent[*components.OrbitalModule](ctx.Registry, id)
		if err != nil {
			return
		}
		if !ctx.Registry.Exists(module.Parent) {
			ecs.SetComponent(ctx.Registry, id, &components.PendingDestroy{Reason: ecs.ReasonManual})
			return
		}
		parentTransform, err := ecs.GetComponent[*components.Transform](ctx.Registry, module.Parent)
		if err != nil {
			ecs.SetComponent(ctx.Registry, id, &components.PendingDestroy{Reason: ecs.ReasonManual})
			return
		}
		module.Angle += module.AngularVelocity * dt

		transform, err := ecs.GetComponent[*components.Transform](ctx.Registry, id)
		if err != nil {
			return
		}
		transform.X = parentTransform.X + module.Radius*math.Cos(module.Angle)
		transform.Y = parentTransform.Y + module.Radius*math.Sin(module.Angle)
	})
}
