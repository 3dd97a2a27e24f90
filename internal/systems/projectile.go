package systems

import (
	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// ProjectileSystem ages every in-flight projectile and marks expired ones
// for destruction, independent of whether they ever hit anything.
type ProjectileSystem struct {
	BaseSystem
}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{BaseSystem: NewBaseSystem("Projectile", PriorityProjectile)}
}

var projectileMask = ecs.MaskOf(ecs.CProjectile)

func (s *ProjectileSystem) Update(ctx *Context, dt float64) {
	ctx.Registry.Each(projectileMask, func(id ecs.EntityID) {
		if ecs.HasComponent[*components.PendingDestroy](ctx.Registry, id) {
			return
		}
		proj, err := ecs.GetComponent[*components.Projectile](ctx.Registry, id)
		if err != nil {
			return
		}
		proj.Lifetime -= dt
		if proj.Lifetime <= 0 {
			ecs.SetComponent(ctx.Registry, id, &components.PendingDestroy{Reason: ecs.ReasonExpired})
		}
	})
}
