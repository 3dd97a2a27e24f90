package systems

import (
	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// DamageSystem consumes the collision events Collision recorded this tick
// and applies their gameplay consequences: projectile impact damage,
// collectible pickup, and orbital-module contact/blocking. This is the
// "dedicated resolution system immediately after Collision" the source
// left unwired.
type DamageSystem struct {
	BaseSystem
}

func NewDamageSystem() *DamageSystem {
	return &DamageSystem{BaseSystem: NewBaseSystem("Damage", PriorityDamage)}
}

func (s *DamageSystem) Update(ctx *Context, dt float64) {
	for _, ev := range ctx.Collisions {
		s.resolve(ctx, ev.A, ev.B)
		s.resolve(ctx, ev.B, ev.A)
	}
}

// resolve applies the effect of x touching y, from x's perspective. It is
// called once per ordered pair so that, e.g., a projectile-vs-target
// interaction is evaluated regardless of which collider was A or B in the
// recorded event.
func (s *DamageSystem) resolve(ctx *Context, x, y ecs.EntityID) {
	if ecs.HasComponent[*components.PendingDestroy](ctx.Registry, x) {
		return
	}
	proj, isProjectile := ecs.GetComponent[*components.Projectile](ctx.Registry, x)
	if isProjectile == nil {
		s.resolveProjectileHit(ctx, x, proj, y)
		return
	}
	collectible, isCollectible := ecs.GetComponent[*components.Collectible](ctx.Registry, x)
	if isCollectible == nil {
		s.resolvePickup(ctx, x, collectible, y)
		return
	}
	orbital, isOrbital := ecs.GetComponent[*components.OrbitalModule](ctx.Registry, x)
	if isOrbital == nil {
		s.resolveOrbitalContact(ctx, x, orbital, y)
	}
}

func (s *DamageSystem) resolveProjectileHit(ctx *Context, projEntity ecs.EntityID, proj *components.Projectile, target ecs.EntityID) {
	if target == proj.Owner {
		return
	}
	if orbital, err := ecs.GetComponent[*components.OrbitalModule](ctx.Registry, target); err == nil {
		if orbital.BlocksProjectile {
			ecs.SetComponent(ctx.Registry, projEntity, &components.PendingDestroy{Reason: ecs.ReasonManual})
		}
		return
	}
	health, err := ecs.GetComponent[*components.Health](ctx.Registry, target)
	if err != nil {
		return
	}
	_, targetIsPlayer := ecs.GetComponent[*components.Player](ctx.Registry, target)
	if proj.Friendly && targetIsPlayer == nil {
		return
	}
	_, targetIsEnemy := ecs.GetComponent[*components.Enemy](ctx.Registry, target)
	if !proj.Friendly && targetIsEnemy == nil {
		return
	}
	TakeDamage(health, int(proj.Damage))
	ecs.SetComponent(ctx.Registry, projEntity, &components.PendingDestroy{Reason: ecs.ReasonManual})
}

func (s *DamageSystem) resolvePickup(ctx *Context, collectibleEntity ecs.EntityID, c *components.Collectible, target ecs.EntityID) {
	if _, err := ecs.GetComponent[*components.Player](ctx.Registry, target); err != nil {
		return
	}
	switch c.Kind {
	case components.CollectibleHealthPack:
		if h, err := ecs.GetComponent[*components.Health](ctx.Registry, target); err == nil {
			Heal(h, int(c.PayloadValue))
		}
	case components.CollectibleScore:
		if p, err := ecs.GetComponent[*components.Player](ctx.Registry, target); err == nil {
			p.Score += int(c.PayloadValue)
		}
	case components.CollectiblePowerUp, components.CollectibleUpgrade:
		if b, err := ecs.GetComponent[*components.Buff](ctx.Registry, target); err == nil {
			b.Add(c.PayloadBuff, 0, c.PayloadValue, true)
		}
	}
	ecs.SetComponent(ctx.Registry, collectibleEntity, &components.PendingDestroy{Reason: ecs.ReasonManual})
}

func (s *DamageSystem) resolveOrbitalContact(ctx *Context, orbitalEntity ecs.EntityID, o *components.OrbitalModule, target ecs.EntityID) {
	if o.ContactDamage <= 0 {
		return
	}
	if _, err := ecs.GetComponent[*components.Player](ctx.Registry, target); err != nil {
		return
	}
	if h, err := ecs.GetComponent[*components.Health](ctx.Registry, target); err == nil {
		TakeDamage(h, int(o.ContactDamage))
	}
}
