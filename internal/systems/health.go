package systems

import (
	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// HealthSystem decrements invincibility timers and marks dead entities
// for destruction. Damage and healing themselves are applied by
// DamageSystem and by collectible pickup handling; this stage only
// advances timers and checks the "current <= 0" destruction condition.
type HealthSystem struct {
	BaseSystem
}

func NewHealthSystem() *HealthSystem {
	return &HealthSystem{BaseSystem: NewBaseSystem("Health", PriorityHealth)}
}

var healthMask = ecs.MaskOf(ecs.CHealth)

func (s *HealthSystem) Update(ctx *Context, dt float64) {
	ctx.Registry.Each(healthMask, func(id ecs.EntityID) {
		h, err := ecs.GetComponent[*components.Health](ctx.Registry, id)
		if err != nil {
			return
		}
		if h.Invincible {
			h.InvincibilityRemaining -= dt
			if h.InvincibilityRemaining <= 0 {
				h.InvincibilityRemaining = 0
				h.Invincible = false
			}
		}
		if h.Current <= 0 && !ecs.HasComponent[*components.PendingDestroy](ctx.Registry, id) {
			ecs.SetComponent(ctx.Registry, id, &components.PendingDestroy{Reason: ecs.ReasonKilled})
		}
	})
}

// TakeDamage applies k points of damage to h, respecting invincibility,
// and returns the actual damage dealt (min(k, current) while vulnerable,
// 0 while invincible).
func TakeDamage(h *components.Health, k int) int {
	if k <= 0 || h.Invincible {
		return 0
	}
	dealt := k
	if dealt > h.Current {
		dealt = h.Current
	}
	h.Current -= dealt
	return dealt
}

// Heal restores up to k points of health, never exceeding Max, and
// returns the amount actually restored.
func Heal(h *components.Health, k int) int {
	if k <= 0 {
		return 0
	}
	before := h.Current
	h.Current += k
	if h.Current > h.Max {
		h.Current = h.Max
	}
	return h.Current - before
}
