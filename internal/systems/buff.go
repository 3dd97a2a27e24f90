package systems

import (
	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// BuffSystem ages active buffs, drops expired non-permanent ones, applies
// continuous effects (regen, shield-as-invincibility), and re-derives
// current Velocity/Weapon stats from their buff-unmodified base values so
// multiplier buffs never compound tick over tick.
type BuffSystem struct {
	BaseSystem
}

func NewBuffSystem() *BuffSystem {
	return &BuffSystem{BaseSystem: NewBaseSystem("Buff", PriorityBuff)}
}

var buffMask = ecs.MaskOf(ecs.CBuff)

func (s *BuffSystem) Update(ctx *Context, dt float64) {
	ctx.Registry.Each(buffMask, func(id ecs.EntityID) {
		buff, err := ecs.GetComponent[*components.Buff](ctx.Registry, id)
		if err != nil {
			return
		}

		health, hasHealth := ecs.GetComponent[*components.Health](ctx.Registry, id)
		velocity, hasVelocity := ecs.GetComponent[*components.Velocity](ctx.Registry, id)
		weapon, hasWeapon := ecs.GetComponent[*components.Weapon](ctx.Registry, id)

		speedMult, damageMult, fireRateMult := 1.0, 1.0, 1.0
		shielded := false

		active := buff.Active[:0]
		for _, inst := range buff.Active {
			if !inst.Permanent {
				inst.RemainingDuration -= dt
				if inst.RemainingDuration <= 0 {
					continue
				}
			}
			switch inst.Kind {
			case components.BuffSpeedMultiplier:
				speedMult *= inst.Value
			case components.BuffDamageMultiplier:
				damageMult *= inst.Value
			case components.BuffFireRateMultiplier:
				fireRateMult *= inst.Value
			case components.BuffShield:
				shielded = true
			case components.BuffRegen:
				if hasHealth == nil {
					Heal(health, int(inst.Value*dt))
				}
			}
			active = append(active, inst)
		}
		buff.Active = active

		if shielded && hasHealth == nil {
			health.Invincible = true
			health.InvincibilityRemaining = dt
		}
		if hasVelocity == nil {
			velocity.Speed = velocity.BaseSpeed * speedMult
		}
		if hasWeapon == nil {
			weapon.Damage = weapon.BaseDamage * damageMult
			weapon.FireRate = weapon.BaseFireRate * fireRateMult
		}
	})
}
