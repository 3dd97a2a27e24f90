package systems

import (
	"math"

	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

const (
	chargeThreshold  = 0.5
	chargeDamageGain = 1.5
	chargeSpeedGain  = 0.5

	doubleShotSpread = 7.5
	tripleShotSpread = 15.0
	multiShotSpread  = 15.0
	multiShotArms    = 2 // each side, at multiShotSpread*1..multiShotArms (+-15, +-30), plus the centre shot
)

// WeaponSystem drives the fire-control state machine: Idle while no fire
// request is pending, Charging while the trigger is held and cooldown has
// elapsed, Released (and back to Idle) the tick the trigger is let go,
// spawning one or more projectiles depending on active shot-count buffs.
type WeaponSystem struct {
	BaseSystem
}

func NewWeaponSystem() *WeaponSystem {
	return &WeaponSystem{BaseSystem: NewBaseSystem("Weapon", PriorityWeapon)}
}

var weaponMask = ecs.MaskOf(ecs.CWeapon, ecs.CTransform)

func (s *WeaponSystem) Update(ctx *Context, dt float64) {
	ctx.Registry.Each(weaponMask, func(id ecs.EntityID) {
		weapon, err := ecs.GetComponent[*components.Weapon](ctx.Registry, id)
		if err != nil {
			return
		}
		transform, err := ecs.GetComponent[*components.Transform](ctx.Registry, id)
		if err != nil {
			return
		}

		if weapon.Cooldown > 0 {
			weapon.Cooldown -= dt
			if weapon.Cooldown < 0 {
				weapon.Cooldown = 0
			}
		}

		if !weapon.RequestToFire {
			if weapon.State == components.ChargeCharging {
				weapon.State = components.ChargeReleased
				s.fire(ctx, id, weapon, transform)
				weapon.State = components.ChargeIdle
				weapon.ChargeLevel = 0
				weapon.Cooldown = 1.0 / weapon.FireRate
			}
			return
		}

		if weapon.Cooldown > 0 {
			return
		}
		if weapon.State == components.ChargeIdle {
			weapon.State = components.ChargeCharging
			weapon.ChargeLevel = 0
		}
		if weapon.State == components.ChargeCharging {
			weapon.ChargeLevel += weapon.ChargeRate * dt
			if weapon.ChargeLevel > 1 {
				weapon.ChargeLevel = 1
			}
		}
	})
}

func (s *WeaponSystem) fire(ctx *Context, owner ecs.EntityID, weapon *components.Weapon, ownerTransform *components.Transform) {
	damage := weapon.Damage
	speed := weapon.ProjectileSpeed
	if weapon.ChargeLevel >= chargeThreshold {
		damage *= 1 + weapon.ChargeLevel*chargeDamageGain
		speed *= 1 + weapon.ChargeLevel*chargeSpeedGain
	}

	offsets := []float64{0}
	if buff, err := ecs.GetComponent[*components.Buff](ctx.Registry, owner); err == nil {
		switch {
		case buff.Has(components.BuffMultiShot):
			offsets = []float64{-2 * multiShotSpread, -multiShotSpread, 0, multiShotSpread, 2 * multiShotSpread}
		case buff.Has(components.BuffTripleShot):
			offsets = []float64{-tripleShotSpread, 0, tripleShotSpread}
		case buff.Has(components.BuffDoubleShot):
			offsets = []float64{-doubleShotSpread, doubleShotSpread}
		}
	}

	_, ownerIsPlayer := ecs.GetComponent[*components.Player](ctx.Registry, owner)
	friendly := ownerIsPlayer == nil

	layer := components.LayerEnemyProjectile
	mask := components.LayerPlayer | components.LayerPlayerModule | components.LayerWall
	if friendly {
		layer = components.LayerPlayerProjectile
		mask = components.LayerEnemy | components.LayerWall
	}

	baseAngle := (ownerTransform.Rotation - 90) * math.Pi / 180
	for _, offsetDeg := range offsets {
		angle := baseAngle + offsetDeg*math.Pi/180
		id := ctx.Registry.NewEntity()
		ecs.SetComponent(ctx.Registry, id, components.NewTransform(ownerTransform.X, ownerTransform.Y))
		ecs.SetComponent(ctx.Registry, id, &components.Velocity{
			DX: math.Cos(angle), DY: math.Sin(angle), Speed: speed, BaseSpeed: speed,
		})
		ecs.SetComponent(ctx.Registry, id, &components.Projectile{
			Damage: damage, Lifetime: 3, Owner: owner, Friendly: friendly,
		})
		ecs.SetComponent(ctx.Registry, id, &components.Collider{
			Width: 8, Height: 8, Layer: layer, Mask: mask,
		})
	}
}
