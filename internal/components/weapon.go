package components

import "nova-arena/internal/ecs"

// ChargeState is the weapon's charge state machine: Idle -> Charging ->
// Released -> Idle, driven by the Weapon system each tick.
type ChargeState int

const (
	ChargeIdle ChargeState = iota
	ChargeCharging
	ChargeReleased
)

// Weapon holds both the "base" stats (unmodified by buffs) and the
// current, buff-derived stats, plus charge/cooldown state.
type Weapon struct {
	FireRate        float64     `json:"fireRate"` // shots/s, current
	BaseFireRate    float64     `json:"baseFireRate"`
	Cooldown        float64     `json:"cooldown"` // seconds remaining
	ProjectileType  int         `json:"projectileType"`
	Damage          float64     `json:"damage"` // current
	BaseDamage      float64     `json:"baseDamage"`
	RequestToFire   bool        `json:"requestToFire"`
	State           ChargeState `json:"state"`
	ChargeLevel     float64     `json:"chargeLevel"` // [0,1]
	ChargeRate      float64     `json:"chargeRate"`  // per second
	ProjectileSpeed float64     `json:"projectileSpeed"`
}

func (*Weapon) Type() ecs.ComponentType { return ecs.CWeapon }
