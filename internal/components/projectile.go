package components

import "nova-arena/internal/ecs"

// Projectile is a bullet or bolt in flight. Damage and Friendly determine
// how the Collision/Health systems resolve a hit; Lifetime ticks down to
// zero regardless of whether the projectile ever connects.
type Projectile struct {
	Damage   float64      `json:"damage"`
	Lifetime float64      `json:"lifetime"` // seconds remaining
	Owner    ecs.EntityID `json:"owner"`
	Friendly bool         `json:"friendly"`
}

func (*Projectile) Type() ecs.ComponentType { return ecs.CProjectile }
