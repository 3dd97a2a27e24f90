package components

import "nova-arena/internal/ecs"

// OrbitalModule is a satellite entity whose position is kinematically
// derived from a parent entity's Transform plus an angular offset; see
// the Orbital system.
type OrbitalModule struct {
	Parent           ecs.EntityID `json:"parent"`
	Radius           float64      `json:"radius"`
	AngularVelocity  float64      `json:"angularVelocity"` // radians/s
	Angle            float64      `json:"angle"`           // radians
	ContactDamage    float64      `json:"contactDamage"`
	BlocksProjectile bool         `json:"blocksProjectile"`
}

func (*OrbitalModule) Type() ecs.ComponentType { return ecs.COrbitalModule }
