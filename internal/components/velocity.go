package components

import "nova-arena/internal/ecs"

// Velocity is a unit direction plus a scalar speed; Movement integrates
// Transform by direction*speed*dt each tick. BaseSpeed is the
// buff-unmodified value Speed is re-derived from every tick.
type Velocity struct {
	DX        float64 `json:"dx"`
	DY        float64 `json:"dy"`
	Speed     float64 `json:"speed"`
	BaseSpeed float64 `json:"baseSpeed"`
}

func (*Velocity) Type() ecs.ComponentType { return ecs.CVelocity }
