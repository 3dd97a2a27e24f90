// Package components defines the data-only component set attached to
// entities. No component holds behavior; systems in the systems package
// read and mutate these structs each tick.
package components

import "nova-arena/internal/ecs"

// Transform positions an entity in the 2D world.
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"` // degrees
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
}

func (*Transform) Type() ecs.ComponentType { return ecs.CTransform }

// NewTransform returns a Transform at pos with identity rotation/scale.
func NewTransform(x, y float64) *Transform {
	return &Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}
