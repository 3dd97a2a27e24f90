package systems

import (
	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// BoundarySystem marks any entity whose Transform has left the playfield,
// expanded by ctx.Bounds.Margin on every side, for out-of-bounds
// destruction.
type BoundarySystem struct {
	BaseSystem
}

func NewBoundarySystem() *BoundarySystem {
	return &BoundarySystem{BaseSystem: NewBaseSystem("Boundary", PriorityBoundary)}
}

var boundaryMask = ecs.MaskOf(ecs.CTransform)

func (s *BoundarySystem) Update(ctx *Context, dt float64) {
	minX, minY := -ctx.Bounds.Margin, -ctx.Bounds.Margin
	maxX, maxY := ctx.Bounds.Width+ctx.Bounds.Margin, ctx.Bounds.Height+ctx.Bounds.Margin

	ctx.Registry.Each(boundaryMask, func(id ecs.EntityID) {
		if ecs.HasComponent[*components.PendingDestroy](ctx.Registry, id) {
			return
		}
		// Players are never boundary-culled. Input handling does not clamp
		// their position either, so a player may move past the margin
		// without being destroyed.
		if ecs.HasComponent[*components.Player](ctx.Registry, id) {
			return
		}
		transform, err := ecs.GetComponent[*components.Transform](ctx.Registry, id)
		if err != nil {
			return
		}
		if transform.X < minX || transform.X > maxX || transform.Y < minY || transform.Y > maxY {
			ecs.SetComponent(ctx.Registry, id, &components.PendingDestroy{Reason: ecs.ReasonOutOfBounds})
		}
	})
}
