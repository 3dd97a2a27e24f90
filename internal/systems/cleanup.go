package systems

import (
	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// CleanupSystem is the final pipeline stage: it publishes an
// EntityDestroyed event for every PendingDestroy-marked entity and then
// actually removes it from the registry. Running this last guarantees
// every earlier stage saw a stable, fully-populated entity set this tick.
type CleanupSystem struct {
	BaseSystem
}

func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{BaseSystem: NewBaseSystem("Cleanup", PriorityCleanup)}
}

var pendingDestroyMask = ecs.MaskOf(ecs.CPendingDestroy)

func (s *CleanupSystem) Update(ctx *Context, dt float64) {
	ids := ctx.Registry.Query(pendingDestroyMask)
	for _, id := range ids {
		marker, err := ecs.GetComponent[*components.PendingDestroy](ctx.Registry, id)
		if err != nil {
			continue
		}
		if ctx.Events != nil {
			ctx.Events.PublishDestroyed(ecs.EntityDestroyed{EntityID: id, Reason: marker.Reason})
		}
		ctx.Registry.DestroyEntity(id)
	}
}
