package systems

import (
	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// MapScrollSystem advances the active map's clock and scrolls every
// non-player, non-orbital entity left at the map's ScrollSpeed, giving the
// illusion of forward travel through a level that is itself static.
type MapScrollSystem struct {
	BaseSystem
}

func NewMapScrollSystem() *MapScrollSystem {
	return &MapScrollSystem{BaseSystem: NewBaseSystem("MapScroll", PriorityMapScroll)}
}

var (
	mapDataMask  = ecs.MaskOf(ecs.CMapData)
	scrollMask   = ecs.MaskOf(ecs.CTransform)
)

func (s *MapScrollSystem) Update(ctx *Context, dt float64) {
	mapIDs := ctx.Registry.Query(mapDataMask)
	if len(mapIDs) == 0 {
		return
	}
	// At most one active MapData per room; take the first.
	mapData, err := ecs.GetComponent[*components.MapData](ctx.Registry, mapIDs[0])
	if err != nil {
		return
	}
	if mapData.Completed {
		return
	}
	mapData.ElapsedTime += dt
	if mapData.Duration > 0 && mapData.ElapsedTime >= mapData.Duration {
		mapData.Completed = true
	}

	dx := -mapData.ScrollSpeed * dt
	if dx == 0 {
		return
	}
	ctx.Registry.Each(scrollMask, func(id ecs.EntityID) {
		if ecs.HasComponent[*components.Player](ctx.Registry, id) {
			return
		}
		if ecs.HasComponent[*components.OrbitalModule](ctx.Registry, id) {
			return
		}
		transform, err := ecs.GetComponent[*components.Transform](ctx.Registry, id)
		if err != nil {
			return
		}
		transform.X += dx
	})
}
