package systems

import (
	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// aiFireInterval is how often an enemy without a scripted behavior
// requests a shot, in seconds.
const aiFireInterval = 1.5

// AISystem provides the default enemy behavior: drift in the direction
// Velocity already points (set at spawn time) and periodically request a
// shot from any Weapon the enemy carries. Entities with a LuaScript
// component are left alone here; ScriptingSystem drives them instead.
type AISystem struct {
	BaseSystem
	clocks map[ecs.EntityID]float64
}

func NewAISystem() *AISystem {
	return &AISystem{
		BaseSystem: NewBaseSystem("AI", PriorityAI),
		clocks:     make(map[ecs.EntityID]float64),
	}
}

var aiMask = ecs.MaskOf(ecs.CEnemy)

func (s *AISystem) Update(ctx *Context, dt float64) {
	live := make(map[ecs.EntityID]bool)
	ctx.Registry.Each(aiMask, func(id ecs.EntityID) {
		live[id] = true
		if ecs.HasComponent[*components.LuaScript](ctx.Registry, id) {
			return
		}
		weapon, err := ecs.GetComponent[*components.Weapon](ctx.Registry, id)
		if err != nil {
			return
		}
		elapsed := s.clocks[id] + dt
		if elapsed >= aiFireInterval {
			weapon.RequestToFire = true
			elapsed = 0
		} else {
			weapon.RequestToFire = false
		}
		s.clocks[id] = elapsed
	})

	for id := range s.clocks {
		if !live[id] {
			delete(s.clocks, id)
		}
	}
}
