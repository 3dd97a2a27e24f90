package systems

import (
	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// SpawnSystem advances every active Spawner's wave clock, materializing
// each wave's SpawnRequests as concrete enemy entities once their
// individual spawnDelay has elapsed, and moving on to the next wave once
// the current one is fully spawned and its interWaveGap has passed.
type SpawnSystem struct {
	BaseSystem
}

func NewSpawnSystem() *SpawnSystem {
	return &SpawnSystem{BaseSystem: NewBaseSystem("Spawn", PrioritySpawn)}
}

var spawnerMask = ecs.MaskOf(ecs.CSpawner)

func (s *SpawnSystem) Update(ctx *Context, dt float64) {
	ctx.Registry.Each(spawnerMask, func(id ecs.EntityID) {
		spawner, err := ecs.GetComponent[*components.Spawner](ctx.Registry, id)
		if err != nil || !spawner.Active {
			return
		}
		if spawner.CurrentWave >= len(spawner.Waves) {
			spawner.Active = false
			return
		}
		wave := &spawner.Waves[spawner.CurrentWave]
		spawner.ElapsedInWave += dt

		allSpawned := true
		for i := range wave.Requests {
			req := &wave.Requests[i]
			if req.HasSpawned {
				continue
			}
			if spawner.ElapsedInWave < req.SpawnDelay {
				allSpawned = false
				continue
			}
			s.spawnEnemy(ctx, req)
			req.HasSpawned = true
		}

		if allSpawned && spawner.ElapsedInWave >= wave.InterWaveGap+waveLastDelay(wave) {
			spawner.CurrentWave++
			spawner.ElapsedInWave = 0
		}
	})
}

// waveLastDelay is the latest spawnDelay in the wave, so InterWaveGap is
// measured from the last enemy's spawn rather than from wave start.
func waveLastDelay(wave *components.Wave) float64 {
	max := 0.0
	for _, req := range wave.Requests {
		if req.SpawnDelay > max {
			max = req.SpawnDelay
		}
	}
	return max
}

func (s *SpawnSystem) spawnEnemy(ctx *Context, req *components.SpawnRequest) {
	archetype := components.EnemyArchetypes[req.EnemyType]
	health := req.Health
	if health <= 0 {
		health = archetype.Health
	}
	scoreValue := req.ScoreValue
	if scoreValue <= 0 {
		scoreValue = archetype.ScoreValue
	}

	id := ctx.Registry.NewEntity()
	ecs.SetComponent(ctx.Registry, id, components.NewTransform(req.X, req.Y))
	ecs.SetComponent(ctx.Registry, id, &components.Velocity{
		DX: -1, DY: 0, Speed: archetype.Speed, BaseSpeed: archetype.Speed,
	})
	ecs.SetComponent(ctx.Registry, id, components.NewHealth(health))
	ecs.SetComponent(ctx.Registry, id, &components.Enemy{Kind: req.EnemyType, ScoreValue: scoreValue})
	ecs.SetComponent(ctx.Registry, id, &components.Collider{
		Width: archetype.ColliderW, Height: archetype.ColliderH,
		Layer: components.LayerEnemy,
		Mask:  components.LayerPlayer | components.LayerPlayerProjectile | components.LayerWall,
	})
	if req.ScriptPath != "" {
		ecs.SetComponent(ctx.Registry, id, &components.LuaScript{ScriptID: req.ScriptPath})
	}
}
