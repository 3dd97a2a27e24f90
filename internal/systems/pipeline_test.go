package systems

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

func TestPipeline_RunsStagesInFixedOrder(t *testing.T) {
	p := NewPipeline()
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	require.Equal(t, []string{
		"Movement", "Collision", "Damage", "Health", "Spawn", "AI",
		"Projectile", "Boundary", "Weapon", "Orbital", "Scripting",
		"Buff", "MapScroll", "Cleanup",
	}, names)
}

func TestPipeline_ResetsCollisionsBeforeEachRun(t *testing.T) {
	p := NewPipeline()
	ctx := newTestContext()
	ctx.Collisions = append(ctx.Collisions, CollisionEvent{A: 1, B: 2})

	p.Run(ctx, 1.0/60)

	require.Empty(t, ctx.Collisions)
}

func TestPipeline_MovementThenCleanupEndToEnd(t *testing.T) {
	p := NewPipeline()
	ctx := newTestContext()
	id := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, id, components.NewTransform(0, 0)))
	require.NoError(t, ecs.SetComponent(ctx.Registry, id, &components.Velocity{DX: 1, Speed: 60}))

	p.Run(ctx, 1.0/60)

	transform, err := ecs.GetComponent[*components.Transform](ctx.Registry, id)
	require.NoError(t, err)
	require.InDelta(t, 1.0, transform.X, 1e-9)
	require.True(t, ctx.Registry.Exists(id))
}
