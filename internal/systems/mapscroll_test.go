package systems

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

func TestMapScrollSystem_ScrollsNonPlayerEntitiesLeft(t *testing.T) {
	ctx := newTestContext()
	sys := NewMapScrollSystem()
	mapID := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, mapID, &components.MapData{ScrollSpeed: 60}))

	enemy := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, enemy, components.NewTransform(100, 0)))

	player := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, player, components.NewTransform(100, 0)))
	require.NoError(t, ecs.SetComponent(ctx.Registry, player, &components.Player{PlayerID: "p1"}))

	sys.Update(ctx, 1.0)

	enemyTransform, err := ecs.GetComponent[*components.Transform](ctx.Registry, enemy)
	require.NoError(t, err)
	require.InDelta(t, 40.0, enemyTransform.X, 1e-9)

	playerTransform, err := ecs.GetComponent[*components.Transform](ctx.Registry, player)
	require.NoError(t, err)
	require.Equal(t, 100.0, playerTransform.X)
}

func TestMapScrollSystem_MarksCompletedOnceDurationElapses(t *testing.T) {
	ctx := newTestContext()
	sys := NewMapScrollSystem()
	mapID := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, mapID, &components.MapData{Duration: 1}))

	sys.Update(ctx, 1.5)

	mapData, err := ecs.GetComponent[*components.MapData](ctx.Registry, mapID)
	require.NoError(t, err)
	require.True(t, mapData.Completed)
}

func TestMapScrollSystem_NoopsWithNoMapData(t *testing.T) {
	ctx := newTestContext()
	sys := NewMapScrollSystem()
	enemy := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, enemy, components.NewTransform(100, 0)))

	require.NotPanics(t, func() { sys.Update(ctx, 1.0) })
}
