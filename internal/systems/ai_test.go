package systems

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

func TestAISystem_RequestsFireOnceIntervalElapses(t *testing.T) {
	ctx := newTestContext()
	sys := NewAISystem()
	id := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, id, &components.Enemy{Kind: components.EnemyBasic}))
	require.NoError(t, ecs.SetComponent(ctx.Registry, id, &components.Weapon{FireRate: 1, BaseFireRate: 1}))

	sys.Update(ctx, 1.0)
	weapon, err := ecs.GetComponent[*components.Weapon](ctx.Registry, id)
	require.NoError(t, err)
	require.False(t, weapon.RequestToFire)

	sys.Update(ctx, 0.5)
	require.True(t, weapon.RequestToFire)
}

func TestAISystem_LeavesScriptedEnemiesAlone(t *testing.T) {
	ctx := newTestContext()
	sys := NewAISystem()
	id := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, id, &components.Enemy{Kind: components.EnemyBasic}))
	require.NoError(t, ecs.SetComponent(ctx.Registry, id, &components.Weapon{FireRate: 1, BaseFireRate: 1}))
	require.NoError(t, ecs.SetComponent(ctx.Registry, id, &components.LuaScript{ScriptID: "boss.lua"}))

	sys.Update(ctx, 10.0)

	weapon, err := ecs.GetComponent[*components.Weapon](ctx.Registry, id)
	require.NoError(t, err)
	require.False(t, weapon.RequestToFire)
}
