package scripting

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
	"nova-arena/internal/systems"
)

func newTestContext() *systems.Context {
	return &systems.Context{
		Registry: ecs.NewRegistry(1),
		Events:   ecs.NewEventBus(),
		Bounds:   systems.Bounds{Width: 800, Height: 600, Margin: 64},
	}
}

func TestBridge_OnUpdateMovesEntityViaVelocity(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	require.NoError(t, b.LoadSource("seek", `
		function onUpdate(entity, dt)
			ecs.set_velocity(entity, 1, 0)
		end
	`))

	ctx := newTestContext()
	id := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, id, components.NewTransform(0, 0)))
	require.NoError(t, ecs.SetComponent(ctx.Registry, id, &components.Velocity{Speed: 50, BaseSpeed: 50}))

	b.OnUpdate(ctx, id, "seek", 1.0/60)

	v, err := ecs.GetComponent[*components.Velocity](ctx.Registry, id)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.DX)
	assert.Equal(t, 0.0, v.DY)
}

func TestBridge_UnknownScriptIDIsSwallowed(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	ctx := newTestContext()
	id := ctx.Registry.NewEntity()

	assert.NotPanics(t, func() {
		b.OnUpdate(ctx, id, "does-not-exist", 1.0/60)
	})
}

func TestBridge_RuntimeErrorIsSwallowed(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	require.NoError(t, b.LoadSource("broken", `
		function onUpdate(entity, dt)
			error("boom")
		end
	`))

	ctx := newTestContext()
	id := ctx.Registry.NewEntity()

	assert.NotPanics(t, func() {
		b.OnUpdate(ctx, id, "broken", 1.0/60)
	})
}

func TestBridge_SandboxBlocksFileAccess(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	require.NoError(t, b.LoadSource("hostile", `
		function onUpdate(entity, dt)
			if io ~= nil then
				error("io should be sandboxed")
			end
			if os ~= nil then
				error("os should be sandboxed")
			end
		end
	`))

	ctx := newTestContext()
	id := ctx.Registry.NewEntity()
	b.OnUpdate(ctx, id, "hostile", 1.0/60)

	assert.Equal(t, lua.LNil, b.state.GetGlobal("io"))
	assert.Equal(t, lua.LNil, b.state.GetGlobal("os"))
}

func TestBridge_NearestPlayerFindsClosest(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	require.NoError(t, b.LoadSource("chase", `
		found = false
		function onUpdate(entity, dt)
			local pid, x, y = ecs.nearest_player(entity)
			if pid ~= nil then
				found = pid
			end
		end
	`))

	ctx := newTestContext()
	player := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, player, components.NewTransform(100, 100)))
	require.NoError(t, ecs.SetComponent(ctx.Registry, player, &components.Player{PlayerID: "p1"}))

	far := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, far, components.NewTransform(500, 500)))
	require.NoError(t, ecs.SetComponent(ctx.Registry, far, &components.Player{PlayerID: "p2"}))

	enemy := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, enemy, components.NewTransform(0, 0)))

	b.OnUpdate(ctx, enemy, "chase", 1.0/60)

	assert.Equal(t, lua.LNumber(player), b.state.GetGlobal("found"))
}

func TestBridge_SelfDestructMarksPendingDestroy(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	require.NoError(t, b.LoadSource("suicide", `
		function onUpdate(entity, dt)
			ecs.self_destruct(entity)
		end
	`))

	ctx := newTestContext()
	id := ctx.Registry.NewEntity()
	b.OnUpdate(ctx, id, "suicide", 1.0/60)

	assert.True(t, ecs.HasComponent[*components.PendingDestroy](ctx.Registry, id))
}
