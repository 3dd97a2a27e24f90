package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

func TestOrbitalSystem_TracksParentPositionAtFixedRadius(t *testing.T) {
	ctx := newTestContext()
	sys := NewOrbitalSystem()

	parent := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, parent, components.NewTransform(100, 100)))

	module := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, module, components.NewTransform(0, 0)))
	require.NoError(t, ecs.SetComponent(ctx.Registry, module, &components.OrbitalModule{Parent: parent, Radius: 50}))

	sys.Update(ctx, 0)

	transform, err := ecs.GetComponent[*components.Transform](ctx.Registry, module)
	require.NoError(t, err)
	dist := math.Hypot(transform.X-100, transform.Y-100)
	require.InDelta(t, 50.0, dist, 1e-9)
}

func TestOrbitalSystem_DestroysModuleWhenParentIsGone(t *testing.T) {
	ctx := newTestContext()
	sys := NewOrbitalSystem()

	module := ctx.Registry.NewEntity()
	require.NoError(t, ecs.SetComponent(ctx.Registry, module, components.NewTransform(0, 0)))
	require.NoError(t, ecs.SetComponent(ctx.Registry, module, &components.OrbitalModule{Parent: ecs.EntityID(99999), Radius: 50}))

	sys.Update(ctx, 1.0/60)

	require.True(t, ecs.HasComponent[*components.PendingDestroy](ctx.Registry, module))
}
