package scripting

import (
	"math"

	lua "github.com/yuin/gopher-lua"

	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// registerFacade installs the "ecs" and "log" globals every sandboxed
// script sees. Every function closes over the bridge so it can read the
// current call frame (ctx/entity) set by Bridge.OnUpdate — the facade is
// rebound to a different entity on every call, never per-script state.
func registerFacade(state *lua.LState, b *Bridge) {
	ecsTable := state.NewTable()
	state.SetGlobal("ecs", ecsTable)

	state.SetField(ecsTable, "has_position", state.NewFunction(b.luaHasPosition))
	state.SetField(ecsTable, "get_position", state.NewFunction(b.luaGetPosition))
	state.SetField(ecsTable, "set_velocity", state.NewFunction(b.luaSetVelocity))
	state.SetField(ecsTable, "get_health", state.NewFunction(b.luaGetHealth))
	state.SetField(ecsTable, "request_fire", state.NewFunction(b.luaRequestFire))
	state.SetField(ecsTable, "nearest_player", state.NewFunction(b.luaNearestPlayer))
	state.SetField(ecsTable, "distance", state.NewFunction(b.luaDistance))
	state.SetField(ecsTable, "self_destruct", state.NewFunction(b.luaSelfDestruct))

	logTable := state.NewTable()
	state.SetGlobal("log", logTable)
	state.SetField(logTable, "info", state.NewFunction(b.luaLogInfo))
}

func (b *Bridge) luaHasPosition(L *lua.LState) int {
	entity := ecs.EntityID(L.CheckNumber(1))
	L.Push(lua.LBool(ecs.HasComponent[*components.Transform](b.frame.ctx.Registry, entity)))
	return 1
}

func (b *Bridge) luaGetPosition(L *lua.LState) int {
	entity := ecs.EntityID(L.CheckNumber(1))
	t, err := ecs.GetComponent[*components.Transform](b.frame.ctx.Registry, entity)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LNil)
		return 2
	}
	L.Push(lua.LNumber(t.X))
	L.Push(lua.LNumber(t.Y))
	return 2
}

func (b *Bridge) luaSetVelocity(L *lua.LState) int {
	entity := ecs.EntityID(L.CheckNumber(1))
	dx := float64(L.CheckNumber(2))
	dy := float64(L.CheckNumber(3))
	v, err := ecs.GetComponent[*components.Velocity](b.frame.ctx.Registry, entity)
	if err != nil {
		L.Push(lua.LBool(false))
		return 1
	}
	v.DX, v.DY = dx, dy
	L.Push(lua.LBool(true))
	return 1
}

func (b *Bridge) luaGetHealth(L *lua.LState) int {
	entity := ecs.EntityID(L.CheckNumber(1))
	h, err := ecs.GetComponent[*components.Health](b.frame.ctx.Registry, entity)
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(h.Current))
	return 1
}

func (b *Bridge) luaRequestFire(L *lua.LState) int {
	entity := ecs.EntityID(L.CheckNumber(1))
	want := L.CheckBool(2)
	w, err := ecs.GetComponent[*components.Weapon](b.frame.ctx.Registry, entity)
	if err != nil {
		L.Push(lua.LBool(false))
		return 1
	}
	w.RequestToFire = want
	L.Push(lua.LBool(true))
	return 1
}

// luaNearestPlayer returns the entity id, x, y of the closest Player
// entity to the scripted entity, or nil if there are none.
func (b *Bridge) luaNearestPlayer(L *lua.LState) int {
	entity := ecs.EntityID(L.CheckNumber(1))
	selfT, err := ecs.GetComponent[*components.Transform](b.frame.ctx.Registry, entity)
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}

	var best ecs.EntityID
	bestDist := math.MaxFloat64
	var bestT *components.Transform

	mask := ecs.MaskOf(ecs.CPlayer, ecs.CTransform)
	b.frame.ctx.Registry.Each(mask, func(id ecs.EntityID) {
		t, err := ecs.GetComponent[*components.Transform](b.frame.ctx.Registry, id)
		if err != nil {
			return
		}
		d := math.Hypot(t.X-selfT.X, t.Y-selfT.Y)
		if d < bestDist {
			bestDist = d
			best = id
			bestT = t
		}
	})

	if bestT == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(best))
	L.Push(lua.LNumber(bestT.X))
	L.Push(lua.LNumber(bestT.Y))
	return 3
}

func (b *Bridge) luaDistance(L *lua.LState) int {
	x1 := float64(L.CheckNumber(1))
	y1 := float64(L.CheckNumber(2))
	x2 := float64(L.CheckNumber(3))
	y2 := float64(L.CheckNumber(4))
	L.Push(lua.LNumber(math.Hypot(x2-x1, y2-y1)))
	return 1
}

func (b *Bridge) luaSelfDestruct(L *lua.LState) int {
	entity := ecs.EntityID(L.CheckNumber(1))
	_ = ecs.SetComponent(b.frame.ctx.Registry, entity, &components.PendingDestroy{Reason: ecs.ReasonKilled})
	return 0
}

func (b *Bridge) luaLogInfo(L *lua.LState) int {
	msg := L.CheckString(1)
	b.log.Info().Str("source", "script").Msg(msg)
	return 0
}
