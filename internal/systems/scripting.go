package systems

import (
	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
)

// ScriptingSystem hands every LuaScript-tagged entity to ctx.Scripts for
// this tick's update. With no runner set, the stage does nothing. A
// failing script is handled by the runner, which logs and swallows the
// error per entity rather than aborting the tick: a bad script must never
// take down the room.
type ScriptingSystem struct {
	BaseSystem
}

func NewScriptingSystem() *ScriptingSystem {
	return &ScriptingSystem{BaseSystem: NewBaseSystem("Scripting", PriorityScripting)}
}

var luaScriptMask = ecs.MaskOf(ecs.CLuaScript)

func (s *ScriptingSystem) Update(ctx *Context, dt float64) {
	if ctx.Scripts == nil {
		return
	}
	ctx.Registry.Each(luaScriptMask, func(id ecs.EntityID) {
		script, err := ecs.GetComponent[*components.LuaScript](ctx.Registry, id)
		if err != nil {
			return
		}
		ctx.Scripts.OnUpdate(ctx, id, script.ScriptID, dt)
	})
}
