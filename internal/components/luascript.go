package components

import "nova-arena/internal/ecs"

// LuaScript binds an entity to a script loaded once by the scripting
// package; ScriptID names which loaded chunk to invoke.
type LuaScript struct {
	ScriptID string `json:"scriptId"`
}

func (*LuaScript) Type() ecs.ComponentType { return ecs.CLuaScript }
