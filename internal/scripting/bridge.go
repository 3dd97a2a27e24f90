// Package scripting hosts the sandboxed gopher-lua bridge that drives
// scripted entities: a single VM per bridge, a facade table rebound to
// the current entity/context before every call, and a sandbox that
// strips filesystem, process, and module-loading access.
package scripting

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"github.com/rs/zerolog"

	"nova-arena/internal/ecs"
	"nova-arena/internal/systems"
)

// Bridge implements systems.ScriptRunner: it owns one sandboxed Lua VM,
// compiles each script source once, and re-invokes the compiled chunk's
// onUpdate function for every scripted entity every tick.
type Bridge struct {
	mu      sync.Mutex
	state   *lua.LState
	scripts map[string]*lua.FunctionProto
	log     zerolog.Logger

	frame callFrame
}

// callFrame is the mutable upvalue the facade closures read: which
// entity/context the currently executing Lua call applies to. It is only
// ever touched while Bridge.mu is held.
type callFrame struct {
	ctx    *systems.Context
	entity ecs.EntityID
}

// New returns a Bridge with its sandbox and facade already installed.
func New(log zerolog.Logger) *Bridge {
	state := lua.NewState(lua.Options{SkipOpenLibs: false})
	applySandbox(state)

	b := &Bridge{
		state:   state,
		scripts: make(map[string]*lua.FunctionProto),
		log:     log.With().Str("component", "scripting").Logger(),
	}
	registerFacade(state, b)
	return b
}

// Close releases the underlying Lua state.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Close()
}

// LoadSource compiles source under scriptID, replacing any prior chunk
// with the same ID. It does not execute the chunk; OnUpdate does, once
// per scripted entity per tick.
func (b *Bridge) LoadSource(scriptID, source string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	chunk, err := b.state.LoadString(source)
	if err != nil {
		return fmt.Errorf("compile script %q: %w", scriptID, err)
	}
	b.scripts[scriptID] = chunk.Proto
	return nil
}

// OnUpdate implements systems.ScriptRunner. A script error is logged and
// swallowed: one misbehaving script must never halt the tick for every
// other entity.
func (b *Bridge) OnUpdate(ctx *systems.Context, entity ecs.EntityID, scriptID string, dt float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	proto, ok := b.scripts[scriptID]
	if !ok {
		b.log.Warn().Str("script", scriptID).Msg("no compiled script for id")
		return
	}

	b.frame = callFrame{ctx: ctx, entity: entity}
	defer func() { b.frame = callFrame{} }()

	fn := b.state.NewFunctionFromProto(proto)
	b.state.Push(fn)
	if err := b.state.PCall(0, 0, nil); err != nil {
		b.log.Error().Err(err).Str("script", scriptID).Uint32("entity", uint32(entity)).Msg("script chunk failed")
		return
	}

	onUpdate := b.state.GetGlobal("onUpdate")
	if onUpdate.Type() != lua.LTFunction {
		return
	}
	b.state.Push(onUpdate)
	b.state.Push(lua.LNumber(entity))
	b.state.Push(lua.LNumber(dt))
	if err := b.state.PCall(2, 0, nil); err != nil {
		b.log.Error().Err(err).Str("script", scriptID).Uint32("entity", uint32(entity)).Msg("onUpdate failed")
	}
}
