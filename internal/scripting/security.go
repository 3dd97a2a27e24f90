package scripting

import lua "github.com/yuin/gopher-lua"

// applySandbox strips every global that would let a script touch the
// filesystem, spawn processes, or load further code — scripts only ever
// see the facade installed by registerFacade plus the Lua standard
// library's pure functions (string, table, math).
func applySandbox(state *lua.LState) {
	state.SetGlobal("io", lua.LNil)
	state.SetGlobal("os", lua.LNil)
	state.SetGlobal("dofile", lua.LNil)
	state.SetGlobal("loadfile", lua.LNil)
	state.SetGlobal("load", lua.LNil)
	state.SetGlobal("loadstring", lua.LNil)
	state.SetGlobal("debug", lua.LNil)
	state.SetGlobal("package", lua.LNil)
	state.SetGlobal("require", lua.LNil)
}
