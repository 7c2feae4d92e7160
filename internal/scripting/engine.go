// Package scripting wraps gopher-lua for behavior components. Each engine
// owns one Lua VM loaded with a single source chunk whose global functions
// serve as lifecycle hooks.
package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

// Engine wraps a single gopher-lua VM. Single-goroutine access only; the
// composition core is single-threaded by contract.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// New creates an engine with an empty VM. A nil logger is replaced with a
// no-op logger.
func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))
	return &Engine{vm: vm, log: log}
}

// Load executes a source chunk, defining the script's hook functions.
func (e *Engine) Load(source string) error {
	if err := e.vm.DoString(source); err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	return nil
}

// Has reports whether the script defines a global function fn.
func (e *Engine) Has(fn string) bool {
	_, ok := e.vm.GetGlobal(fn).(*lua.LFunction)
	return ok
}

// Call invokes the global function fn with dt seconds as its single
// argument and returns the truthiness of the first return value. A
// missing function is not an error; it reports false.
func (e *Engine) Call(fn string, dt float64) (bool, error) {
	g, ok := e.vm.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		return false, nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      g,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(dt)); err != nil {
		e.log.Error("lua call error", zap.String("fn", fn), zap.Error(err))
		return false, fmt.Errorf("call %s: %w", fn, err)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsBool(ret), nil
}

// Number returns the value of a global number variable, for inspection
// from tests and tooling.
func (e *Engine) Number(name string) (float64, bool) {
	v, ok := e.vm.GetGlobal(name).(lua.LNumber)
	return float64(v), ok
}

// Close shuts down the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
