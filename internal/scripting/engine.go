package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/l1jgo/colshape/internal/colshape"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Lua globals the engine calls into when scripts define them.
const (
	fnTrackedPosition = "get_tracked_position"
	fnOnEnter         = "on_enter_colshape"
	fnOnLeave         = "on_leave_colshape"
)

// Engine wraps a single gopher-lua VM acting as the shape host: scripts
// create and delete shapes through the colshape_* natives, report the
// tracked position and receive enter/leave callbacks. The VM is guarded by
// a mutex because the polling goroutine calls into it.
type Engine struct {
	mu     sync.Mutex
	vm     *lua.LState
	shapes *colshape.Manager
	log    *zap.Logger
}

// NewEngine creates a Lua engine bound to shapes and loads all scripts from
// the given directory. A missing directory loads nothing.
func NewEngine(scriptsDir string, shapes *colshape.Manager, log *zap.Logger) (*Engine, error) {
	e := newEngine(shapes, log)
	if scriptsDir == "" {
		return e, nil
	}
	if err := e.loadDir(scriptsDir); err != nil {
		e.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

func newEngine(shapes *colshape.Manager, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, shapes: shapes, log: log}
	e.registerNatives()
	return e
}

// Close releases the VM.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua source in the engine's VM.
func (e *Engine) DoString(src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vm.DoString(src)
}

// TrackedPosition calls the Lua get_tracked_position function. It reports
// false when the function is missing, fails, or returns nil.
func (e *Engine) TrackedPosition() (colshape.Vector3, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn := e.vm.GetGlobal(fnTrackedPosition)
	if fn.Type() != lua.LTFunction {
		return colshape.Vector3{}, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    3,
		Protect: true,
	}); err != nil {
		e.log.Error("lua "+fnTrackedPosition+" error", zap.Error(err))
		return colshape.Vector3{}, false
	}

	x, xok := e.vm.Get(-3).(lua.LNumber)
	y, yok := e.vm.Get(-2).(lua.LNumber)
	z, zok := e.vm.Get(-1).(lua.LNumber)
	e.vm.Pop(3)

	if !xok || !yok || !zok {
		return colshape.Vector3{}, false
	}
	return colshape.Vector3{X: float64(x), Y: float64(y), Z: float64(z)}, true
}

// OnEnter forwards an enter transition to the Lua on_enter_colshape handler.
func (e *Engine) OnEnter(id string) { e.callHandler(fnOnEnter, id) }

// OnLeave forwards a leave transition to the Lua on_leave_colshape handler.
func (e *Engine) OnLeave(id string) { e.callHandler(fnOnLeave, id) }

func (e *Engine) callHandler(name, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn := e.vm.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LString(id)); err != nil {
		e.log.Error("lua "+name+" error", zap.String("shape", id), zap.Error(err))
	}
}
