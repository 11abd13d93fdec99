package event

import (
	"context"
	"fmt"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// DefaultInstructionLimit caps Lua opcodes per consequence script, so a
// content author's infinite loop cannot stall the tick loop.
const DefaultInstructionLimit = 100_000

// countingContext cancels itself after Done() has been called limit times.
// GopherLua's main loop calls Done() once per opcode, making this an exact
// instruction-count limit.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

func (c *countingContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

func newCountingContext(limit int) context.Context {
	base, cancel := context.WithCancel(context.Background())
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &countingContext{Context: base, cancel: cancel, remaining: rem}
}

// ScriptRunner executes inline Lua consequence scripts in a sandbox. Each
// Run gets a fresh VM with only the safe stdlib and an engine.* table bound
// to the Sink; events fire rarely enough that VM reuse isn't worth the
// cross-event state risk.
type ScriptRunner struct {
	instLimit int
	logger    *zap.Logger
}

// NewScriptRunner builds a runner. instLimit <= 0 uses
// DefaultInstructionLimit.
//
// Precondition: logger must be non-nil.
func NewScriptRunner(instLimit int, logger *zap.Logger) *ScriptRunner {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	return &ScriptRunner{instLimit: instLimit, logger: logger}
}

// Run executes source against s. Lua runtime errors (including the opcode
// limit firing) are returned after any side effects already performed;
// consequences are not transactional.
func (r *ScriptRunner) Run(source string, s Sink) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetContext(newCountingContext(r.instLimit))

	r.registerEngine(L, s)

	if err := L.DoString(source); err != nil {
		r.logger.Warn("event script failed", zap.Error(err))
		return fmt.Errorf("event script: %w", err)
	}
	return nil
}

// registerEngine binds the engine.* callback table to s.
func (r *ScriptRunner) registerEngine(L *lua.LState, s Sink) {
	engine := L.NewTable()

	L.SetField(engine, "coins", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(s.Coins()))
		return 1
	}))
	L.SetField(engine, "grant_coins", L.NewFunction(func(L *lua.LState) int {
		s.AddCoins(float64(L.CheckNumber(1)))
		return 0
	}))
	L.SetField(engine, "heal_percent", L.NewFunction(func(L *lua.LState) int {
		s.HealPlayerPercent(float64(L.CheckNumber(1)))
		return 0
	}))
	L.SetField(engine, "damage_enemy_percent", L.NewFunction(func(L *lua.LState) int {
		s.DamageEnemyPercent(float64(L.CheckNumber(1)))
		return 0
	}))
	L.SetField(engine, "set_flag", L.NewFunction(func(L *lua.LState) int {
		s.SetFlag(L.CheckString(1))
		return 0
	}))
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		s.Log("info", L.CheckString(1))
		return 0
	}))

	L.SetGlobal("engine", engine)
}
