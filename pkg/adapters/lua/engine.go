// Package lua runs Lua scripts against the script façades.
//
// Scripts see two globals: vym, the application façade, and map, the façade of
// the focused document (nil if none is open). Operations are fields of those
// tables and may be called with either "." or ":". A reported error aborts the
// script like a Lua error and can be caught with pcall.
package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/sz10101/vym/internal/logging"
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/script"
	lua "github.com/yuin/gopher-lua"
)

// Engine runs Lua scripts. Each run gets a fresh interpreter.
type Engine struct {
	app    *script.App
	logger *slog.Logger
	out    io.Writer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithOutput redirects print. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// New creates an engine for app.
func New(app *script.App, opts ...Option) *Engine {
	e := &Engine{
		app:    app,
		logger: logging.NewNop(),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunFile runs the script at path.
func (e *Engine) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return e.Run(ctx, path, string(src))
}

// Run runs src. name is used in error positions.
// If the script fails on a reported error, the returned error wraps the
// corresponding *domain.ScriptError.
func (e *Engine) Run(ctx context.Context, name, src string) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	r := &run{maps: make(map[*script.Map]*lua.LTable), logger: e.logger}
	app := e.app.Bind(r)
	r.install(L, app, e.out)

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return fmt.Errorf("lua %s: %w", name, err)
	}
	L.Push(fn)
	e.logger.Debug("running lua script", "name", name)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if r.thrown != nil && strings.Contains(err.Error(), r.thrown.Error()) {
			return fmt.Errorf("lua %s: %w", name, errors.Join(r.thrown, err))
		}
		return fmt.Errorf("lua %s: %w", name, err)
	}
	return nil
}

// run is the state of one script execution. It is the script context the
// façades report into.
type run struct {
	pending []*domain.ScriptError
	thrown  *domain.ScriptError
	maps    map[*script.Map]*lua.LTable
	logger  *slog.Logger
}

// ThrowError queues the error. It is raised when the current operation returns.
func (r *run) ThrowError(kind domain.ErrorKind, message string) {
	r.pending = append(r.pending, domain.NewScriptError(kind, "", message))
}

func (r *run) install(L *lua.LState, app *script.App, out io.Writer) {
	vym := L.NewTable()
	for _, spec := range app.Operations() {
		L.SetField(vym, spec.Name, r.function(L, vym, spec.Name, app.Call))
	}
	L.SetGlobal("vym", vym)

	if m := app.CurrentMap(); m != nil {
		L.SetGlobal("map", r.mapTable(L, m))
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		fmt.Fprintln(out, strings.Join(parts, "\t"))
		return 0
	}))
}

func (r *run) mapTable(L *lua.LState, m *script.Map) *lua.LTable {
	if t, ok := r.maps[m]; ok {
		return t
	}
	t := L.NewTable()
	for _, spec := range m.Operations() {
		L.SetField(t, spec.Name, r.function(L, t, spec.Name, m.Call))
	}
	r.maps[m] = t
	return t
}

type caller func(ctx context.Context, name string, args ...any) any

func (r *run) function(L *lua.LState, self *lua.LTable, name string, call caller) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		res := call(L.Context(), name, args(L, self)...)
		if len(r.pending) > 0 {
			se := r.pending[0]
			for _, extra := range r.pending[1:] {
				r.logger.Warn("script error", "op", name, "kind", extra.Kind.String(), "msg", extra.Message)
			}
			r.pending = nil
			r.thrown = se
			L.RaiseError("%s", se.Error())
			return 0
		}
		return r.push(L, res)
	})
}

// args converts the call arguments, dropping self for method-style calls.
func args(L *lua.LState, self *lua.LTable) []any {
	top := L.GetTop()
	start := 1
	if top >= 1 && L.Get(1) == lua.LValue(self) {
		start = 2
	}
	out := make([]any, 0, top)
	for i := start; i <= top; i++ {
		out = append(out, fromLua(L.Get(i)))
	}
	return out
}

func fromLua(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int(f)
		}
		return f
	case lua.LBool:
		return bool(v)
	case *lua.LTable:
		list := make([]any, 0, v.Len())
		for i := 1; i <= v.Len(); i++ {
			list = append(list, fromLua(v.RawGetInt(i)))
		}
		return list
	default:
		return nil
	}
}

func (r *run) push(L *lua.LState, res any) int {
	switch v := res.(type) {
	case nil:
		return 0
	case bool:
		L.Push(lua.LBool(v))
	case int:
		L.Push(lua.LNumber(v))
	case float64:
		L.Push(lua.LNumber(v))
	case string:
		L.Push(lua.LString(v))
	case *script.Map:
		L.Push(r.mapTable(L, v))
	default:
		L.Push(lua.LString(fmt.Sprint(v)))
	}
	return 1
}
