package script

import (
	"context"
	"log/slog"

	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
)

// App is the script façade of the application window.
// It hands out one Map per open document and drops those the host no longer lists.
type App struct {
	host   ports.Host
	opts   options
	logger *slog.Logger
	maps   map[ports.Model]*Map
}

// NewApp creates the application façade for host.
// Options also apply to the Map façades it creates.
func NewApp(host ports.Host, opts ...Option) *App {
	o := buildOptions(opts)
	return &App{
		host:   host,
		opts:   o,
		logger: o.logger,
		maps:   make(map[ports.Model]*Map),
	}
}

// Bind returns a copy of a whose calls and maps report errors into sc.
func (a *App) Bind(sc ports.ScriptContext) *App {
	c := *a
	c.opts.sc = sc
	c.maps = make(map[ports.Model]*Map, len(a.maps))
	for model, m := range a.maps {
		c.maps[model] = m.Bind(sc)
	}
	return &c
}

// Host returns the window behind the façade.
func (a *App) Host() ports.Host {
	return a.host
}

// AppOperations lists the operations of the application façade, sorted by name.
func AppOperations() []Spec {
	return appOps.specs()
}

// Operations lists the operations of the application façade, sorted by name.
func (a *App) Operations() []Spec {
	return AppOperations()
}

// Call runs the named operation with positional arguments.
func (a *App) Call(ctx context.Context, name string, args ...any) any {
	return dispatch(ctx, appOps, a, a.env(), name, args)
}

// CallNamed runs the named operation with arguments keyed by parameter name.
func (a *App) CallNamed(ctx context.Context, name string, named map[string]any) any {
	return callNamed(ctx, appOps, a, a.env(), name, named)
}

func (a *App) env() env {
	return env{
		sc:       a.opts.sc,
		logger:   a.logger,
		observer: a.opts.observer,
		selected: func() ports.Branch { return nil },
	}
}

// ToggleTreeEditor shows or hides the tree editor panel.
func (a *App) ToggleTreeEditor() {
	a.Call(context.Background(), "toggleTreeEditor")
}

// GetCurrentMap returns the façade of the focused document, or nil with a
// ReferenceError if no document is open.
func (a *App) GetCurrentMap() *Map {
	m, _ := a.Call(context.Background(), "getCurrentMap").(*Map)
	return m
}

// SelectMap focuses open document n.
func (a *App) SelectMap(n int) {
	a.Call(context.Background(), "selectMap", n)
}

// CurrentMap returns the façade of the focused document without reporting errors.
func (a *App) CurrentMap() *Map {
	model := a.host.CurrentModel()
	if model == nil {
		return nil
	}
	return a.mapFor(model)
}

func (a *App) mapFor(model ports.Model) *Map {
	a.prune()
	if m, ok := a.maps[model]; ok {
		return m
	}
	m := newMap(model, a.opts)
	a.maps[model] = m
	return m
}

// prune drops façades of documents the host has closed.
func (a *App) prune() {
	if len(a.maps) == 0 {
		return
	}
	open := make(map[ports.Model]bool)
	for _, model := range a.host.Models() {
		open[model] = true
	}
	for model := range a.maps {
		if !open[model] {
			delete(a.maps, model)
		}
	}
}

var appOps = newTable[*App]("vym",
	&operation[*App]{
		Spec: Spec{Name: "toggleTreeEditor", Doc: "Show or hide the tree editor panel."},
		run: func(a *App, c *call) any {
			a.host.ToggleTreeEditor()
			return nil
		},
	},
	&operation[*App]{
		Spec: Spec{Name: "getCurrentMap", Doc: "Façade of the focused document.", Returns: ReturnsMap},
		run: func(a *App, c *call) any {
			m := a.CurrentMap()
			if m == nil {
				c.fail(domain.KindReference, "No map opened")
				return nil
			}
			return m
		},
	},
	&operation[*App]{
		Spec: Spec{Name: "selectMap", Doc: "Focus open document n.", Params: []Param{param("n", Int)}},
		run: func(a *App, c *call) any {
			n := c.num(0)
			if n < 0 || n >= len(a.host.Models()) || !a.host.GotoWindow(n) {
				c.fail(domain.KindRange, "Map '%d' not available.", n)
			}
			return nil
		},
	},
)
