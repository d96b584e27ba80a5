package script

import (
	"context"
	"log/slog"

	"github.com/sz10101/vym/internal/logging"
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
)

// Map is the script façade of one open document.
// It is not safe for concurrent use; surfaces that serve several clients serialize calls.
type Map struct {
	model    ports.Model
	sc       ports.ScriptContext
	logger   *slog.Logger
	fixes    Fixes
	workDir  string
	observer Observer
}

// Option configures a Map or an App.
type Option func(*options)

type options struct {
	sc       ports.ScriptContext
	logger   *slog.Logger
	fixes    Fixes
	workDir  string
	observer Observer
}

// WithLogger sets the logger that receives errors when no script context is bound.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFixes enables corrected behavior for the selected quirks.
func WithFixes(f Fixes) Option {
	return func(o *options) { o.fixes = f }
}

// WithWorkDir sets the directory relative map file names resolve against.
// Defaults to the process working directory.
func WithWorkDir(dir string) Option {
	return func(o *options) { o.workDir = dir }
}

// WithObserver registers an observer for every call.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithScriptContext binds the error channel of a running script.
func WithScriptContext(sc ports.ScriptContext) Option {
	return func(o *options) { o.sc = sc }
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	return o
}

// NewMap creates the façade for model.
func NewMap(model ports.Model, opts ...Option) *Map {
	o := buildOptions(opts)
	return newMap(model, o)
}

func newMap(model ports.Model, o options) *Map {
	return &Map{
		model:    model,
		sc:       o.sc,
		logger:   o.logger,
		fixes:    o.fixes,
		workDir:  o.workDir,
		observer: o.observer,
	}
}

// Bind returns a copy of m that reports errors into sc.
func (m *Map) Bind(sc ports.ScriptContext) *Map {
	c := *m
	c.sc = sc
	return &c
}

// Model returns the document behind the façade.
func (m *Map) Model() ports.Model {
	return m.model
}

// Operations lists the operations of the map façade, sorted by name.
func (m *Map) Operations() []Spec {
	return MapOperations()
}

// MapOperations lists the operations of the map façade, sorted by name.
func MapOperations() []Spec {
	return mapOps.specs()
}

// Call runs the named operation with positional arguments.
// The result is nil, bool, int, string or *Map depending on the operation.
func (m *Map) Call(ctx context.Context, name string, args ...any) any {
	return dispatch(ctx, mapOps, m, m.env(), name, args)
}

// CallNamed runs the named operation with arguments keyed by parameter name.
func (m *Map) CallNamed(ctx context.Context, name string, named map[string]any) any {
	return callNamed(ctx, mapOps, m, m.env(), name, named)
}

func (m *Map) env() env {
	return env{
		sc:       m.sc,
		logger:   m.logger,
		observer: m.observer,
		selected: m.model.SelectedBranch,
	}
}

func callNamed[T any](ctx context.Context, t *table[T], target T, e env, name string, named map[string]any) any {
	op, ok := t.lookup(name)
	if !ok {
		return dispatch(ctx, t, target, e, name, nil)
	}
	args, err := namedArgs(op.Params, named)
	if err != nil {
		rep := &reporter{op: name, sc: e.sc, logger: e.logger}
		rep.fail(domain.KindSyntax, "%s: %v", op.Signature(), err)
		if e.observer != nil {
			e.observer.ObserveCall(CallEvent{Facade: t.facade, Op: name, Errors: rep.raised})
		}
		return op.neutral
	}
	return dispatch(ctx, t, target, e, name, args)
}

func (m *Map) void(name string, args ...any) {
	m.Call(context.Background(), name, args...)
}

func (m *Map) boolean(name string, args ...any) bool {
	v, _ := m.Call(context.Background(), name, args...).(bool)
	return v
}

func (m *Map) integer(name string, args ...any) int {
	v, _ := m.Call(context.Background(), name, args...).(int)
	return v
}

func (m *Map) text(name string, args ...any) string {
	v, _ := m.Call(context.Background(), name, args...).(string)
	return v
}

// Structural edits.

func (m *Map) AddBranch()                { m.void("addBranch") }
func (m *Map) AddBranchBefore()          { m.void("addBranchBefore") }
func (m *Map) AddMapCenter(x, y float64) { m.void("addMapCenter", x, y) }
func (m *Map) AddMapReplace(file string) { m.void("addMapReplace", file) }
func (m *Map) AddSlide()                 { m.void("addSlide") }
func (m *Map) RemoveSlide(n int)         { m.void("removeSlide", n) }
func (m *Map) Remove()                   { m.void("remove") }
func (m *Map) RemoveChildren()           { m.void("removeChildren") }
func (m *Map) RemoveKeepChildren()       { m.void("removeKeepChildren") }
func (m *Map) Copy()                     { m.void("copy") }
func (m *Map) Cut()                      { m.void("cut") }
func (m *Map) Paste()                    { m.void("paste") }
func (m *Map) Undo()                     { m.void("undo") }
func (m *Map) Redo()                     { m.void("redo") }
func (m *Map) MoveUp()                   { m.void("moveUp") }
func (m *Map) MoveDown()                 { m.void("moveDown") }
func (m *Map) SortChildren(inverse bool) { m.void("sortChildren", inverse) }

// AddMapInsert loads file into the document at pos with the given content filter.
func (m *Map) AddMapInsert(file string, pos, contentFilter int) {
	m.void("addMapInsert", file, pos, contentFilter)
}

// AddXLink links the branches at beginSel and endSel.
// Zero width, empty color and empty penStyle keep the defaults.
func (m *Map) AddXLink(beginSel, endSel string, width int, color, penStyle string) {
	m.void("addXLink", beginSel, endSel, width, color, penStyle)
}

// Attributes and content.

func (m *Map) ColorBranch(color string)     { m.void("colorBranch", color) }
func (m *Map) ColorSubtree(color string)    { m.void("colorSubtree", color) }
func (m *Map) SetHeadingPlainText(s string) { m.void("setHeadingPlainText", s) }
func (m *Map) GetHeadingPlainText() string  { return m.text("getHeadingPlainText") }
func (m *Map) GetHeadingXML() string        { return m.text("getHeadingXML") }
func (m *Map) SetNotePlainText(s string)    { m.void("setNotePlainText", s) }
func (m *Map) GetNotePlainText() string     { return m.text("getNotePlainText") }
func (m *Map) GetNoteXML() string           { return m.text("getNoteXML") }
func (m *Map) SetURL(s string)              { m.void("setURL", s) }
func (m *Map) SetVymLink(s string)          { m.void("setVymLink", s) }
func (m *Map) SetFlag(name string)          { m.void("setFlag", name) }
func (m *Map) UnsetFlag(name string)        { m.void("unsetFlag", name) }
func (m *Map) ToggleFlag(name string)       { m.void("toggleFlag", name) }
func (m *Map) ClearFlags()                  { m.void("clearFlags") }
func (m *Map) Scroll()                      { m.void("scroll") }
func (m *Map) Unscroll() bool               { return m.boolean("unscroll") }
func (m *Map) UnscrollChildren()            { m.void("unscrollChildren") }
func (m *Map) ToggleScroll()                { m.void("toggleScroll") }
func (m *Map) ToggleTask()                  { m.void("toggleTask") }
func (m *Map) CycleTask()                   { m.void("cycleTask") }
func (m *Map) ToggleTarget()                { m.void("toggleTarget") }
func (m *Map) ToggleFrameIncludeChildren()  { m.void("toggleFrameIncludeChildren") }
func (m *Map) GetFrameType() string         { return m.text("getFrameType") }

// Selection.

func (m *Map) Select(selector string) bool { return m.boolean("select", selector) }
func (m *Map) SelectID(id string) bool     { return m.boolean("selectID", id) }
func (m *Map) SelectParent() bool          { return m.boolean("selectParent") }
func (m *Map) SelectFirstBranch() bool     { return m.boolean("selectFirstBranch") }
func (m *Map) SelectLastBranch() bool      { return m.boolean("selectLastBranch") }
func (m *Map) SelectLastImage() bool       { return m.boolean("selectLastImage") }
func (m *Map) SelectLatestAdded() bool     { return m.boolean("selectLatestAdded") }
func (m *Map) UnselectAll() bool           { return m.boolean("unselectAll") }
func (m *Map) GetSelectString() string     { return m.text("getSelectString") }
func (m *Map) CenterOnID(id string) bool   { return m.boolean("centerOnID", id) }

// Queries and metadata.

func (m *Map) BranchCount() int             { return m.integer("branchCount") }
func (m *Map) CenterCount() int             { return m.integer("centerCount") }
func (m *Map) GetMapTitle() string          { return m.text("getMapTitle") }
func (m *Map) GetMapAuthor() string         { return m.text("getMapAuthor") }
func (m *Map) GetMapComment() string        { return m.text("getMapComment") }
func (m *Map) GetFileName() string          { return m.text("getFileName") }
func (m *Map) GetFileDir() string           { return m.text("getFileDir") }
func (m *Map) GetDestPath() string          { return m.text("getDestPath") }
func (m *Map) SetMapTitle(s string)         { m.void("setMapTitle", s) }
func (m *Map) SetMapAuthor(s string)        { m.void("setMapAuthor", s) }
func (m *Map) SetMapComment(s string)       { m.void("setMapComment", s) }
func (m *Map) SetMapRotation(angle float64) { m.void("setMapRotation", angle) }
func (m *Map) SetMapZoom(factor float64)    { m.void("setMapZoom", factor) }

// ExportMap exports the document. parameters are "key=value" entries.
func (m *Map) ExportMap(format string, parameters []string) bool {
	return m.boolean("exportMap", format, parameters)
}

func (m *Map) Nop() { m.void("nop") }

// Sleep pauses the script for seconds. Without Fixes.Sleep it returns at once.
func (m *Map) Sleep(ctx context.Context, seconds float64) {
	m.Call(ctx, "sleep", seconds)
}
