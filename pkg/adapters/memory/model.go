package memory

import (
	"log/slog"
	"path/filepath"

	"github.com/sz10101/vym/internal/logging"
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
	"github.com/sz10101/vym/pkg/xmlobj"
)

// DefaultHeading is the heading of the map center of a new map.
const DefaultHeading = "New map"

// Model implements ports.Model in memory.
// Every edit is recorded as a before/after snapshot pair for undo and redo.
// Not safe for concurrent use.
type Model struct {
	doc      *document
	index    map[string]*node
	selected string
	latest   string
	centered string

	undo    []*command
	redo    []*command
	pending *command

	fileName string
	destPath string
	modified bool

	clipboard ports.ClipboardStore
	exporters map[domain.ExportFormat]ExportFunc
	last      *domain.ExportRequest
	xml       xmlobj.Fixes
	indent    int
	logger    *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for failures the port cannot return.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// WithClipboard sets the store used by copy, cut and paste.
// Models created with the same store share their clipboard.
func WithClipboard(store ports.ClipboardStore) Option {
	return func(m *Model) { m.clipboard = store }
}

// WithExporter registers fn for format, replacing any built-in exporter.
func WithExporter(format domain.ExportFormat, fn ExportFunc) Option {
	return func(m *Model) { m.exporters[format] = fn }
}

// WithXMLFixes selects the quoting rules used when writing map files.
func WithXMLFixes(f xmlobj.Fixes) Option {
	return func(m *Model) { m.xml = f }
}

// WithIndentWidth sets the number of spaces per level in written map files.
func WithIndentWidth(n int) Option {
	return func(m *Model) { m.indent = n }
}

// NewModel creates a map with a single map center.
func NewModel(opts ...Option) *Model {
	m := &Model{
		doc:       newDocument(),
		clipboard: NewClipboard(),
		exporters: builtinExporters(),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	center := newNode(kindCenter)
	center.heading = DefaultHeading
	m.doc.centers = append(m.doc.centers, center)
	m.reindex()
	return m
}

// Open loads a map file into a new model.
func Open(fileName string, opts ...Option) (*Model, error) {
	m := NewModel(opts...)
	if err := m.LoadMap(fileName, domain.LoadNew, domain.FilterNone, -1); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) reindex() {
	m.index = m.doc.index()
	m.doc.prune(m.index)
	if m.index[m.selected] == nil {
		m.selected = ""
	}
}

// execute runs mutate and records an undo step if it reports a change.
func (m *Model) execute(description string, mutate func() bool) bool {
	before := m.doc.clone()
	if !mutate() {
		return false
	}
	m.reindex()
	m.push(&command{description: description, before: before, after: m.doc.clone()})
	return true
}

func (m *Model) push(cmd *command) {
	m.undo = append(m.undo, cmd)
	m.redo = nil
	m.modified = true
	m.logger.Debug("map changed", "step", cmd.description)
}

func (m *Model) apply(snapshot *document) {
	m.doc = snapshot.clone()
	m.reindex()
}

// Undo reverts the last edit. It does nothing if there is none.
func (m *Model) Undo() {
	if len(m.undo) == 0 {
		return
	}
	last := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.apply(last.before)
	m.redo = append(m.redo, last)
	m.modified = true
}

// Redo reapplies the last undone edit.
func (m *Model) Redo() {
	if len(m.redo) == 0 {
		return
	}
	last := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.apply(last.after)
	m.undo = append(m.undo, last)
	m.modified = true
}

// UndoSteps returns the descriptions of the undo stack, oldest first.
func (m *Model) UndoSteps() []string {
	steps := make([]string, len(m.undo))
	for i, c := range m.undo {
		steps[i] = c.description
	}
	return steps
}

// SaveStateBeforeLoad stores the checkpoint the next LoadMap records as its undo step.
func (m *Model) SaveStateBeforeLoad(mode domain.LoadMode, fileName string) {
	m.pending = &command{
		description: mode.String() + " " + filepath.Base(fileName),
		before:      m.doc.clone(),
	}
}

// IsModified reports whether the map changed since it was loaded or saved.
func (m *Model) IsModified() bool {
	return m.modified
}

func (m *Model) selectedNode() *node {
	return m.index[m.selected]
}

func (m *Model) selectedBranchNode() *node {
	if n := m.selectedNode(); n != nil && n.branchLike() {
		return n
	}
	return nil
}

var _ ports.Model = (*Model)(nil)
