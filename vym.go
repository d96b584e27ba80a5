package vym

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sz10101/vym/internal/config"
	"github.com/sz10101/vym/internal/logging"
	"github.com/sz10101/vym/pkg/adapters/lua"
	"github.com/sz10101/vym/pkg/adapters/memory"
	"github.com/sz10101/vym/pkg/adapters/process"
	"github.com/sz10101/vym/pkg/adapters/redis"
	"github.com/sz10101/vym/pkg/adapters/shell"
	"github.com/sz10101/vym/pkg/ports"
	"github.com/sz10101/vym/pkg/script"
	"github.com/sz10101/vym/pkg/xmlobj"
)

// Script engines.
const (
	EngineLua   = "lua"
	EngineShell = "shell"
)

// Session owns the open maps and the engines that script them.
type Session struct {
	host      *memory.Host
	app       *script.App
	clipboard ports.ClipboardStore
	exporters *process.Runner
	logger    *slog.Logger
	observer  script.Observer
	fixes     script.Fixes
	xmlFixes  xmlobj.Fixes
	indent    int
	workDir   string
	closers   []io.Closer
}

// Option defines a functional option for configuring the Session.
type Option func(*Session)

// WithLogger sets a custom structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithFixes selects corrected façade behaviors.
func WithFixes(f script.Fixes) Option {
	return func(s *Session) {
		s.fixes = f
	}
}

// WithXMLFixes selects corrected XML quoting for saved maps.
func WithXMLFixes(f xmlobj.Fixes) Option {
	return func(s *Session) {
		s.xmlFixes = f
	}
}

// WithIndentWidth sets the indentation of saved maps.
func WithIndentWidth(n int) Option {
	return func(s *Session) {
		s.indent = n
	}
}

// WithClipboard shares store between the maps of the session.
// The session closes it if it implements io.Closer.
func WithClipboard(store ports.ClipboardStore) Option {
	return func(s *Session) {
		s.clipboard = store
	}
}

// WithExporters registers external exporters for formats without a built-in one.
func WithExporters(r *process.Runner) Option {
	return func(s *Session) {
		s.exporters = r
	}
}

// WithObserver receives one event per façade call.
func WithObserver(obs script.Observer) Option {
	return func(s *Session) {
		s.observer = obs
	}
}

// WithWorkDir resolves relative map paths against dir.
func WithWorkDir(dir string) Option {
	return func(s *Session) {
		s.workDir = dir
	}
}

// WithConfig applies a loaded configuration. Options after it override it.
func WithConfig(cfg config.Config) Option {
	return func(s *Session) {
		s.fixes = cfg.Fixes.Script
		s.xmlFixes = cfg.Fixes.XML
		s.indent = cfg.XML.IndentWidth
		if cfg.Clipboard.Backend == config.ClipboardRedis {
			s.clipboard = redis.New(cfg.Clipboard.RedisAddr, "", 0, redis.WithPrefix(cfg.Clipboard.Prefix))
		}
		if len(cfg.Exporters) > 0 {
			// Validated by config.Load.
			exporters, _ := process.Index(cfg.Exporters)
			s.exporters = process.NewRunner(process.WithRegistry(exporters), process.WithLogger(s.logger))
		}
	}
}

// New creates a session with no open maps.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		host:   memory.NewHost(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.clipboard == nil {
		s.clipboard = memory.NewClipboard()
	}
	if c, ok := s.clipboard.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}
	if s.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("working directory: %w", err)
		}
		s.workDir = wd
	}

	appOpts := []script.Option{
		script.WithLogger(s.logger),
		script.WithFixes(s.fixes),
		script.WithWorkDir(s.workDir),
	}
	if s.observer != nil {
		appOpts = append(appOpts, script.WithObserver(s.observer))
	}
	s.app = script.NewApp(s.host, appOpts...)
	return s, nil
}

// App returns the application façade.
func (s *Session) App() *script.App {
	return s.app
}

// Host returns the window holding the open maps.
func (s *Session) Host() *memory.Host {
	return s.host
}

func (s *Session) modelOptions() []memory.Option {
	opts := []memory.Option{
		memory.WithLogger(s.logger),
		memory.WithClipboard(s.clipboard),
		memory.WithXMLFixes(s.xmlFixes),
	}
	if s.indent > 0 {
		opts = append(opts, memory.WithIndentWidth(s.indent))
	}
	if s.exporters != nil {
		opts = append(opts, s.exporters.ModelOptions()...)
	}
	return opts
}

// NewMap opens an empty map and focuses it.
func (s *Session) NewMap() *memory.Model {
	m := memory.NewModel(s.modelOptions()...)
	s.host.GotoWindow(s.host.Add(m))
	return m
}

// Open loads the map at path and focuses it.
func (s *Session) Open(path string) (*memory.Model, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.workDir, path)
	}
	m, err := memory.Open(path, s.modelOptions()...)
	if err != nil {
		return nil, err
	}
	s.host.GotoWindow(s.host.Add(m))
	s.logger.Debug("opened map", "file", path)
	return m, nil
}

// RunLua runs a Lua script. print writes to out, or stdout if out is nil.
func (s *Session) RunLua(ctx context.Context, name, src string, out ...io.Writer) error {
	opts := []lua.Option{lua.WithLogger(s.logger)}
	if len(out) > 0 && out[0] != nil {
		opts = append(opts, lua.WithOutput(out[0]))
	}
	return lua.New(s.app, opts...).Run(ctx, name, src)
}

// RunShell runs a shell script with the given standard streams.
func (s *Session) RunShell(ctx context.Context, name, src string, stdin io.Reader, stdout, stderr io.Writer) error {
	r := shell.New(s.app,
		shell.WithLogger(s.logger),
		shell.WithStdIO(stdin, stdout, stderr),
		shell.WithDir(s.workDir),
	)
	return r.Run(ctx, name, src)
}

// EngineFor picks the engine for a script file by extension.
// ".lua" selects Lua; everything else runs as shell.
func EngineFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".lua") {
		return EngineLua
	}
	return EngineShell
}

// RunFile runs the script at path with engine, or by extension if engine is "".
func (s *Session) RunFile(ctx context.Context, path, engine string, stdout, stderr io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if engine == "" {
		engine = EngineFor(path)
	}
	switch engine {
	case EngineLua:
		return s.RunLua(ctx, path, string(src), stdout)
	case EngineShell:
		return s.RunShell(ctx, path, string(src), os.Stdin, stdout, stderr)
	default:
		return fmt.Errorf("unknown engine %q", engine)
	}
}

// Close releases the clipboard backend.
func (s *Session) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
