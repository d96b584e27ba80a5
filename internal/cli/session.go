package cli

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sz10101/vym"
	"github.com/sz10101/vym/internal/config"
	"github.com/sz10101/vym/pkg/adapters/process"
	"github.com/sz10101/vym/pkg/observability"
	"github.com/sz10101/vym/pkg/script"
)

// Options configures a command-line session.
type Options struct {
	ConfigPath    string
	LogLevel      string // overrides the configured level when set
	ExportersPath string
	Files         []string
	WorkDir       string
	Quiet         bool
	// Registerer receives call metrics when metrics are enabled.
	Registerer prometheus.Registerer
	Observers  []script.Observer
}

// Env is a ready session with the configuration it was built from.
type Env struct {
	Session *vym.Session
	Config  config.Config
	Logger  *slog.Logger
}

// NewSession loads the configuration, opens opts.Files and focuses the last
// one. With no files an empty map is created.
func NewSession(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		if _, err := config.ParseLevel(opts.LogLevel); err != nil {
			return nil, err
		}
		cfg.LogLevel = opts.LogLevel
	}
	logger := createLogger(cfg.Level(), opts.Quiet)

	observers := append([]script.Observer{observability.NewLogger(logger)}, opts.Observers...)
	if cfg.Metrics.Enabled && opts.Registerer != nil {
		m, err := observability.NewMetrics(opts.Registerer)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		observers = append(observers, m)
	}

	sessOpts := []vym.Option{
		vym.WithLogger(logger),
		vym.WithConfig(cfg),
		vym.WithObserver(observability.Multi(observers...)),
	}
	if opts.WorkDir != "" {
		sessOpts = append(sessOpts, vym.WithWorkDir(opts.WorkDir))
	}
	if opts.ExportersPath != "" {
		runner, err := loadExporters(cfg, opts.ExportersPath, logger)
		if err != nil {
			return nil, err
		}
		sessOpts = append(sessOpts, vym.WithExporters(runner))
	}

	s, err := vym.New(sessOpts...)
	if err != nil {
		return nil, err
	}
	for _, f := range opts.Files {
		if _, err := s.Open(f); err != nil {
			s.Close()
			return nil, fmt.Errorf("open %s: %w", f, err)
		}
	}
	if len(opts.Files) == 0 {
		s.NewMap()
	}
	logger.Debug("session ready", "maps", len(s.Host().Models()))
	return &Env{Session: s, Config: cfg, Logger: logger}, nil
}

// loadExporters merges the exporters file over the configured exporters.
func loadExporters(cfg config.Config, path string, logger *slog.Logger) (*process.Runner, error) {
	all, err := process.Index(cfg.Exporters)
	if err != nil {
		return nil, err
	}
	fromFile, err := process.LoadExporters(path)
	if err != nil {
		return nil, err
	}
	maps.Copy(all, fromFile)
	logger.Info("exporters loaded", "path", path, "count", len(all))
	return process.NewRunner(process.WithRegistry(all), process.WithLogger(logger)), nil
}
