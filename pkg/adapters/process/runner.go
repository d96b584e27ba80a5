// Package process runs external commands as map exporters.
//
// Only formats registered in the allow-list can run. The command receives the
// map as vym XML on stdin and the export request in VYM_EXPORT_* environment
// variables, never as command-line flags.
package process

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sz10101/vym/internal/logging"
	"github.com/sz10101/vym/pkg/adapters/memory"
	"github.com/sz10101/vym/pkg/domain"
)

// DefaultTimeout bounds a single export.
const DefaultTimeout = 2 * time.Minute

// Runner executes registered export commands.
type Runner struct {
	registry map[domain.ExportFormat]RegisteredProcess
	baseDir  string
	timeout  time.Duration
	logger   *slog.Logger
}

// RegisteredProcess defines an allowed command execution.
type RegisteredProcess struct {
	Command string
	Args    []string
	Env     map[string]string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry populates the allow-list from a loaded config.
func WithRegistry(exporters map[domain.ExportFormat]ExporterConfig) RunnerOption {
	return func(r *Runner) {
		for format, e := range exporters {
			r.registry[format] = RegisteredProcess{Command: e.Command, Args: e.Args, Env: e.Environment}
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithTimeout bounds each export. Zero disables the bound.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new export runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[domain.ExportFormat]RegisteredProcess),
		timeout:  DefaultTimeout,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command for format to the allow-list.
func (r *Runner) Register(format domain.ExportFormat, command string, args ...string) {
	r.registry[format] = RegisteredProcess{
		Command: command,
		Args:    args,
	}
}

// Formats lists the registered formats, sorted.
func (r *Runner) Formats() []domain.ExportFormat {
	out := make([]domain.ExportFormat, 0, len(r.registry))
	for f := range r.registry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ModelOptions returns one memory.WithExporter option per registered format.
func (r *Runner) ModelOptions() []memory.Option {
	var opts []memory.Option
	for _, f := range r.Formats() {
		opts = append(opts, memory.WithExporter(f, r.ExportFunc(f)))
	}
	return opts
}

// ExportFunc adapts the command registered for format to the model's exporter hook.
func (r *Runner) ExportFunc(format domain.ExportFormat) memory.ExportFunc {
	return func(doc memory.Document, req domain.ExportRequest) error {
		ctx := context.Background()
		if r.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}
		return r.Export(ctx, format, doc.XML, req)
	}
}

// Export runs the command registered for format with xml on stdin.
func (r *Runner) Export(ctx context.Context, format domain.ExportFormat, xml string, req domain.ExportRequest) error {
	proc, ok := r.registry[format]
	if !ok {
		return fmt.Errorf("%w: no exporter registered for %s", domain.ErrExportUnsupported, format)
	}

	cmd := exec.CommandContext(ctx, proc.Command, proc.Args...)
	cmd.Dir = r.baseDir
	cmd.Stdin = strings.NewReader(xml)

	env := []string{
		"VYM_EXPORT_FORMAT=" + string(req.Format),
		"VYM_EXPORT_FILENAME=" + req.FileName,
		"VYM_EXPORT_PATH=" + req.Path,
		"VYM_EXPORT_TEMPLATE=" + req.Template,
		"VYM_EXPORT_IMAGE_FORMAT=" + req.ImageFormat,
		"VYM_EXPORT_LIST_TASKS=" + strconv.FormatBool(req.ListTasks),
	}
	for k, v := range proc.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = append(cmd.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("exporter %s failed: %v. Stderr: %s", format, err, strings.TrimSpace(stderr.String()))
	}
	r.logger.Debug("external export finished",
		"format", string(format),
		"command", proc.Command,
		"duration", time.Since(start),
		"stdout", strings.TrimSpace(stdout.String()))
	return nil
}
