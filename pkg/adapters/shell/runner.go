// Package shell runs POSIX shell scripts against the script façades.
//
// The interpreter is mvdan.cc/sh, so no system shell is needed. Two builtin
// commands reach the façades:
//
//	map <op> [args...]   operation on the focused document
//	vym <op> [args...]   operation on the application
//
// Results are printed on stdout. A false boolean result sets exit status 1.
// A reported error is printed on stderr as "Kind: message" and sets exit
// status 2, so scripts stop on it under "set -e".
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sz10101/vym/internal/logging"
	"github.com/sz10101/vym/pkg/script"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const (
	statusFalse    = 1
	statusError    = 2
	statusNotFound = 127
)

// Runner runs shell scripts.
type Runner struct {
	app      *script.App
	logger   *slog.Logger
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	dir      string
	external bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithStdIO sets the standard streams of scripts.
func WithStdIO(in io.Reader, out, err io.Writer) Option {
	return func(r *Runner) {
		r.stdin, r.stdout, r.stderr = in, out, err
	}
}

// WithDir sets the working directory of scripts.
func WithDir(dir string) Option {
	return func(r *Runner) { r.dir = dir }
}

// WithExternalCommands lets scripts run programs from PATH.
// By default only shell builtins and the map and vym commands are available.
func WithExternalCommands(allow bool) Option {
	return func(r *Runner) { r.external = allow }
}

// New creates a runner for app.
func New(app *script.App, opts ...Option) *Runner {
	r := &Runner{
		app:    app,
		logger: logging.NewNop(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Check parses src without running it.
func Check(name, src string) error {
	_, err := syntax.NewParser().Parse(strings.NewReader(src), name)
	return err
}

// RunFile runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return r.Run(ctx, path, string(src))
}

// Run runs src. A non-zero exit status is returned as an error wrapping
// interp.ExitStatus, joined with the errors the façades reported.
func (r *Runner) Run(ctx context.Context, name, src string) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(src), name)
	if err != nil {
		return fmt.Errorf("failed to parse script: %w", err)
	}

	errs := &script.Errors{}
	app := r.app.Bind(errs)

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(r.stdin, r.stdout, r.stderr),
		interp.ExecHandlers(r.execHandler(app, errs)),
	}
	if r.dir != "" {
		opts = append(opts, interp.Dir(r.dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	r.logger.Debug("running shell script", "name", name)
	if err := runner.Run(ctx, prog); err != nil {
		return fmt.Errorf("script %s: %w", name, errors.Join(err, errs.Err()))
	}
	return nil
}

func (r *Runner) execHandler(app *script.App, errs *script.Errors) func(interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			switch args[0] {
			case "vym":
				return r.invoke(ctx, args, errs, app.Call)
			case "map":
				m := app.CurrentMap()
				if m == nil {
					hc := interp.HandlerCtx(ctx)
					fmt.Fprintln(hc.Stderr, "ReferenceError: No map opened")
					return interp.ExitStatus(statusError)
				}
				return r.invoke(ctx, args, errs, m.Call)
			}
			if r.external {
				return next(ctx, args)
			}
			fmt.Fprintf(interp.HandlerCtx(ctx).Stderr, "%s: command not found\n", args[0])
			return interp.ExitStatus(statusNotFound)
		}
	}
}

type caller func(ctx context.Context, name string, args ...any) any

func (r *Runner) invoke(ctx context.Context, args []string, errs *script.Errors, call caller) error {
	hc := interp.HandlerCtx(ctx)
	if len(args) < 2 {
		fmt.Fprintf(hc.Stderr, "usage: %s <operation> [args...]\n", args[0])
		return interp.ExitStatus(statusError)
	}

	before := errs.Len()
	values := make([]any, len(args)-2)
	for i, a := range args[2:] {
		values[i] = a
	}
	res := call(ctx, args[1], values...)

	if raised := errs.List()[before:]; len(raised) > 0 {
		for _, se := range raised {
			fmt.Fprintln(hc.Stderr, se.Error())
		}
		return interp.ExitStatus(statusError)
	}

	switch v := res.(type) {
	case nil, *script.Map:
	case bool:
		fmt.Fprintln(hc.Stdout, v)
		if !v {
			return interp.ExitStatus(statusFalse)
		}
	default:
		fmt.Fprintln(hc.Stdout, v)
	}
	return nil
}
