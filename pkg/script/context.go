package script

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
)

// Errors is a ScriptContext that keeps every raised error.
// Adapters without a native error channel (HTTP, MCP, shell) bind one per request.
type Errors struct {
	list []*domain.ScriptError
}

// ThrowError records the error.
func (e *Errors) ThrowError(kind domain.ErrorKind, message string) {
	e.list = append(e.list, domain.NewScriptError(kind, "", message))
}

// List returns the recorded errors in order.
func (e *Errors) List() []*domain.ScriptError {
	return e.list
}

// Len returns the number of recorded errors.
func (e *Errors) Len() int {
	return len(e.list)
}

// Err joins the recorded errors, or returns nil if there are none.
func (e *Errors) Err() error {
	if len(e.list) == 0 {
		return nil
	}
	errs := make([]error, len(e.list))
	for i, se := range e.list {
		errs[i] = se
	}
	return errors.Join(errs...)
}

// Reset forgets all recorded errors.
func (e *Errors) Reset() {
	e.list = nil
}

// reporter delivers errors for one call: into the script context if one is bound,
// to the log otherwise.
type reporter struct {
	op     string
	sc     ports.ScriptContext
	logger *slog.Logger
	raised []*domain.ScriptError
}

func (r *reporter) fail(kind domain.ErrorKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.raised = append(r.raised, domain.NewScriptError(kind, r.op, msg))
	if r.sc != nil {
		r.sc.ThrowError(kind, msg)
		return
	}
	r.logger.Warn("script error", "op", r.op, "kind", kind.String(), "msg", msg)
}
