package observability

import (
	"log/slog"

	"github.com/sz10101/vym/pkg/script"
)

// Logger writes one record per façade call: debug on success, warn when the
// call raised errors.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a call logger.
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// ObserveCall implements script.Observer.
func (l *Logger) ObserveCall(ev script.CallEvent) {
	attrs := []any{"facade", ev.Facade, "op", ev.Op, "duration", ev.Duration}
	if len(ev.Errors) == 0 {
		l.logger.Debug("script call", attrs...)
		return
	}
	for _, e := range ev.Errors {
		l.logger.Warn("script call failed", append(attrs, "kind", e.Kind.String(), "msg", e.Message)...)
	}
}

// Multi fans one event out to several observers. Nil observers are skipped.
func Multi(observers ...script.Observer) script.Observer {
	return script.ObserverFunc(func(ev script.CallEvent) {
		for _, o := range observers {
			if o != nil {
				o.ObserveCall(ev)
			}
		}
	})
}
