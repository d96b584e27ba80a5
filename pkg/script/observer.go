package script

import (
	"time"

	"github.com/sz10101/vym/pkg/domain"
)

// CallEvent describes one finished façade call.
type CallEvent struct {
	Facade   string // "map" or "vym"
	Op       string
	Duration time.Duration
	Errors   []*domain.ScriptError
}

// Observer is notified after every façade call, including rejected ones.
type Observer interface {
	ObserveCall(ev CallEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev CallEvent)

// ObserveCall calls f(ev).
func (f ObserverFunc) ObserveCall(ev CallEvent) { f(ev) }
