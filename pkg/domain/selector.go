package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Selector step prefixes as they appear in select strings ("mc:0,bo:2,fi:0").
const (
	StepCenter = "mc"
	StepBranch = "bo"
	StepImage  = "fi"
)

// SelectorStep addresses one child by kind and index.
type SelectorStep struct {
	Kind  string
	Index int
}

// Selector is a parsed select string.
type Selector []SelectorStep

// ParseSelector parses a select string. Both ':' and '=' separate kind and index.
// The first step must address a map center and images may only appear last.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty selector")
	}
	parts := strings.Split(s, ",")
	sel := make(Selector, 0, len(parts))
	for i, part := range parts {
		kind, idx, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			kind, idx, ok = strings.Cut(strings.TrimSpace(part), "=")
		}
		if !ok {
			return nil, fmt.Errorf("selector step %q: missing index", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("selector step %q: invalid index", part)
		}
		kind = strings.TrimSpace(kind)
		switch {
		case i == 0 && kind != StepCenter:
			return nil, fmt.Errorf("selector %q must start with %s", s, StepCenter)
		case i > 0 && kind == StepCenter:
			return nil, fmt.Errorf("selector %q: %s only allowed first", s, StepCenter)
		case kind != StepCenter && kind != StepBranch && kind != StepImage:
			return nil, fmt.Errorf("selector step %q: unknown kind", part)
		case kind == StepImage && i != len(parts)-1:
			return nil, fmt.Errorf("selector %q: image must be the last step", s)
		}
		sel = append(sel, SelectorStep{Kind: kind, Index: n})
	}
	return sel, nil
}

// String returns the canonical form of the selector.
func (s Selector) String() string {
	parts := make([]string, len(s))
	for i, step := range s {
		parts[i] = step.Kind + ":" + strconv.Itoa(step.Index)
	}
	return strings.Join(parts, ",")
}
