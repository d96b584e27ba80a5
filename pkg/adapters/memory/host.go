package memory

import (
	"fmt"
	"slices"

	"github.com/sz10101/vym/pkg/ports"
)

// Host implements ports.Host: an ordered set of open maps with one focused.
type Host struct {
	models     []*Model
	current    int
	treeEditor bool
}

// NewHost creates a host with the given maps open. The first one has focus.
func NewHost(models ...*Model) *Host {
	return &Host{models: slices.Clone(models)}
}

// Add opens m in a new window, focuses it and returns its index.
func (h *Host) Add(m *Model) int {
	h.models = append(h.models, m)
	h.current = len(h.models) - 1
	return h.current
}

// Close closes window n. Focus moves to the previous window.
func (h *Host) Close(n int) error {
	if n < 0 || n >= len(h.models) {
		return fmt.Errorf("no map at index %d", n)
	}
	h.models = slices.Delete(h.models, n, n+1)
	if h.current >= n && h.current > 0 {
		h.current--
	}
	return nil
}

func (h *Host) ToggleTreeEditor() { h.treeEditor = !h.treeEditor }

// TreeEditorVisible reports whether the tree editor panel is shown.
func (h *Host) TreeEditorVisible() bool { return h.treeEditor }

func (h *Host) CurrentModel() ports.Model {
	if m := h.Current(); m != nil {
		return m
	}
	return nil
}

// Current returns the focused map, or nil if none is open.
func (h *Host) Current() *Model {
	if len(h.models) == 0 {
		return nil
	}
	return h.models[h.current]
}

func (h *Host) Models() []ports.Model {
	out := make([]ports.Model, len(h.models))
	for i, m := range h.models {
		out[i] = m
	}
	return out
}

func (h *Host) GotoWindow(n int) bool {
	if n < 0 || n >= len(h.models) {
		return false
	}
	h.current = n
	return true
}

var _ ports.Host = (*Host)(nil)
