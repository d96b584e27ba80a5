package memory

import (
	"context"
	"errors"

	"github.com/sz10101/vym/pkg/domain"
)

// Copy puts the selected subtree on the clipboard as a vym map fragment.
func (m *Model) Copy() {
	n := m.selectedBranchNode()
	if n == nil {
		return
	}
	if err := m.clipboard.Put(context.Background(), []byte(m.fragment(n))); err != nil {
		m.logger.Error("copy failed", "error", err)
	}
}

// Cut copies the selected subtree and deletes it.
func (m *Model) Cut() {
	n := m.selectedBranchNode()
	if n == nil {
		return
	}
	if err := m.clipboard.Put(context.Background(), []byte(m.fragment(n))); err != nil {
		m.logger.Error("cut failed", "error", err)
		return
	}
	m.DeleteSelection()
}

// Paste adds the clipboard content as the last child of the selection.
func (m *Model) Paste() {
	target := m.selectedBranchNode()
	if target == nil {
		return
	}
	data, err := m.clipboard.Get(context.Background())
	if err != nil {
		if !errors.Is(err, domain.ErrClipboardEmpty) {
			m.logger.Error("paste failed", "error", err)
		}
		return
	}
	imported, err := decode(data, domain.FilterNone, m.index)
	if err != nil || len(imported.centers) == 0 {
		m.logger.Error("paste failed", "error", err)
		return
	}
	m.execute("paste", func() bool {
		return m.merge(imported, domain.LoadInsert, -1) == nil
	})
}

// fragment encodes the subtree at n with the cross-links inside it.
func (m *Model) fragment(n *node) string {
	sub := newDocument()
	c := cloneNode(n, nil)
	c.kind = kindCenter
	sub.centers = []*node{c}
	inside := sub.index()
	for _, l := range m.doc.links {
		if inside[l.beginID] != nil && inside[l.endID] != nil {
			cp := *l
			sub.links = append(sub.links, &cp)
		}
	}
	return m.encode(sub)
}
