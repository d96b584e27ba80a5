package memory

import (
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
)

// find resolves a selector like "mc:0,bo:1,fi:0".
func (m *Model) find(selector string) *node {
	sel, err := domain.ParseSelector(selector)
	if err != nil {
		return nil
	}
	var cur *node
	for _, step := range sel {
		var list []*node
		switch step.Kind {
		case domain.StepCenter:
			list = m.doc.centers
		case domain.StepBranch:
			list = cur.branches
		case domain.StepImage:
			list = cur.images
		}
		if step.Index >= len(list) {
			return nil
		}
		cur = list[step.Index]
	}
	return cur
}

// path returns the canonical selector of n.
func (m *Model) path(n *node) string {
	var steps domain.Selector
	for cur := n; cur != nil; cur = cur.parent {
		switch cur.kind {
		case kindCenter:
			steps = append(steps, domain.SelectorStep{Kind: domain.StepCenter, Index: indexOf(m.doc.centers, cur)})
		case kindBranch:
			steps = append(steps, domain.SelectorStep{Kind: domain.StepBranch, Index: indexOf(cur.parent.branches, cur)})
		case kindImage:
			steps = append(steps, domain.SelectorStep{Kind: domain.StepImage, Index: indexOf(cur.parent.images, cur)})
		}
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps.String()
}

// item wraps n in the handle type matching its kind.
func (m *Model) item(n *node) ports.Item {
	if n == nil {
		return nil
	}
	if n.kind == kindImage {
		return &Image{m: m, id: n.id}
	}
	return &Branch{m: m, id: n.id}
}

// SelectedBranch returns the selected branch or map center.
func (m *Model) SelectedBranch() ports.Branch {
	n := m.selectedBranchNode()
	if n == nil {
		return nil
	}
	return &Branch{m: m, id: n.id}
}

// FindBySelectString resolves a selector to a branch, map center or image.
func (m *Model) FindBySelectString(selector string) ports.Item {
	return m.item(m.find(selector))
}

// SelectString returns the selector of the selection, or "" if nothing is selected.
func (m *Model) SelectString() string {
	n := m.selectedNode()
	if n == nil {
		return ""
	}
	return m.path(n)
}

func (m *Model) selectNode(n *node) bool {
	if n == nil {
		return false
	}
	m.selected = n.id
	return true
}

func (m *Model) Select(selector string) bool { return m.selectNode(m.find(selector)) }
func (m *Model) SelectID(id string) bool     { return m.selectNode(m.index[id]) }

// SelectItem selects item if it belongs to this map.
func (m *Model) SelectItem(item ports.Item) bool {
	if item == nil {
		return false
	}
	return m.selectNode(m.index[item.ID()])
}

func (m *Model) SelectParent() bool {
	n := m.selectedNode()
	if n == nil {
		return false
	}
	return m.selectNode(n.parent)
}

// SelectFirstBranch selects the first sibling of the selected branch.
func (m *Model) SelectFirstBranch() bool {
	return m.selectSibling(func(list []*node) *node { return list[0] })
}

// SelectLastBranch selects the last sibling of the selected branch.
func (m *Model) SelectLastBranch() bool {
	return m.selectSibling(func(list []*node) *node { return list[len(list)-1] })
}

func (m *Model) selectSibling(pick func([]*node) *node) bool {
	n := m.selectedNode()
	if n == nil || n.kind != kindBranch {
		return false
	}
	return m.selectNode(pick(n.parent.branches))
}

func (m *Model) SelectLatestAdded() bool { return m.selectNode(m.index[m.latest]) }
func (m *Model) UnselectAll()            { m.selected = "" }

// CenterOnID records id as the focus of the view.
func (m *Model) CenterOnID(id string) bool {
	if m.index[id] == nil {
		return false
	}
	m.centered = id
	return true
}

// Centered returns the ID passed to the last successful CenterOnID.
func (m *Model) Centered() string { return m.centered }

func (m *Model) CenterCount() int { return len(m.doc.centers) }

// SelectedID returns the ID of the selected item, or "" if nothing is selected.
func (m *Model) SelectedID() string { return m.selected }
