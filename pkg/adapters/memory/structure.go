package memory

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
)

// AddNewBranch appends a child to the selected branch or map center.
func (m *Model) AddNewBranch() bool {
	parent := m.selectedBranchNode()
	if parent == nil {
		return false
	}
	return m.execute("add branch", func() bool {
		b := newNode(kindBranch)
		b.parent = parent
		parent.branches = append(parent.branches, b)
		m.latest = b.id
		return true
	})
}

// AddNewBranchBefore inserts a sibling before the selected branch.
// Map centers have no siblings.
func (m *Model) AddNewBranchBefore() bool {
	sel := m.selectedNode()
	if sel == nil || sel.kind != kindBranch {
		return false
	}
	return m.execute("add branch before", func() bool {
		parent := sel.parent
		b := newNode(kindBranch)
		b.parent = parent
		i := indexOf(parent.branches, sel)
		parent.branches = slices.Insert(parent.branches, i, b)
		m.latest = b.id
		return true
	})
}

// AddMapCenter adds a map center at (x, y).
func (m *Model) AddMapCenter(x, y float64) bool {
	return m.execute("add mapcenter", func() bool {
		c := newNode(kindCenter)
		c.x, c.y = x, y
		m.doc.centers = append(m.doc.centers, c)
		m.latest = c.id
		return true
	})
}

// DeleteSelection removes the selected item with its subtree and selects its parent.
func (m *Model) DeleteSelection() {
	sel := m.selectedNode()
	if sel == nil {
		return
	}
	m.execute("delete", func() bool {
		m.detach(sel)
		if sel.parent != nil {
			m.selected = sel.parent.id
		} else {
			m.selected = ""
		}
		return true
	})
}

// DeleteChildren removes all child branches of the selection.
func (m *Model) DeleteChildren() {
	sel := m.selectedBranchNode()
	if sel == nil || len(sel.branches) == 0 {
		return
	}
	m.execute("delete children", func() bool {
		sel.branches = nil
		return true
	})
}

// DeleteKeepChildren removes the selected branch and moves its children into its place.
func (m *Model) DeleteKeepChildren() {
	sel := m.selectedNode()
	if sel == nil || sel.kind != kindBranch {
		return
	}
	m.execute("delete keep children", func() bool {
		parent := sel.parent
		i := indexOf(parent.branches, sel)
		for _, c := range sel.branches {
			c.parent = parent
		}
		parent.branches = slices.Replace(parent.branches, i, i+1, sel.branches...)
		parent.images = append(parent.images, sel.images...)
		for _, img := range sel.images {
			img.parent = parent
		}
		m.selected = parent.id
		return true
	})
}

func (m *Model) detach(n *node) {
	if n.parent == nil {
		m.doc.centers = slices.DeleteFunc(m.doc.centers, func(c *node) bool { return c == n })
		return
	}
	if n.kind == kindImage {
		n.parent.images = slices.DeleteFunc(n.parent.images, func(c *node) bool { return c == n })
		return
	}
	n.parent.branches = slices.DeleteFunc(n.parent.branches, func(c *node) bool { return c == n })
}

// MoveUp swaps the selected branch with its previous sibling.
func (m *Model) MoveUp() {
	m.move(-1)
}

// MoveDown swaps the selected branch with its next sibling.
func (m *Model) MoveDown() {
	m.move(1)
}

func (m *Model) move(delta int) {
	sel := m.selectedNode()
	if sel == nil || sel.kind != kindBranch {
		return
	}
	list := sel.parent.branches
	i := indexOf(list, sel)
	j := i + delta
	if j < 0 || j >= len(list) {
		return
	}
	desc := "move down"
	if delta < 0 {
		desc = "move up"
	}
	m.execute(desc, func() bool {
		list[i], list[j] = list[j], list[i]
		return true
	})
}

// SortChildren orders the child branches of the selection by heading, ignoring case.
func (m *Model) SortChildren(descending bool) {
	sel := m.selectedBranchNode()
	if sel == nil || len(sel.branches) < 2 {
		return
	}
	m.execute("sort children", func() bool {
		slices.SortStableFunc(sel.branches, func(a, b *node) int {
			c := strings.Compare(strings.ToLower(a.heading), strings.ToLower(b.heading))
			if descending {
				return -c
			}
			return c
		})
		return true
	})
}

// CreateLink connects two distinct branches with a default pen.
func (m *Model) CreateLink(begin, end ports.Branch) ports.Link {
	if begin == nil || end == nil || begin.ID() == end.ID() {
		return nil
	}
	b, e := m.index[begin.ID()], m.index[end.ID()]
	if b == nil || e == nil || !b.branchLike() || !e.branchLike() {
		return nil
	}
	l := &xlink{id: uuid.NewString(), beginID: b.id, endID: e.id, pen: domain.DefaultPen()}
	m.execute("add xlink", func() bool {
		m.doc.links = append(m.doc.links, l)
		return true
	})
	return &Link{m: m, id: l.id}
}
