package memory

import (
	"image/color"
	"slices"

	"github.com/google/uuid"
	"github.com/sz10101/vym/pkg/domain"
)

type nodeKind int

const (
	kindCenter nodeKind = iota
	kindBranch
	kindImage
)

// node is one item of the map tree. Centers and branches carry children, images do not.
type node struct {
	id      string
	kind    nodeKind
	heading string
	note    string
	url     string
	vymLink string
	color   color.RGBA
	flags   []string
	task    domain.TaskStatus
	frame   domain.FrameType

	scrolled             bool
	target               bool
	frameIncludeChildren bool

	x, y float64 // Map centers only

	parent   *node
	branches []*node
	images   []*node
}

func newNode(kind nodeKind) *node {
	return &node{id: uuid.NewString(), kind: kind}
}

func (n *node) branchLike() bool {
	return n.kind != kindImage
}

func (n *node) hasFlag(name string) bool {
	return slices.Contains(n.flags, name)
}

func (n *node) setFlag(name string, on bool) {
	i := slices.Index(n.flags, name)
	switch {
	case on && i < 0:
		n.flags = append(n.flags, name)
	case !on && i >= 0:
		n.flags = slices.Delete(n.flags, i, i+1)
	}
}

// siblings returns the slice n lives in, or nil for centers.
func (n *node) siblings() []*node {
	if n.parent == nil {
		return nil
	}
	if n.kind == kindImage {
		return n.parent.images
	}
	return n.parent.branches
}

// walk calls fn for n and every descendant, depth first.
func (n *node) walk(fn func(*node)) {
	fn(n)
	for _, img := range n.images {
		fn(img)
	}
	for _, b := range n.branches {
		b.walk(fn)
	}
}

func cloneNode(n, parent *node) *node {
	c := *n
	c.parent = parent
	c.flags = slices.Clone(n.flags)
	c.branches = make([]*node, len(n.branches))
	for i, b := range n.branches {
		c.branches[i] = cloneNode(b, &c)
	}
	c.images = make([]*node, len(n.images))
	for i, img := range n.images {
		c.images[i] = cloneNode(img, &c)
	}
	return &c
}

// renew gives n and its descendants fresh IDs, so a pasted copy does not
// collide with the original. old maps previous IDs to new ones.
func renew(n *node, old map[string]string) {
	n.walk(func(d *node) {
		id := uuid.NewString()
		old[d.id] = id
		d.id = id
	})
}

func indexOf(list []*node, n *node) int {
	return slices.Index(list, n)
}
