package memory

import (
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
)

// Branch is a handle to a branch or map center, resolved by ID on every call
// so that it survives undo and redo.
type Branch struct {
	m  *Model
	id string
}

func (b *Branch) node() *node { return b.m.index[b.id] }

func (b *Branch) ID() string         { return b.id }
func (b *Branch) IsBranchLike() bool { return true }

// Heading returns the heading text, or "" if the branch was deleted.
func (b *Branch) Heading() string {
	if n := b.node(); n != nil {
		return n.heading
	}
	return ""
}

func (b *Branch) BranchCount() int {
	if n := b.node(); n != nil {
		return len(n.branches)
	}
	return 0
}

// HasFlag reports whether the standard flag name is active.
func (b *Branch) HasFlag(name string) bool {
	n := b.node()
	return n != nil && n.hasFlag(name)
}

func (b *Branch) ActivateStandardFlag(name string)   { b.setFlag(name, true) }
func (b *Branch) DeactivateStandardFlag(name string) { b.setFlag(name, false) }

func (b *Branch) setFlag(name string, on bool) {
	n := b.node()
	if n == nil || n.hasFlag(name) == on {
		return
	}
	desc := "unset flag " + name
	if on {
		desc = "set flag " + name
	}
	b.m.execute(desc, func() bool {
		n.setFlag(name, on)
		return true
	})
}

func (b *Branch) SetURL(url string) {
	b.update("set URL", func(n *node) { n.url = url })
}

func (b *Branch) SetVymLink(link string) {
	b.update("set vymlink", func(n *node) { n.vymLink = link })
}

func (b *Branch) update(desc string, fn func(*node)) {
	n := b.node()
	if n == nil {
		return
	}
	b.m.execute(desc, func() bool {
		fn(n)
		return true
	})
}

// Geometry returns nil if the branch was deleted.
func (b *Branch) Geometry() ports.Geometry {
	n := b.node()
	if n == nil {
		return nil
	}
	return geometry{frame: n.frame}
}

func (b *Branch) LastImage() ports.Item {
	n := b.node()
	if n == nil || len(n.images) == 0 {
		return nil
	}
	return &Image{m: b.m, id: n.images[len(n.images)-1].id}
}

type geometry struct {
	frame domain.FrameType
}

func (g geometry) FrameTypeName() string { return g.frame.String() }

// Image is a handle to an image attached to a branch.
type Image struct {
	m  *Model
	id string
}

func (i *Image) ID() string         { return i.id }
func (i *Image) IsBranchLike() bool { return false }

// Link is a handle to a cross-link.
type Link struct {
	m  *Model
	id string
}

func (l *Link) link() *xlink {
	for _, x := range l.m.doc.links {
		if x.id == l.id {
			return x
		}
	}
	return nil
}

// Pen returns the default pen if the link was removed.
func (l *Link) Pen() domain.Pen {
	if x := l.link(); x != nil {
		return x.pen
	}
	return domain.DefaultPen()
}

func (l *Link) SetPen(pen domain.Pen) {
	x := l.link()
	if x == nil || x.pen == pen {
		return
	}
	l.m.execute("set xlink pen", func() bool {
		x.pen = pen
		return true
	})
}

// Links returns handles to all cross-links of the map.
func (m *Model) Links() []*Link {
	links := make([]*Link, len(m.doc.links))
	for i, x := range m.doc.links {
		links[i] = &Link{m: m, id: x.id}
	}
	return links
}

// Endpoints returns the IDs of the linked branches.
func (l *Link) Endpoints() (begin, end string) {
	if x := l.link(); x != nil {
		return x.beginID, x.endID
	}
	return "", ""
}
