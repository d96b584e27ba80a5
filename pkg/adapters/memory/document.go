package memory

import (
	"slices"

	"github.com/sz10101/vym/pkg/domain"
)

// xlink connects two branches by ID so that snapshots stay self-contained.
type xlink struct {
	id      string
	beginID string
	endID   string
	pen     domain.Pen
}

type slide struct {
	id        string
	name      string
	selection string // Selector of the item the slide focuses
}

// document is the undoable state of a map.
type document struct {
	centers  []*node
	links    []*xlink
	slides   []slide
	title    string
	author   string
	comment  string
	rotation float64
	zoom     float64
}

func newDocument() *document {
	return &document{zoom: 1}
}

func (d *document) clone() *document {
	c := *d
	c.centers = make([]*node, len(d.centers))
	for i, n := range d.centers {
		c.centers[i] = cloneNode(n, nil)
	}
	c.links = make([]*xlink, len(d.links))
	for i, l := range d.links {
		cp := *l
		c.links[i] = &cp
	}
	c.slides = slices.Clone(d.slides)
	return &c
}

// index maps every item ID to its node.
func (d *document) index() map[string]*node {
	idx := make(map[string]*node)
	for _, c := range d.centers {
		c.walk(func(n *node) { idx[n.id] = n })
	}
	return idx
}

// prune drops links whose endpoints are gone.
func (d *document) prune(idx map[string]*node) {
	d.links = slices.DeleteFunc(d.links, func(l *xlink) bool {
		return idx[l.beginID] == nil || idx[l.endID] == nil
	})
}

// command is one undo step, stored as before and after snapshots.
type command struct {
	description string
	before      *document
	after       *document
}
