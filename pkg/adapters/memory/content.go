package memory

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
	"github.com/sz10101/vym/pkg/xmlobj"
)

// edit runs fn on the selected branch as one undo step.
func (m *Model) edit(desc string, fn func(n *node) bool) bool {
	n := m.selectedBranchNode()
	if n == nil {
		return false
	}
	return m.execute(desc, func() bool { return fn(n) })
}

func (m *Model) ColorBranch(c color.RGBA) {
	m.edit("color branch", func(n *node) bool {
		n.color = c
		return true
	})
}

func (m *Model) ColorSubtree(c color.RGBA) {
	m.edit("color subtree", func(n *node) bool {
		n.walk(func(d *node) {
			if d.branchLike() {
				d.color = c
			}
		})
		return true
	})
}

func (m *Model) HeadingText() string {
	if n := m.selectedNode(); n != nil {
		return n.heading
	}
	return ""
}

// HeadingXML returns the heading element as written to map files.
func (m *Model) HeadingXML() string {
	return m.textElement("heading", m.HeadingText())
}

func (m *Model) SetHeading(text string) {
	m.edit("set heading", func(n *node) bool {
		if n.heading == text {
			return false
		}
		n.heading = text
		return true
	})
}

func (m *Model) NoteText() string {
	if n := m.selectedNode(); n != nil {
		return n.note
	}
	return ""
}

// NoteXML returns the note element as written to map files.
func (m *Model) NoteXML() string {
	return m.textElement("vymnote", m.NoteText())
}

func (m *Model) textElement(tag, text string) string {
	w := m.writer()
	return strings.TrimPrefix(w.ValueElement(tag, w.CDATA(text)), "\n")
}

func (m *Model) writer() *xmlobj.Writer {
	w := xmlobj.NewWriter()
	w.Fixes = m.xml
	w.Width = m.indent
	return w
}

func (m *Model) SetNote(text string) {
	m.edit("set note", func(n *node) bool {
		if n.note == text {
			return false
		}
		n.note = text
		return true
	})
}

func (m *Model) ClearFlags() {
	m.edit("clear flags", func(n *node) bool {
		if len(n.flags) == 0 {
			return false
		}
		n.flags = nil
		return true
	})
}

func (m *Model) ToggleStandardFlag(name string) {
	m.edit("toggle flag "+name, func(n *node) bool {
		n.setFlag(name, !n.hasFlag(name))
		return true
	})
}

// ScrollBranch folds b. Map centers, leaves and folded branches cannot be folded.
func (m *Model) ScrollBranch(b ports.Branch) bool {
	n := m.branchNode(b)
	if n == nil || n.kind != kindBranch || n.scrolled || len(n.branches) == 0 {
		return false
	}
	return m.execute("scroll", func() bool {
		n.scrolled = true
		return true
	})
}

// UnscrollBranch unfolds b. It fails if b is not folded.
func (m *Model) UnscrollBranch(b ports.Branch) bool {
	n := m.branchNode(b)
	if n == nil || !n.scrolled {
		return false
	}
	return m.execute("unscroll", func() bool {
		n.scrolled = false
		return true
	})
}

func (m *Model) branchNode(b ports.Branch) *node {
	if b == nil {
		return nil
	}
	if n := m.index[b.ID()]; n != nil && n.branchLike() {
		return n
	}
	return nil
}

func (m *Model) UnscrollChildren() {
	m.edit("unscroll children", func(n *node) bool {
		changed := false
		n.walk(func(d *node) {
			if d.scrolled {
				d.scrolled = false
				changed = true
			}
		})
		return changed
	})
}

func (m *Model) ToggleScroll() {
	m.edit("toggle scroll", func(n *node) bool {
		if n.kind != kindBranch || (!n.scrolled && len(n.branches) == 0) {
			return false
		}
		n.scrolled = !n.scrolled
		return true
	})
}

func (m *Model) ToggleTask() {
	m.edit("toggle task", func(n *node) bool {
		if n.task == domain.TaskNone {
			n.task = domain.TaskNotStarted
		} else {
			n.task = domain.TaskNone
		}
		return true
	})
}

// CycleTaskStatus advances the task of the selection. It fails if there is no task.
func (m *Model) CycleTaskStatus() bool {
	n := m.selectedBranchNode()
	if n == nil {
		return false
	}
	next, ok := n.task.Next()
	if !ok {
		return false
	}
	return m.execute("cycle task", func() bool {
		n.task = next
		return true
	})
}

func (m *Model) ToggleTarget() {
	m.edit("toggle target", func(n *node) bool {
		n.target = !n.target
		return true
	})
}

func (m *Model) ToggleFrameIncludeChildren() {
	m.edit("toggle frame includes children", func(n *node) bool {
		n.frameIncludeChildren = !n.frameIncludeChildren
		return true
	})
}

// Metadata.

func (m *Model) Title() string   { return m.doc.title }
func (m *Model) Author() string  { return m.doc.author }
func (m *Model) Comment() string { return m.doc.comment }

func (m *Model) SetTitle(s string)   { m.setMeta("set title", &m.doc.title, s) }
func (m *Model) SetAuthor(s string)  { m.setMeta("set author", &m.doc.author, s) }
func (m *Model) SetComment(s string) { m.setMeta("set comment", &m.doc.comment, s) }

func (m *Model) setMeta(desc string, field *string, s string) {
	if *field == s {
		return
	}
	m.execute(desc, func() bool {
		*field = s
		return true
	})
}

func (m *Model) SetMapRotationAngle(angle float64) {
	m.execute("set rotation", func() bool {
		m.doc.rotation = angle
		return true
	})
}

func (m *Model) SetMapZoomFactor(factor float64) {
	if factor <= 0 {
		return
	}
	m.execute("set zoom", func() bool {
		m.doc.zoom = factor
		return true
	})
}

// RotationAngle returns the view rotation in degrees.
func (m *Model) RotationAngle() float64 { return m.doc.rotation }

// ZoomFactor returns the view zoom.
func (m *Model) ZoomFactor() float64 { return m.doc.zoom }

// FileName returns the base name of the map file, or "" for an unsaved map.
func (m *Model) FileName() string {
	if m.fileName == "" {
		return ""
	}
	return filepath.Base(m.fileName)
}

// FileDir returns the directory of the map file with a trailing separator.
func (m *Model) FileDir() string {
	if m.fileName == "" {
		return ""
	}
	return filepath.Dir(m.fileName) + string(filepath.Separator)
}

// DestPath returns the path the map is saved to.
func (m *Model) DestPath() string {
	if m.destPath != "" {
		return m.destPath
	}
	return m.fileName
}

// Slides.

// AddSlide appends a slide that focuses the current selection.
func (m *Model) AddSlide() {
	m.execute("add slide", func() bool {
		m.doc.slides = append(m.doc.slides, slide{
			id:        uuid.NewString(),
			name:      "Slide",
			selection: m.SelectString(),
		})
		return true
	})
}

func (m *Model) SlideCount() int { return len(m.doc.slides) }

// DeleteSlide removes slide n. Out of range indices are ignored.
func (m *Model) DeleteSlide(n int) {
	if n < 0 || n >= len(m.doc.slides) {
		return
	}
	m.execute("delete slide", func() bool {
		m.doc.slides = append(m.doc.slides[:n:n], m.doc.slides[n+1:]...)
		return true
	})
}
