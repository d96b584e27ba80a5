package memory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/sz10101/vym/pkg/domain"
)

// LoadMap reads a vym map file.
//
// LoadNew replaces the whole document and clears the history. LoadInsert adds the
// map centers of the file as branches of the selection at pos (-1 appends), or as
// map centers if nothing is selected. LoadReplace puts them in place of the
// selection, or of all map centers if nothing is selected.
func (m *Model) LoadMap(fileName string, mode domain.LoadMode, filter domain.ContentFilter, pos int) error {
	pending := m.pending
	m.pending = nil

	data, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("read map %s: %w", fileName, err)
	}
	taken := m.index
	if mode == domain.LoadNew {
		taken = nil
	}
	imported, err := decode(data, filter, taken)
	if err != nil {
		return fmt.Errorf("load %s: %w", fileName, err)
	}

	if mode == domain.LoadNew {
		m.doc = imported
		m.undo, m.redo = nil, nil
		m.selected, m.latest, m.centered = "", "", ""
		m.fileName, _ = filepath.Abs(fileName)
		m.destPath = m.fileName
		m.modified = false
		m.reindex()
		return nil
	}
	if len(imported.centers) == 0 {
		return fmt.Errorf("load %s: no map center", fileName)
	}

	before := m.doc.clone()
	if pending != nil {
		before = pending.before
	}
	if err := m.merge(imported, mode, pos); err != nil {
		return err
	}
	m.reindex()
	desc := mode.String() + " " + filepath.Base(fileName)
	if pending != nil {
		desc = pending.description
	}
	m.push(&command{description: desc, before: before, after: m.doc.clone()})
	return nil
}

var errNoTarget = errors.New("selection cannot be replaced")

// merge inserts the map centers of imported into the document.
func (m *Model) merge(imported *document, mode domain.LoadMode, pos int) error {
	target := m.selectedBranchNode()
	m.latest = imported.centers[0].id
	m.doc.links = append(m.doc.links, imported.links...)
	m.doc.slides = append(m.doc.slides, imported.slides...)

	if target == nil {
		if mode == domain.LoadReplace {
			m.doc.centers = imported.centers
		} else {
			m.doc.centers = append(m.doc.centers, imported.centers...)
		}
		return nil
	}

	if mode == domain.LoadInsert {
		branches := asBranches(imported.centers, target)
		if pos < 0 || pos > len(target.branches) {
			pos = len(target.branches)
		}
		target.branches = slices.Insert(target.branches, pos, branches...)
		return nil
	}

	// Replace
	if target.kind == kindCenter {
		i := indexOf(m.doc.centers, target)
		m.doc.centers = slices.Replace(m.doc.centers, i, i+1, imported.centers...)
		m.selected = imported.centers[0].id
		return nil
	}
	parent := target.parent
	if parent == nil {
		return errNoTarget
	}
	i := indexOf(parent.branches, target)
	parent.branches = slices.Replace(parent.branches, i, i+1, asBranches(imported.centers, parent)...)
	m.selected = imported.centers[0].id
	return nil
}

// asBranches turns map centers into branches of parent.
func asBranches(centers []*node, parent *node) []*node {
	for _, c := range centers {
		c.kind = kindBranch
		c.x, c.y = 0, 0
		c.parent = parent
	}
	return centers
}

// Save writes the map to the file it was loaded from or last saved to.
func (m *Model) Save() error {
	if m.DestPath() == "" {
		return errors.New("map has no file name")
	}
	return m.SaveAs(m.DestPath())
}

// SaveAs writes the map to fileName and makes it the map's file.
func (m *Model) SaveAs(fileName string) error {
	if err := os.WriteFile(fileName, []byte(m.encode(m.doc)), 0o644); err != nil {
		return fmt.Errorf("save map: %w", err)
	}
	abs, err := filepath.Abs(fileName)
	if err != nil {
		abs = fileName
	}
	m.fileName, m.destPath = abs, abs
	m.modified = false
	return nil
}

// String renders the map as vym XML.
func (m *Model) String() string {
	return m.encode(m.doc)
}
