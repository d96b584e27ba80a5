package script

import (
	"context"
	"image/color"
	"path/filepath"
	"time"

	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
)

func param(name string, t ParamType) Param { return Param{Name: name, Type: t} }

func optional(name string, t ParamType, def any) Param {
	return Param{Name: name, Type: t, Optional: true, Default: def}
}

// mapOps is the dispatch table of the map façade.
var mapOps = newTable[*Map]("map",
	// Structural edits.
	&operation[*Map]{
		Spec: Spec{Name: "addBranch", Doc: "Append a child to the selected branch.", Selection: true},
		run: func(m *Map, c *call) any {
			if !m.model.AddNewBranch() {
				c.fail(domain.KindUnknown, "Couldn't add branch to map")
			}
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "addBranchBefore", Doc: "Insert a sibling before the selected branch.", Selection: true},
		run: func(m *Map, c *call) any {
			if !m.model.AddNewBranchBefore() {
				c.fail(domain.KindUnknown, "Couldn't add branch before selection to map")
			}
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "addMapCenter", Doc: "Create a map center at (x, y).",
			Params: []Param{param("x", Float), param("y", Float)}},
		run: func(m *Map, c *call) any {
			if !m.model.AddMapCenter(c.real(0), c.real(1)) {
				c.fail(domain.KindUnknown, "Couldn't add mapcenter")
			}
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "addMapInsert", Doc: "Load a map file into the document at pos (-1 appends).",
			Params: []Param{param("filename", String), optional("pos", Int, -1), optional("contentFilter", Int, 0)}},
		run: func(m *Map, c *call) any {
			m.load(c, c.str(0), domain.LoadInsert, domain.ContentFilter(c.num(2)), c.num(1))
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "addMapReplace", Doc: "Replace the document with a map file.",
			Params: []Param{param("filename", String)}},
		run: func(m *Map, c *call) any {
			m.load(c, c.str(0), domain.LoadReplace, domain.FilterNone, -1)
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "addSlide", Doc: "Append a slide."},
		run: func(m *Map, c *call) any {
			m.model.AddSlide()
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "removeSlide", Doc: "Delete slide n.", Params: []Param{param("n", Int)}},
		run: func(m *Map, c *call) any {
			n, count := c.num(0), m.model.SlideCount()
			upper := count - 1
			if m.fixes.RemoveSlideBound {
				upper = count
			}
			if n < 0 || n >= upper {
				c.fail(domain.KindRange, "Slide '%d' not available.", n)
				return nil
			}
			m.model.DeleteSlide(n)
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "addXLink", Doc: "Link two branches given by selector.",
			Params: []Param{
				param("beginSel", String), param("endSel", String),
				optional("width", Int, 0), optional("color", String, ""), optional("penStyle", String, ""),
			}},
		run: func(m *Map, c *call) any {
			m.addXLink(c, c.str(0), c.str(1), c.num(2), c.str(3), c.str(4))
			return nil
		},
	},
	selected("remove", "Delete the selected branch and its subtree.", func(m *Map, _ *call) { m.model.DeleteSelection() }),
	selected("removeChildren", "Delete the children of the selected branch.", func(m *Map, _ *call) { m.model.DeleteChildren() }),
	selected("removeKeepChildren", "Delete the selected branch and keep its children.", func(m *Map, _ *call) { m.model.DeleteKeepChildren() }),
	selected("copy", "Copy the selected subtree to the clipboard.", func(m *Map, _ *call) { m.model.Copy() }),
	selected("cut", "Move the selected subtree to the clipboard.", func(m *Map, _ *call) { m.model.Cut() }),
	plain("paste", "Paste the clipboard below the selection.", func(m *Map, _ *call) { m.model.Paste() }),
	plain("undo", "Undo the last change.", func(m *Map, _ *call) { m.model.Undo() }),
	plain("redo", "Redo the last undone change.", func(m *Map, _ *call) { m.model.Redo() }),
	selected("moveUp", "Move the selected branch up.", func(m *Map, _ *call) { m.model.MoveUp() }),
	selected("moveDown", "Move the selected branch down.", func(m *Map, _ *call) { m.model.MoveDown() }),
	&operation[*Map]{
		Spec: Spec{Name: "sortChildren", Doc: "Sort the children of the selected branch by heading.",
			Params: []Param{optional("inverse", Bool, false)}, Selection: true},
		run: func(m *Map, c *call) any {
			m.model.SortChildren(c.flag(0))
			return nil
		},
	},

	// Attributes and content.
	&operation[*Map]{
		Spec: Spec{Name: "colorBranch", Doc: "Set the heading color of the selected branch.",
			Params: []Param{param("color", String)}, Selection: true},
		run: func(m *Map, c *call) any {
			if col, ok := parseColor(c, c.str(0)); ok {
				m.model.ColorBranch(col)
			}
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "colorSubtree", Doc: "Set the heading color of the selected subtree.",
			Params: []Param{param("color", String)}, Selection: true},
		run: func(m *Map, c *call) any {
			if col, ok := parseColor(c, c.str(0)); ok {
				m.model.ColorSubtree(col)
			}
			return nil
		},
	},
	selectedText("setHeadingPlainText", "Set the heading of the selected branch.", func(m *Map, s string) { m.model.SetHeading(s) }),
	getter("getHeadingPlainText", "Heading of the selection as plain text.", func(m *Map) string { return m.model.HeadingText() }),
	getter("getHeadingXML", "Heading of the selection as XML.", func(m *Map) string { return m.model.HeadingXML() }),
	selectedText("setNotePlainText", "Set the note of the selected branch.", func(m *Map, s string) { m.model.SetNote(s) }),
	getter("getNotePlainText", "Note of the selection as plain text.", func(m *Map) string {
		if m.fixes.NoteGetters {
			return m.model.NoteText()
		}
		return m.model.HeadingText()
	}),
	getter("getNoteXML", "Note of the selection as XML.", func(m *Map) string {
		if m.fixes.NoteGetters {
			return m.model.NoteXML()
		}
		return m.model.HeadingXML()
	}),
	&operation[*Map]{
		Spec: Spec{Name: "setURL", Doc: "Set the URL of the selected branch.",
			Params: []Param{param("url", String)}, Selection: true},
		run: func(m *Map, c *call) any {
			c.sel.SetURL(c.str(0))
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "setVymLink", Doc: "Link the selected branch to another map file.",
			Params: []Param{param("link", String)}, Selection: true},
		run: func(m *Map, c *call) any {
			c.sel.SetVymLink(c.str(0))
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "setFlag", Doc: "Activate a standard flag.",
			Params: []Param{param("name", String)}, Selection: true},
		run: func(m *Map, c *call) any {
			c.sel.ActivateStandardFlag(c.str(0))
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "unsetFlag", Doc: "Deactivate a standard flag.",
			Params: []Param{param("name", String)}, Selection: true},
		run: func(m *Map, c *call) any {
			c.sel.DeactivateStandardFlag(c.str(0))
			return nil
		},
	},
	selectedText("toggleFlag", "Toggle a standard flag.", func(m *Map, s string) { m.model.ToggleStandardFlag(s) }),
	selected("clearFlags", "Remove all flags of the selected branch.", func(m *Map, _ *call) { m.model.ClearFlags() }),
	selected("scroll", "Fold the selected branch.", func(m *Map, c *call) {
		if !m.model.ScrollBranch(c.sel) {
			c.fail(domain.KindUnknown, "Couldn't scroll branch")
		}
	}),
	&operation[*Map]{
		Spec: Spec{Name: "unscroll", Doc: "Unfold the selected branch.", Selection: true, Returns: ReturnsBool},
		run: func(m *Map, c *call) any {
			if !m.model.UnscrollBranch(c.sel) {
				c.fail(domain.KindUnknown, "Couldn't unscroll branch")
				return false
			}
			return true
		},
	},
	selected("unscrollChildren", "Unfold all children of the selected branch.", func(m *Map, _ *call) { m.model.UnscrollChildren() }),
	selected("toggleScroll", "Fold or unfold the selected branch.", func(m *Map, _ *call) { m.model.ToggleScroll() }),
	selected("toggleTask", "Add or remove the task of the selected branch.", func(m *Map, _ *call) { m.model.ToggleTask() }),
	selected("cycleTask", "Advance the task status of the selected branch.", func(m *Map, c *call) {
		if !m.model.CycleTaskStatus() {
			c.fail(domain.KindSyntax, "Couldn't cycle task status")
		}
	}),
	selected("toggleTarget", "Mark or unmark the selected branch as jump target.", func(m *Map, _ *call) { m.model.ToggleTarget() }),
	selected("toggleFrameIncludeChildren", "Toggle whether the frame encloses the children.",
		func(m *Map, _ *call) { m.model.ToggleFrameIncludeChildren() }),
	&operation[*Map]{
		Spec: Spec{Name: "getFrameType", Doc: "Frame type name of the selected branch.", Selection: true, Returns: ReturnsString},
		run: func(m *Map, c *call) any {
			g := c.sel.Geometry()
			if g == nil {
				c.fail(domain.KindUnknown, "No BranchObj available")
				return ""
			}
			return g.FrameTypeName()
		},
	},

	// Selection.
	&operation[*Map]{
		Spec: Spec{Name: "select", Doc: "Select the item at selector.",
			Params: []Param{param("selector", String)}, Returns: ReturnsBool},
		run: func(m *Map, c *call) any {
			return check(c, m.model.Select(c.str(0)), "Couldn't select %s", c.str(0))
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "selectID", Doc: "Select the item with the given ID.",
			Params: []Param{param("id", String)}, Returns: ReturnsBool},
		run: func(m *Map, c *call) any {
			return check(c, m.model.SelectID(c.str(0)), "Couldn't select ID %s", c.str(0))
		},
	},
	selector("selectParent", "Select the parent of the selection.", false,
		func(m *Map) bool { return m.model.SelectParent() }, "Couldn't select parent item"),
	selector("selectFirstBranch", "Select the first sibling of the selected branch.", true,
		func(m *Map) bool { return m.model.SelectFirstBranch() }, "Couldn't select first branch"),
	selector("selectLastBranch", "Select the last sibling of the selected branch.", true,
		func(m *Map) bool { return m.model.SelectLastBranch() }, "Couldn't select last branch"),
	&operation[*Map]{
		Spec: Spec{Name: "selectLastImage", Doc: "Select the last image of the selected branch.",
			Selection: true, Returns: ReturnsBool},
		run: func(m *Map, c *call) any {
			img := c.sel.LastImage()
			if img == nil {
				c.fail(domain.KindUnknown, "Couldn't get last image")
				return false
			}
			return check(c, m.model.SelectItem(img), "Couldn't select last image")
		},
	},
	selector("selectLatestAdded", "Select the most recently added item.", false,
		func(m *Map) bool { return m.model.SelectLatestAdded() }, "Couldn't select latest added item"),
	&operation[*Map]{
		Spec: Spec{Name: "unselectAll", Doc: "Clear the selection.", Returns: ReturnsBool},
		run: func(m *Map, c *call) any {
			m.model.UnselectAll()
			return true
		},
	},
	getter("getSelectString", "Canonical selector of the selection.", func(m *Map) string { return m.model.SelectString() }),
	&operation[*Map]{
		Spec: Spec{Name: "centerOnID", Doc: "Scroll the view to the item with the given ID.",
			Params: []Param{param("id", String)}, Returns: ReturnsBool},
		run: func(m *Map, c *call) any {
			return check(c, m.model.CenterOnID(c.str(0)), "Could not center on ID %s", c.str(0))
		},
	},

	// Queries and metadata.
	&operation[*Map]{
		Spec: Spec{Name: "branchCount", Doc: "Number of children of the selected branch.", Selection: true, Returns: ReturnsInt},
		run: func(m *Map, c *call) any {
			return c.sel.BranchCount()
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "centerCount", Doc: "Number of map centers.", Returns: ReturnsInt},
		run: func(m *Map, c *call) any {
			return m.model.CenterCount()
		},
	},
	getter("getMapTitle", "Title of the map.", func(m *Map) string { return m.model.Title() }),
	getter("getMapAuthor", "Author of the map.", func(m *Map) string { return m.model.Author() }),
	getter("getMapComment", "Comment of the map.", func(m *Map) string { return m.model.Comment() }),
	getter("getFileName", "File name of the map.", func(m *Map) string { return m.model.FileName() }),
	getter("getFileDir", "Directory of the map file.", func(m *Map) string { return m.model.FileDir() }),
	getter("getDestPath", "Path the map is saved to.", func(m *Map) string { return m.model.DestPath() }),
	setter("setMapTitle", "Set the map title.", func(m *Map, s string) { m.model.SetTitle(s) }),
	setter("setMapAuthor", "Set the map author.", func(m *Map, s string) { m.model.SetAuthor(s) }),
	setter("setMapComment", "Set the map comment.", func(m *Map, s string) { m.model.SetComment(s) }),
	&operation[*Map]{
		Spec: Spec{Name: "setMapRotation", Doc: "Rotate the map view.", Params: []Param{param("angle", Float)}},
		run: func(m *Map, c *call) any {
			m.model.SetMapRotationAngle(c.real(0))
			return nil
		},
	},
	&operation[*Map]{
		Spec: Spec{Name: "setMapZoom", Doc: "Zoom the map view.", Params: []Param{param("factor", Float)}},
		run: func(m *Map, c *call) any {
			m.model.SetMapZoomFactor(c.real(0))
			return nil
		},
	},

	// Export.
	&operation[*Map]{
		Spec: Spec{Name: "exportMap", Doc: "Export the map. Parameters are key=value entries.",
			Params: []Param{param("format", String), optional("parameters", StringList, nil)}, Returns: ReturnsBool},
		run: func(m *Map, c *call) any {
			return m.exportMap(c, c.str(0), c.list(1))
		},
	},

	// Miscellaneous.
	plain("nop", "Do nothing.", func(*Map, *call) {}),
	&operation[*Map]{
		Spec: Spec{Name: "sleep", Doc: "Pause the script for n seconds.", Params: []Param{param("n", Float)}},
		run: func(m *Map, c *call) any {
			m.sleep(c.ctx, c.real(0))
			return nil
		},
	},
)

func plain(name, doc string, run func(*Map, *call)) *operation[*Map] {
	return &operation[*Map]{
		Spec: Spec{Name: name, Doc: doc},
		run:  func(m *Map, c *call) any { run(m, c); return nil },
	}
}

func selected(name, doc string, run func(*Map, *call)) *operation[*Map] {
	op := plain(name, doc, run)
	op.Selection = true
	return op
}

func selectedText(name, doc string, set func(*Map, string)) *operation[*Map] {
	return &operation[*Map]{
		Spec: Spec{Name: name, Doc: doc, Params: []Param{param("text", String)}, Selection: true},
		run:  func(m *Map, c *call) any { set(m, c.str(0)); return nil },
	}
}

func setter(name, doc string, set func(*Map, string)) *operation[*Map] {
	op := selectedText(name, doc, set)
	op.Selection = false
	return op
}

func getter(name, doc string, get func(*Map) string) *operation[*Map] {
	return &operation[*Map]{
		Spec: Spec{Name: name, Doc: doc, Returns: ReturnsString},
		run:  func(m *Map, _ *call) any { return get(m) },
	}
}

func selector(name, doc string, scoped bool, sel func(*Map) bool, msg string) *operation[*Map] {
	return &operation[*Map]{
		Spec: Spec{Name: name, Doc: doc, Selection: scoped, Returns: ReturnsBool},
		run:  func(m *Map, c *call) any { return check(c, sel(m), "%s", msg) },
	}
}

// check reports an UnknownError if ok is false and returns ok.
func check(c *call, ok bool, format string, args ...any) bool {
	if !ok {
		c.fail(domain.KindUnknown, format, args...)
	}
	return ok
}

func parseColor(c *call, s string) (color.RGBA, bool) {
	col, err := domain.ParseColor(s)
	if err != nil {
		c.fail(domain.KindSyntax, "Couldn't parse color %s", s)
		return col, false
	}
	return col, true
}

func (m *Map) resolve(fileName string) string {
	if filepath.IsAbs(fileName) {
		return fileName
	}
	dir := m.workDir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(filepath.Join(dir, fileName))
	if err != nil {
		return filepath.Join(dir, fileName)
	}
	return abs
}

func (m *Map) load(c *call, fileName string, mode domain.LoadMode, filter domain.ContentFilter, pos int) {
	path := m.resolve(fileName)
	m.model.SaveStateBeforeLoad(mode, path)
	if err := m.model.LoadMap(path, mode, filter, pos); err != nil {
		m.logger.Debug("load failed", "file", path, "error", err)
		c.fail(domain.KindUnknown, "Couldn't load %s", path)
	}
}

func (m *Map) addXLink(c *call, beginSel, endSel string, width int, color, penStyle string) {
	begin := m.model.FindBySelectString(beginSel)
	end := m.model.FindBySelectString(endSel)
	if begin == nil || end == nil {
		c.fail(domain.KindUnknown, "Begin or end of xLink not found")
		return
	}
	bb, okB := begin.(ports.Branch)
	eb, okE := end.(ports.Branch)
	if !okB || !okE || !begin.IsBranchLike() || !end.IsBranchLike() {
		c.fail(domain.KindUnknown, "Begin or end of xLink are not branch or mapcenter")
		return
	}

	link := m.model.CreateLink(bb, eb)
	if link == nil {
		c.fail(domain.KindUnknown, "Couldn't create xLink")
		return
	}
	pen := link.Pen()
	if width > 0 {
		pen.Width = width
	}
	if color != "" {
		if col, err := domain.ParseColor(color); err == nil {
			pen.Color = col
		} else {
			c.fail(domain.KindUnknown, "Couldn't set color %s", color)
		}
	}
	if penStyle != "" {
		if style, ok := domain.ParsePenStyle(penStyle); ok {
			pen.Style = style
		} else {
			c.fail(domain.KindUnknown, "Couldn't set penstyle %s", penStyle)
		}
	}
	link.SetPen(pen)
}

func (m *Map) sleep(ctx context.Context, seconds float64) {
	if !m.fixes.Sleep {
		m.logger.Debug("sleep ignored", "seconds", seconds)
		return
	}
	if seconds <= 0 {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	t := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
