package script

import (
	"errors"
	"image/color"

	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
)

type fakeGeometry struct{ frame string }

func (g fakeGeometry) FrameTypeName() string { return g.frame }

type fakeBranch struct {
	id       string
	children int
	flags    map[string]bool
	url      string
	vymLink  string
	geometry ports.Geometry
	image    ports.Item
	notBL    bool
}

func (b *fakeBranch) ID() string                         { return b.id }
func (b *fakeBranch) IsBranchLike() bool                 { return !b.notBL }
func (b *fakeBranch) BranchCount() int                   { return b.children }
func (b *fakeBranch) ActivateStandardFlag(name string)   { b.flags[name] = true }
func (b *fakeBranch) DeactivateStandardFlag(name string) { delete(b.flags, name) }
func (b *fakeBranch) SetURL(url string)                  { b.url = url }
func (b *fakeBranch) SetVymLink(link string)             { b.vymLink = link }
func (b *fakeBranch) Geometry() ports.Geometry           { return b.geometry }
func (b *fakeBranch) LastImage() ports.Item              { return b.image }

type fakeImage struct{ id string }

func (i fakeImage) ID() string         { return i.id }
func (i fakeImage) IsBranchLike() bool { return false }

type fakeLink struct {
	begin, end ports.Branch
	pen        domain.Pen
}

func (l *fakeLink) Pen() domain.Pen       { return l.pen }
func (l *fakeLink) SetPen(pen domain.Pen) { l.pen = pen }

type loadCall struct {
	file   string
	mode   domain.LoadMode
	filter domain.ContentFilter
	pos    int
}

// fakeModel records every mutating call in calls.
type fakeModel struct {
	calls    []string
	selected *fakeBranch
	items    map[string]ports.Item
	refuse   bool // model refuses edits and selections

	heading, note string
	slides        int
	links         []*fakeLink
	loads         []loadCall
	checkpoints   []loadCall
	exports       []domain.ExportRequest
	exportErr     error
	lastErr       error
	colors        []color.RGBA
	title         string
	canCycle      bool
}

func newFakeModel() *fakeModel {
	root := &fakeBranch{id: "root", flags: map[string]bool{}}
	return &fakeModel{
		items: map[string]ports.Item{"mc:0": root},
	}
}

func (f *fakeModel) rec(name string) { f.calls = append(f.calls, name) }

func (f *fakeModel) selectRoot() *fakeBranch {
	f.selected = f.items["mc:0"].(*fakeBranch)
	return f.selected
}

func (f *fakeModel) AddNewBranch() bool {
	f.rec("AddNewBranch")
	if f.refuse {
		return false
	}
	f.selected.children++
	return true
}
func (f *fakeModel) AddNewBranchBefore() bool       { f.rec("AddNewBranchBefore"); return !f.refuse }
func (f *fakeModel) AddMapCenter(x, y float64) bool { f.rec("AddMapCenter"); return !f.refuse }
func (f *fakeModel) DeleteSelection()               { f.rec("DeleteSelection") }
func (f *fakeModel) DeleteChildren()                { f.rec("DeleteChildren") }
func (f *fakeModel) DeleteKeepChildren()            { f.rec("DeleteKeepChildren") }
func (f *fakeModel) MoveUp()                        { f.rec("MoveUp") }
func (f *fakeModel) MoveDown()                      { f.rec("MoveDown") }
func (f *fakeModel) SortChildren(descending bool)   { f.rec("SortChildren") }
func (f *fakeModel) CreateLink(begin, end ports.Branch) ports.Link {
	f.rec("CreateLink")
	if f.refuse {
		return nil
	}
	l := &fakeLink{begin: begin, end: end, pen: domain.DefaultPen()}
	f.links = append(f.links, l)
	return l
}

func (f *fakeModel) SelectedBranch() ports.Branch {
	if f.selected == nil {
		return nil
	}
	return f.selected
}
func (f *fakeModel) FindBySelectString(selector string) ports.Item {
	if item, ok := f.items[selector]; ok {
		return item
	}
	return nil
}
func (f *fakeModel) SelectString() string {
	if f.selected == nil {
		return ""
	}
	return "mc:0"
}
func (f *fakeModel) Select(selector string) bool {
	b, ok := f.items[selector].(*fakeBranch)
	if ok {
		f.selected = b
	}
	return ok
}
func (f *fakeModel) SelectID(id string) bool         { return id == "root" && f.Select("mc:0") }
func (f *fakeModel) SelectItem(item ports.Item) bool { return !f.refuse }
func (f *fakeModel) SelectParent() bool              { return !f.refuse }
func (f *fakeModel) SelectFirstBranch() bool         { return !f.refuse }
func (f *fakeModel) SelectLastBranch() bool          { return !f.refuse }
func (f *fakeModel) SelectLatestAdded() bool         { return !f.refuse }
func (f *fakeModel) UnselectAll()                    { f.selected = nil }
func (f *fakeModel) CenterOnID(id string) bool       { return id == "root" }
func (f *fakeModel) CenterCount() int                { return 1 }

func (f *fakeModel) ColorBranch(c color.RGBA) {
	f.rec("ColorBranch")
	f.colors = append(f.colors, c)
}
func (f *fakeModel) ColorSubtree(c color.RGBA) {
	f.rec("ColorSubtree")
	f.colors = append(f.colors, c)
}
func (f *fakeModel) HeadingText() string                { return f.heading }
func (f *fakeModel) HeadingXML() string                 { return "<heading>" + f.heading + "</heading>" }
func (f *fakeModel) SetHeading(text string)             { f.rec("SetHeading"); f.heading = text }
func (f *fakeModel) NoteText() string                   { return f.note }
func (f *fakeModel) NoteXML() string                    { return "<note>" + f.note + "</note>" }
func (f *fakeModel) SetNote(text string)                { f.rec("SetNote"); f.note = text }
func (f *fakeModel) ClearFlags()                        { f.rec("ClearFlags") }
func (f *fakeModel) ToggleStandardFlag(name string)     { f.rec("ToggleStandardFlag") }
func (f *fakeModel) ScrollBranch(b ports.Branch) bool   { f.rec("ScrollBranch"); return !f.refuse }
func (f *fakeModel) UnscrollBranch(b ports.Branch) bool { f.rec("UnscrollBranch"); return !f.refuse }
func (f *fakeModel) UnscrollChildren()                  { f.rec("UnscrollChildren") }
func (f *fakeModel) ToggleScroll()                      { f.rec("ToggleScroll") }
func (f *fakeModel) ToggleTask()                        { f.rec("ToggleTask") }
func (f *fakeModel) CycleTaskStatus() bool              { f.rec("CycleTaskStatus"); return f.canCycle }
func (f *fakeModel) ToggleTarget()                      { f.rec("ToggleTarget") }
func (f *fakeModel) ToggleFrameIncludeChildren()        { f.rec("ToggleFrameIncludeChildren") }
func (f *fakeModel) Title() string                      { return f.title }
func (f *fakeModel) SetTitle(s string)                  { f.rec("SetTitle"); f.title = s }
func (f *fakeModel) Author() string                     { return "" }
func (f *fakeModel) SetAuthor(s string)                 { f.rec("SetAuthor") }
func (f *fakeModel) Comment() string                    { return "" }
func (f *fakeModel) SetComment(s string)                { f.rec("SetComment") }
func (f *fakeModel) SetMapRotationAngle(angle float64)  { f.rec("SetMapRotationAngle") }
func (f *fakeModel) SetMapZoomFactor(factor float64)    { f.rec("SetMapZoomFactor") }
func (f *fakeModel) FileName() string                   { return "test.vym" }
func (f *fakeModel) FileDir() string                    { return "/maps" }
func (f *fakeModel) DestPath() string                   { return "/maps/test.vym" }
func (f *fakeModel) AddSlide()                          { f.rec("AddSlide"); f.slides++ }
func (f *fakeModel) SlideCount() int                    { return f.slides }
func (f *fakeModel) DeleteSlide(n int)                  { f.rec("DeleteSlide"); f.slides-- }
func (f *fakeModel) Undo()                              { f.rec("Undo") }
func (f *fakeModel) Redo()                              { f.rec("Redo") }
func (f *fakeModel) Copy()                              { f.rec("Copy") }
func (f *fakeModel) Cut()                               { f.rec("Cut") }
func (f *fakeModel) Paste()                             { f.rec("Paste") }
func (f *fakeModel) SaveStateBeforeLoad(mode domain.LoadMode, fileName string) {
	f.checkpoints = append(f.checkpoints, loadCall{file: fileName, mode: mode})
}
func (f *fakeModel) Export(req domain.ExportRequest) error {
	f.rec("Export")
	f.exports = append(f.exports, req)
	return f.exportErr
}
func (f *fakeModel) ExportLast() error {
	f.rec("ExportLast")
	return f.lastErr
}
func (f *fakeModel) LoadMap(fileName string, mode domain.LoadMode, filter domain.ContentFilter, pos int) error {
	f.rec("LoadMap")
	f.loads = append(f.loads, loadCall{file: fileName, mode: mode, filter: filter, pos: pos})
	if f.refuse {
		return errors.New("boom")
	}
	return nil
}

var _ ports.Model = (*fakeModel)(nil)

type fakeHost struct {
	models  []ports.Model
	current int
	editor  bool
}

func (h *fakeHost) ToggleTreeEditor() { h.editor = !h.editor }
func (h *fakeHost) CurrentModel() ports.Model {
	if len(h.models) == 0 {
		return nil
	}
	return h.models[h.current]
}
func (h *fakeHost) Models() []ports.Model { return h.models }
func (h *fakeHost) GotoWindow(n int) bool {
	if n < 0 || n >= len(h.models) {
		return false
	}
	h.current = n
	return true
}
