package ports

import (
	"image/color"

	"github.com/sz10101/vym/pkg/domain"
)

// Item is anything a selector can address: map centers, branches and images.
type Item interface {
	ID() string
	// IsBranchLike reports whether the item is a branch or a map center.
	IsBranchLike() bool
}

// Geometry is the drawn representation of a branch.
type Geometry interface {
	FrameTypeName() string
}

// Branch is a node of the map tree.
type Branch interface {
	Item
	BranchCount() int
	ActivateStandardFlag(name string)
	DeactivateStandardFlag(name string)
	SetURL(url string)
	SetVymLink(link string)
	// Geometry returns nil if the branch has not been laid out.
	Geometry() Geometry
	// LastImage returns nil if the branch has no images.
	LastImage() Item
}

// Link is a cross-link between two branches.
type Link interface {
	Pen() domain.Pen
	SetPen(pen domain.Pen)
}

// Structure covers edits of the tree shape. Edits act on the current selection.
type Structure interface {
	AddNewBranch() bool
	AddNewBranchBefore() bool
	AddMapCenter(x, y float64) bool
	DeleteSelection()
	DeleteChildren()
	DeleteKeepChildren()
	MoveUp()
	MoveDown()
	SortChildren(descending bool)
	// CreateLink returns nil if the model refuses the link.
	CreateLink(begin, end Branch) Link
}

// Selection covers the current selection and lookups by selector or ID.
type Selection interface {
	// SelectedBranch returns nil if no branch is selected.
	SelectedBranch() Branch
	// FindBySelectString returns nil if nothing matches.
	FindBySelectString(selector string) Item
	SelectString() string
	Select(selector string) bool
	SelectID(id string) bool
	SelectItem(item Item) bool
	SelectParent() bool
	SelectFirstBranch() bool
	SelectLastBranch() bool
	SelectLatestAdded() bool
	UnselectAll()
	CenterOnID(id string) bool
	CenterCount() int
}

// Content covers attributes of the selected branch.
type Content interface {
	ColorBranch(c color.RGBA)
	ColorSubtree(c color.RGBA)
	HeadingText() string
	HeadingXML() string
	SetHeading(text string)
	NoteText() string
	NoteXML() string
	SetNote(text string)
	ClearFlags()
	ToggleStandardFlag(name string)
	ScrollBranch(b Branch) bool
	UnscrollBranch(b Branch) bool
	UnscrollChildren()
	ToggleScroll()
	ToggleTask()
	CycleTaskStatus() bool
	ToggleTarget()
	ToggleFrameIncludeChildren()
}

// Metadata covers document-level properties.
type Metadata interface {
	Title() string
	SetTitle(s string)
	Author() string
	SetAuthor(s string)
	Comment() string
	SetComment(s string)
	SetMapRotationAngle(angle float64)
	SetMapZoomFactor(factor float64)
	FileName() string
	FileDir() string
	DestPath() string
}

// Slides covers the ordered presentation steps of a document.
type Slides interface {
	AddSlide()
	SlideCount() int
	DeleteSlide(n int)
}

// History covers undo and redo.
type History interface {
	Undo()
	Redo()
	// SaveStateBeforeLoad records an undo checkpoint before a file is merged.
	SaveStateBeforeLoad(mode domain.LoadMode, fileName string)
}

// ClipboardOps covers copy and paste of the selected subtree.
type ClipboardOps interface {
	Copy()
	Cut()
	Paste()
}

// Exports covers the file exporters.
type Exports interface {
	Export(req domain.ExportRequest) error
	// ExportLast repeats the previous export.
	ExportLast() error
}

// Loader merges map files into the document.
type Loader interface {
	LoadMap(fileName string, mode domain.LoadMode, filter domain.ContentFilter, pos int) error
}

// Model is an open mind-map document.
type Model interface {
	Structure
	Selection
	Content
	Metadata
	Slides
	History
	ClipboardOps
	Exports
	Loader
}
