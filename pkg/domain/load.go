package domain

// LoadMode selects how a map file is merged into an open document.
type LoadMode int

const (
	// LoadNew replaces the document and resets its history.
	LoadNew LoadMode = iota
	// LoadInsert adds the file's map centers below the selection (or as new centers).
	LoadInsert
	// LoadReplace replaces the selected branch with the file's content.
	LoadReplace
)

func (m LoadMode) String() string {
	switch m {
	case LoadInsert:
		return "ImportAdd"
	case LoadReplace:
		return "ImportReplace"
	default:
		return "NewMap"
	}
}

// ContentFilter is a bitmask of content skipped while loading.
type ContentFilter int

const (
	FilterNone   ContentFilter = 0x0000
	FilterImages ContentFilter = 0x0001
	FilterNotes  ContentFilter = 0x0002
	FilterXLinks ContentFilter = 0x0004
	FilterSlides ContentFilter = 0x0008
)

// Has reports whether all bits of f are set.
func (c ContentFilter) Has(f ContentFilter) bool {
	return c&f == f && f != 0
}
