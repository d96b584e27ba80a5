package ports

// Host is the application window that owns the open documents.
type Host interface {
	ToggleTreeEditor()
	// CurrentModel returns nil if no document is open.
	CurrentModel() Model
	// Models returns the open documents in window order.
	Models() []Model
	// GotoWindow focuses the document at index n.
	GotoWindow(n int) bool
}
