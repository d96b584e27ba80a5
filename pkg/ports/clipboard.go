package ports

import "context"

// ClipboardStore keeps the serialized subtree between copy and paste.
// Stores may be shared by several documents or processes.
type ClipboardStore interface {
	// Put replaces the clipboard content.
	Put(ctx context.Context, data []byte) error

	// Get returns the clipboard content.
	// Returns domain.ErrClipboardEmpty if nothing was copied.
	Get(ctx context.Context) ([]byte, error)
}
