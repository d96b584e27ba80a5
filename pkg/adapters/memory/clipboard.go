package memory

import (
	"context"
	"sync"

	"github.com/sz10101/vym/pkg/domain"
)

// Clipboard implements ports.ClipboardStore in memory.
// Safe for concurrent use.
type Clipboard struct {
	data []byte
	mu   sync.RWMutex
}

// NewClipboard creates an empty clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Put replaces the content with a copy of data.
func (c *Clipboard) Put(ctx context.Context, data []byte) error {
	copied := make([]byte, len(data))
	copy(copied, data)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = copied
	return nil
}

// Get returns a copy of the content so callers can't mutate the clipboard.
func (c *Clipboard) Get(ctx context.Context) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil {
		return nil, domain.ErrClipboardEmpty
	}
	ret := make([]byte, len(c.data))
	copy(ret, c.data)
	return ret, nil
}
