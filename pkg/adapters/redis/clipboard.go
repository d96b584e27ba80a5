package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/sz10101/vym/pkg/domain"
)

// DefaultKey is the key the clipboard is stored under when no prefix is set.
const DefaultKey = "vym:clipboard"

// Clipboard implements ports.ClipboardStore using Redis, so that a subtree
// copied in one process can be pasted in another.
type Clipboard struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

type Option func(*Clipboard)

// WithTTL makes copied content expire.
func WithTTL(ttl time.Duration) Option {
	return func(c *Clipboard) {
		c.ttl = ttl
	}
}

// WithPrefix namespaces the clipboard key, e.g. per user.
func WithPrefix(prefix string) Option {
	return func(c *Clipboard) {
		c.key = prefix + "clipboard"
	}
}

// New creates a Redis clipboard with options.
func New(address, password string, db int, opts ...Option) *Clipboard {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis clipboard from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Clipboard {
	c := &Clipboard{
		client: client,
		key:    DefaultKey,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Put replaces the clipboard content.
func (c *Clipboard) Put(ctx context.Context, data []byte) error {
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write clipboard to redis: %w", err)
	}
	return nil
}

// Get returns the clipboard content.
func (c *Clipboard) Get(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrClipboardEmpty
		}
		return nil, fmt.Errorf("failed to read clipboard from redis: %w", err)
	}
	return data, nil
}

// Close closes the underlying client.
func (c *Clipboard) Close() error {
	return c.client.Close()
}
