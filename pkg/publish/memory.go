package publish

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// MemoryPublisher records messages in memory.
type MemoryPublisher struct {
	mu       sync.Mutex
	messages []Message
	closed   bool
}

// NewMemoryPublisher returns an empty in-memory publisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

// Publish records msg. Publishing after Close is a usage error.
func (p *MemoryPublisher) Publish(_ context.Context, msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.Usage("publish: publisher is closed")
	}
	p.messages = append(p.messages, msg)
	return nil
}

// Messages returns a copy of the recorded messages, oldest first.
func (p *MemoryPublisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.messages)
}

// Reset forgets all recorded messages.
func (p *MemoryPublisher) Reset() {
	p.mu.Lock()
	p.messages = nil
	p.mu.Unlock()
}

// Close stops accepting messages.
func (p *MemoryPublisher) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

var _ Publisher = (*MemoryPublisher)(nil)
