package memory

import (
	"context"
	"sync"
)

// BufferStore keeps conversation history in process memory, trimmed to
// a token budget. History is lost when the process exits.
type BufferStore struct {
	mu        sync.RWMutex
	threads   map[string][]*Message
	maxTokens int
}

var _ Store = (*BufferStore)(nil)

// NewBufferStore creates an in-memory conversation store. maxTokens
// zero or negative disables trimming.
func NewBufferStore(maxTokens int) *BufferStore {
	return &BufferStore{
		threads:   make(map[string][]*Message),
		maxTokens: maxTokens,
	}
}

// Append records a message for the thread
func (s *BufferStore) Append(ctx context.Context, threadID string, msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *msg
	if stored.ID == "" {
		stored.ID = NewMessageID()
	}
	s.threads[threadID] = trimToBudget(append(s.threads[threadID], &stored), s.maxTokens)

	return nil
}

// History returns the retained messages for the thread, oldest first
func (s *BufferStore) History(ctx context.Context, threadID string) ([]*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := s.threads[threadID]
	out := make([]*Message, len(messages))
	copy(out, messages)

	return out, nil
}

// Clear removes all messages for the thread
func (s *BufferStore) Clear(ctx context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.threads, threadID)
	return nil
}

// Close is a no-op for the buffer store
func (s *BufferStore) Close() error {
	return nil
}
