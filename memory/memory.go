package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/TrungNguyen1409/langchain-academy/config"
)

// ErrUnsupported is returned by Open for memory backends this module
// does not implement.
var ErrUnsupported = errors.New("unsupported memory backend")

// Message is a single conversation turn kept in memory.
type Message struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Store is the interface over a conversation memory backend. History
// returns messages oldest first, already trimmed to the backend's
// retention rules.
type Store interface {
	// Append records a message for the thread
	Append(ctx context.Context, threadID string, msg *Message) error

	// History returns the retained messages for the thread, oldest first
	History(ctx context.Context, threadID string) ([]*Message, error)

	// Clear removes all messages for the thread
	Clear(ctx context.Context, threadID string) error

	// Close releases the underlying resources
	Close() error
}

// NewMessageID generates a unique message identifier.
func NewMessageID() string {
	return "msg_" + uuid.New().String()
}

// Open constructs a memory store from the configuration record's
// memory block. The sqlite backend reads path, table, max_tokens and
// retention_days from the options; the buffer backend reads
// max_tokens only.
func Open(cfg *config.MemoryConfig) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: no memory configured", ErrUnsupported)
	}

	switch cfg.Type {
	case "buffer":
		return NewBufferStore(optInt(cfg.Options, "max_tokens", 0)), nil
	case "sqlite":
		path := optString(cfg.Options, "path", "memory.db")
		return NewSQLiteStore(path, SQLiteOptions{
			Table:         optString(cfg.Options, "table", "conversation_memory"),
			MaxTokens:     optInt(cfg.Options, "max_tokens", 0),
			RetentionDays: optInt(cfg.Options, "retention_days", 0),
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, cfg.Type)
	}
}

func optString(opts map[string]any, key, fallback string) string {
	if v, ok := opts[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func optInt(opts map[string]any, key string, fallback int) int {
	switch v := opts[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

// tokenEstimate approximates the token footprint of a message. Four
// characters per token is close enough for budget trimming.
func tokenEstimate(msg *Message) int {
	n := (len(msg.Content) + 3) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// trimToBudget drops the oldest messages until the estimated token
// total fits maxTokens. A zero or negative budget keeps everything.
func trimToBudget(messages []*Message, maxTokens int) []*Message {
	if maxTokens <= 0 {
		return messages
	}

	total := 0
	for _, msg := range messages {
		total += tokenEstimate(msg)
	}
	for len(messages) > 0 && total > maxTokens {
		total -= tokenEstimate(messages[0])
		messages = messages[1:]
	}
	return messages
}
