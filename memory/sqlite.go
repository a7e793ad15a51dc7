package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/TrungNguyen1409/langchain-academy/log"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteOptions configures the sqlite conversation store.
type SQLiteOptions struct {
	// Table is the table name, conversation_memory by default.
	Table string

	// MaxTokens bounds the history returned by History. Zero keeps
	// everything.
	MaxTokens int

	// RetentionDays expires rows older than the window. Zero keeps
	// everything.
	RetentionDays int
}

// SQLiteStore persists conversation history in a SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	opts SQLiteOptions
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if necessary) a SQLite-backed
// conversation store at the given path.
func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if opts.Table == "" {
		opts.Table = "conversation_memory"
	}
	if !tableNameRe.MatchString(opts.Table) {
		return nil, fmt.Errorf("invalid memory table name: %s", opts.Table)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open memory database: %w", err)
	}

	s := &SQLiteStore{db: db, opts: opts}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug("opened sqlite memory store at %s (table %s)", path, opts.Table)
	return s, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			thread_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			timestamp TIMESTAMP NOT NULL,
			metadata TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_%s_thread ON %s (thread_id);
	`, s.opts.Table, s.opts.Table, s.opts.Table)

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create memory schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append records a message for the thread
func (s *SQLiteStore) Append(ctx context.Context, threadID string, msg *Message) error {
	id := msg.ID
	if id == "" {
		id = NewMessageID()
	}
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	metaJSON, err := json.Marshal(msg.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, thread_id, role, content, timestamp, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.opts.Table)

	_, err = s.db.ExecContext(ctx, query, id, threadID, msg.Role, msg.Content, ts, string(metaJSON))
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	return nil
}

// History returns the retained messages for the thread, oldest first.
// Rows past the retention window are dropped before reading, and the
// result is trimmed to the token budget.
func (s *SQLiteStore) History(ctx context.Context, threadID string) ([]*Message, error) {
	if s.opts.RetentionDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -s.opts.RetentionDays)
		expire := fmt.Sprintf("DELETE FROM %s WHERE thread_id = ? AND timestamp < ?", s.opts.Table)
		if _, err := s.db.ExecContext(ctx, expire, threadID, cutoff); err != nil {
			return nil, fmt.Errorf("failed to expire messages: %w", err)
		}
	}

	query := fmt.Sprintf(`
		SELECT id, role, content, timestamp, metadata
		FROM %s WHERE thread_id = ? ORDER BY timestamp ASC
	`, s.opts.Table)

	rows, err := s.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var msg Message
		var metaJSON string
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.Timestamp, &metaJSON); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		if metaJSON != "" && metaJSON != "null" {
			if err := json.Unmarshal([]byte(metaJSON), &msg.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return trimToBudget(messages, s.opts.MaxTokens), nil
}

// Clear removes all messages for the thread
func (s *SQLiteStore) Clear(ctx context.Context, threadID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE thread_id = ?", s.opts.Table)
	_, err := s.db.ExecContext(ctx, query, threadID)
	if err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}
