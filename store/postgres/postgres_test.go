package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"

	"github.com/TrungNguyen1409/langchain-academy/store"
)

func TestPostgresCheckpointStore_Save(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresCheckpointStoreWithPool(mock, "checkpoints")

	cp := &store.Checkpoint{
		ID:        "cp-1",
		ThreadID:  "conversation_1",
		Step:      1,
		State:     map[string]any{"foo": "bar"},
		Timestamp: time.Now(),
		Version:   1,
		Metadata: map[string]any{
			"user_id": "user123",
		},
	}

	stateJSON, _ := json.Marshal(cp.State)
	metadataJSON, _ := json.Marshal(cp.Metadata)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO checkpoints")).
		WithArgs(
			cp.ID,
			cp.ThreadID,
			cp.Step,
			stateJSON,
			metadataJSON,
			cp.Timestamp,
			cp.Version,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = s.Save(context.Background(), cp)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCheckpointStore_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresCheckpointStoreWithPool(mock, "checkpoints")

	timestamp := time.Now()
	stateJSON, _ := json.Marshal(map[string]any{"foo": "bar"})
	metadataJSON, _ := json.Marshal(map[string]any{"user_id": "user123"})

	rows := pgxmock.NewRows([]string{"id", "thread_id", "step", "state", "metadata", "timestamp", "version"}).
		AddRow("cp-1", "conversation_1", 1, stateJSON, metadataJSON, timestamp, 1)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("cp-1").
		WillReturnRows(rows)

	loaded, err := s.Load(context.Background(), "cp-1")
	assert.NoError(t, err)
	assert.Equal(t, "cp-1", loaded.ID)
	assert.Equal(t, "conversation_1", loaded.ThreadID)
	assert.Equal(t, 1, loaded.Version)

	state, ok := loaded.State.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "bar", state["foo"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCheckpointStore_LoadMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresCheckpointStoreWithPool(mock, "checkpoints")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = s.Load(context.Background(), "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCheckpointStore_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresCheckpointStoreWithPool(mock, "checkpoints")

	timestamp := time.Now()
	stateJSON, _ := json.Marshal("round")
	metadataJSON, _ := json.Marshal(map[string]any{})

	rows := pgxmock.NewRows([]string{"id", "thread_id", "step", "state", "metadata", "timestamp", "version"}).
		AddRow("cp-1", "thread_2", 1, stateJSON, metadataJSON, timestamp, 1).
		AddRow("cp-2", "thread_2", 2, stateJSON, metadataJSON, timestamp, 2)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE thread_id = $1")).
		WithArgs("thread_2").
		WillReturnRows(rows)

	checkpoints, err := s.List(context.Background(), "thread_2")
	assert.NoError(t, err)
	assert.Len(t, checkpoints, 2)
	assert.Equal(t, "cp-1", checkpoints[0].ID)
	assert.Equal(t, 2, checkpoints[1].Version)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCheckpointStore_Latest(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresCheckpointStoreWithPool(mock, "checkpoints")

	timestamp := time.Now()
	stateJSON, _ := json.Marshal("latest round")
	metadataJSON, _ := json.Marshal(map[string]any{})

	rows := pgxmock.NewRows([]string{"id", "thread_id", "step", "state", "metadata", "timestamp", "version"}).
		AddRow("cp-3", "thread_2", 3, stateJSON, metadataJSON, timestamp, 3)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY version DESC")).
		WithArgs("thread_2").
		WillReturnRows(rows)

	latest, err := s.Latest(context.Background(), "thread_2")
	assert.NoError(t, err)
	assert.Equal(t, 3, latest.Version)
	assert.Equal(t, "latest round", latest.State)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCheckpointStore_DeleteAndClear(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresCheckpointStoreWithPool(mock, "checkpoints")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM checkpoints WHERE id = $1")).
		WithArgs("cp-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, s.Delete(context.Background(), "cp-1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM checkpoints WHERE thread_id = $1")).
		WithArgs("thread_2").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	assert.NoError(t, s.Clear(context.Background(), "thread_2"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCheckpointStore_InitSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresCheckpointStoreWithPool(mock, "checkpoints")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS checkpoints")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	assert.NoError(t, s.InitSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
