package config

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/TrungNguyen1409/langchain-academy/log"
	"github.com/TrungNguyen1409/langchain-academy/store"
	memorystore "github.com/TrungNguyen1409/langchain-academy/store/memory"
	"github.com/TrungNguyen1409/langchain-academy/store/postgres"
	redisstore "github.com/TrungNguyen1409/langchain-academy/store/redis"
	"github.com/TrungNguyen1409/langchain-academy/store/sqlite"
)

// OpenCheckpointStore constructs a checkpoint store from a connection
// string. Supported schemes:
//
//	memory://                     in-process store
//	sqlite:///checkpoints.db      SQLite file (relative path)
//	sqlite:////var/db/cp.db       SQLite file (absolute path)
//	postgres://user:pw@host/db    PostgreSQL via pgx
//	redis://host:6379/0           Redis
//
// Failures from the underlying driver are returned wrapped; no local
// recovery is attempted.
func OpenCheckpointStore(connString string) (store.CheckpointStore, error) {
	switch {
	case strings.HasPrefix(connString, "memory://"):
		return memorystore.NewMemoryCheckpointStore(), nil

	case strings.HasPrefix(connString, "sqlite://"):
		path := strings.TrimPrefix(connString, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			path = "checkpoints.db"
		}
		log.Debug("opening sqlite checkpoint store at %s", path)
		return sqlite.NewSqliteCheckpointStore(sqlite.SqliteOptions{Path: path})

	case strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://"):
		ctx := context.Background()
		log.Debug("opening postgres checkpoint store")
		s, err := postgres.NewPostgresCheckpointStore(ctx, postgres.PostgresOptions{ConnString: connString})
		if err != nil {
			return nil, err
		}
		if err := s.InitSchema(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil

	case strings.HasPrefix(connString, "redis://") || strings.HasPrefix(connString, "rediss://"):
		opts, err := goredis.ParseURL(connString)
		if err != nil {
			return nil, fmt.Errorf("invalid redis connection string: %w", err)
		}
		log.Debug("opening redis checkpoint store at %s", opts.Addr)
		return redisstore.NewRedisCheckpointStore(redisstore.RedisOptions{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}), nil
	}

	return nil, fmt.Errorf("unsupported checkpoint store connection string: %s", connString)
}
