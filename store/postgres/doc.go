// Package postgres provides a PostgreSQL-backed checkpoint store built
// on jackc/pgx connection pools.
//
// State and metadata are stored as JSONB and checkpoints are indexed
// by thread id. The DBPool interface lets tests substitute a pgxmock
// pool for the real one.
package postgres
