// Package store provides persistence for conversation checkpoints.
//
// A Checkpoint captures the transcript of a conversation thread after
// an agent round, so a later invocation with the same thread id can
// resume where the conversation left off.
//
// Four backends are provided:
//   - store/memory: in-process map, for tests and single-run programs
//   - store/sqlite: file-based, zero-configuration persistence
//   - store/postgres: production deployments via pgx
//   - store/redis: high-throughput deployments with optional TTL
//
// All backends implement the CheckpointStore interface and index
// checkpoints by thread id. The config package can construct any of
// them from a connection string, e.g. "sqlite:///checkpoints.db".
package store
