// Package redis provides a Redis-backed checkpoint store.
//
// Each checkpoint is stored as a JSON value under its own key, and a
// per-thread set indexes the checkpoints belonging to a conversation.
// An optional TTL expires both the values and the index.
package redis
