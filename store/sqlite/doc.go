// Package sqlite provides a SQLite-backed checkpoint store.
//
// The store keeps one row per checkpoint, indexed by thread id, with
// state and metadata serialized as JSON. It is the default backend for
// the "sqlite://" connection strings understood by the config package.
package sqlite
