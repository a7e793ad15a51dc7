// Package graphdb stores node/edge structured knowledge referenced by
// a configuration record's GraphDB variant.
//
// Open dispatches on the variant: config.SQLiteGraph opens a local
// file-backed graph, config.Neo4jGraph carries connection parameters
// only and is rejected with ErrUnsupported until a driver is wired in.
// NewMemoryGraph provides an in-process implementation for tests.
package graphdb
