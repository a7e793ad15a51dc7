// Package memory persists conversation history between agent runs.
//
// A configuration record's memory block names the backend. Open
// dispatches on it: "sqlite" keeps messages in a local database table
// with token-budget and retention trimming, "buffer" keeps them in
// process memory. History always returns oldest first so it can be
// prepended to a prompt directly.
package memory
