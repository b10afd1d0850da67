// Package taskstore persists tasks as a pretty-printed JSON array in a
// single file.
//
// The store is append-only: Add validates the due date, loads the whole
// array, appends the new task and rewrites the file; Search loads the array
// and filters it by exact due date. Insertion order is the only ordering.
// A missing or blank file is an empty store, and the file is created on
// the first successful Add.
//
// # Concurrency
//
// Add and Search are serialized by a mutex, so concurrent tool calls within
// one process cannot lose updates. Nothing guards the file against other
// processes: two servers sharing a file will still overwrite each other
// (last writer wins). That is a known limitation, not a bug.
package taskstore
