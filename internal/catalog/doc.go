// Package catalog holds the book collection and everything derived from it.
//
// The Store owns the authoritative list of books, the active search query,
// and the active sort specification. After every mutation or configuration
// change it recomputes the derived view (filter, then stable sort) and
// flushes the whole state document to its Persister before returning, so a
// reader never sees fresh books paired with a stale view.
//
// Persistence is best-effort: a failed flush is logged and reported through
// Snapshot.LastPersistError, but the in-memory change stands.
//
// Consumers that render from the store register with Subscribe and receive a
// Snapshot after each change. Snapshots are deep copies; mutating one does not
// affect the store.
package catalog
