// Package store is the authoritative, concurrency-safe holder of match
// records and their append-only event logs. It carries no business logic:
// transition rules and event production live in internal/engine, which is
// the only writer. Reads return copies, so callers never observe a
// partially-applied update.
package store
