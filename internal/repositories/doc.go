// Package repositories implements SQLite persistence for cached catalog data.
//
// The single repository caches playlist snapshots fetched from the remote
// catalog, keyed by source URL. Snapshots are upstream payload caches for
// inspection and re-runs; match results are never persisted.
//
// Records use soft deletes via deleted_at timestamps and are excluded from
// queries by default. Sequence numbers provide stable, human-readable
// ordering independent of UUIDs; the [NextSequence] function atomically
// increments per-table counters in dedicated sequence tables.
package repositories
