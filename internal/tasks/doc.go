// Package tasks implements the catalog-to-library sync pipeline.
//
// The core abstraction is [SyncEngine], which orchestrates a full sync run:
// resolving the source playlist, rendering the M3U handoff artifact, matching
// its entries against the media library and committing the resulting
// playlist. Operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
//
// # Pipeline
//
// A run always passes through the M3U artifact: the fetched playlist is
// rendered to M3U and parsed back into (artist, title) entries before
// matching. The matcher therefore only ever sees what survives the artifact
// format, keeping file-based and URL-based flows identical.
//
// # Snapshots
//
// Fetched playlists are recorded to the snapshot cache best effort. A failed
// write is logged and never interrupts the run.
package tasks
