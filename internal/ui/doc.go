// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks a single playlist sync through four views:
//  1. [PreviewView] : Preview the resolved playlist's tracks before syncing
//  2. [ConfirmView] : Confirm the sync operation
//  3. [SyncView] : Monitor real-time pipeline progress
//  4. [ResultView] : Display the matched/total summary and missing tracks
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the PlaylistEngine, providing non-blocking status reporting during the sync.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
