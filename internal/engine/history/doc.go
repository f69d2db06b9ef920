// Package history provides the bounded calculation store and its
// snapshot-based undo/redo machinery.
//
// # Store
//
// The Store is an ordered, bounded sequence of calculation records.
// Appending past capacity evicts the oldest record (FIFO), so the store
// never holds more than its configured maximum.
//
// # Snapshots
//
// A Snapshot captures the store's record sequence at a point in time.
// Records are immutable, so copying the sequence container is a full
// capture; no per-record cloning is needed. Snapshots are owned
// exclusively by the Manager and never exposed to callers.
//
// # Undo/Redo
//
// The Manager keeps two LIFO stacks of snapshots:
//
//	mgr := NewManager(100)
//
//	mgr.Commit(store)       // before mutating: push snapshot, clear redo
//	store.Append(record)
//
//	mgr.Undo(store)         // restore previous state
//	mgr.Redo(store)         // reapply the undone state
//
// Committing after an undo clears the redo stack (standard editor-undo
// semantics: no future once a new branch is taken). Both stacks share the
// store's configured bound; pushing past it evicts the oldest snapshot,
// which makes very old states unreachable. That is an accepted trade-off
// of bounded history.
package history
