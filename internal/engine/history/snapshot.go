package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/tally/internal/engine/calc"
)

// Common errors for undo/redo operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Snapshot is a captured copy of a store's record sequence.
// Records are immutable, so the copied slice is a complete capture.
type Snapshot struct {
	records []calc.Record
	takenAt time.Time
}

// takeSnapshot captures the current state of a store.
func takeSnapshot(s *Store) Snapshot {
	return Snapshot{
		records: s.Records(),
		takenAt: time.Now(),
	}
}

// TakenAt returns when the snapshot was captured.
func (s Snapshot) TakenAt() time.Time {
	return s.takenAt
}

// Len returns the number of records in the snapshot.
func (s Snapshot) Len() int {
	return len(s.records)
}

// Manager manages undo/redo state for a record store using two snapshot
// stacks. Snapshots are owned by the manager and never handed out.
type Manager struct {
	mu sync.Mutex

	undoStack []Snapshot
	redoStack []Snapshot

	maxDepth int
}

// NewManager creates an undo/redo manager bounded to maxDepth snapshots
// per stack.
func NewManager(maxDepth int) *Manager {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxSize
	}
	return &Manager{maxDepth: maxDepth}
}

// Commit records the store's pre-mutation state on the undo stack and
// clears the redo stack. Call it immediately before appending a record;
// the snapshot push and the append together form one commit.
func (m *Manager) Commit(s *Store) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.undoStack = pushBounded(m.undoStack, takeSnapshot(s), m.maxDepth)
	m.redoStack = nil
}

// Undo restores the store to the most recent snapshot.
// Returns ErrNothingToUndo if the undo stack is empty; the store is
// untouched in that case.
func (m *Manager) Undo(s *Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undoStack) == 0 {
		return ErrNothingToUndo
	}

	snap := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]

	m.redoStack = pushBounded(m.redoStack, takeSnapshot(s), m.maxDepth)
	s.Replace(snap.records)
	return nil
}

// Redo restores the store to the most recently undone state.
// Returns ErrNothingToRedo if the redo stack is empty; the store is
// untouched in that case.
func (m *Manager) Redo(s *Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redoStack) == 0 {
		return ErrNothingToRedo
	}

	snap := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]

	m.undoStack = pushBounded(m.undoStack, takeSnapshot(s), m.maxDepth)
	s.Replace(snap.records)
	return nil
}

// Clear empties the store as an undoable operation: the current state is
// snapshotted onto the undo stack, then the store and the redo stack are
// cleared.
func (m *Manager) Clear(s *Store) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.undoStack = pushBounded(m.undoStack, takeSnapshot(s), m.maxDepth)
	m.redoStack = nil
	s.Clear()
}

// CanUndo returns true if undo is available.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack) > 0
}

// UndoCount returns the number of undo snapshots available.
func (m *Manager) UndoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack)
}

// RedoCount returns the number of redo snapshots available.
func (m *Manager) RedoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack)
}

// Reset discards all undo/redo snapshots without touching the store.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undoStack = nil
	m.redoStack = nil
}

// pushBounded appends a snapshot, evicting the oldest past maxDepth.
func pushBounded(stack []Snapshot, snap Snapshot, maxDepth int) []Snapshot {
	stack = append(stack, snap)
	if len(stack) > maxDepth {
		excess := len(stack) - maxDepth
		stack = stack[excess:]
	}
	return stack
}
