package history

import (
	"github.com/dshills/tally/internal/engine/calc"
)

// DefaultMaxSize is used when a non-positive bound is requested.
const DefaultMaxSize = 100

// Store holds the session's calculation records in insertion order,
// bounded by a maximum size. Appending past capacity evicts the oldest
// record first.
type Store struct {
	maxSize int
	records []calc.Record
}

// NewStore creates a store bounded to maxSize records.
func NewStore(maxSize int) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Store{maxSize: maxSize}
}

// Append adds a record, evicting the oldest if the store is full.
func (s *Store) Append(r calc.Record) {
	s.records = append(s.records, r)
	if len(s.records) > s.maxSize {
		excess := len(s.records) - s.maxSize
		s.records = s.records[excess:]
	}
}

// Records returns a copy of the stored records in chronological order.
func (s *Store) Records() []calc.Record {
	out := make([]calc.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Replace swaps the store contents for the given records, re-applying
// the size bound. Used by snapshot restore and history import.
func (s *Store) Replace(records []calc.Record) {
	s.records = make([]calc.Record, len(records))
	copy(s.records, records)
	if len(s.records) > s.maxSize {
		excess := len(s.records) - s.maxSize
		s.records = s.records[excess:]
	}
}

// Clear removes all records.
func (s *Store) Clear() {
	s.records = nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// MaxSize returns the configured bound.
func (s *Store) MaxSize() int {
	return s.maxSize
}

// Latest returns the most recent record, if any.
func (s *Store) Latest() (calc.Record, bool) {
	if len(s.records) == 0 {
		return calc.Record{}, false
	}
	return s.records[len(s.records)-1], true
}
