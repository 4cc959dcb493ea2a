// Package memtable implements the ephemeral, single-version key-value table
// used when the engine runs without a write-ahead log.
package memtable

import (
	"github.com/MikhailWahib/litespeed/internal/record"
)

// Memtable defines the interface for an in-memory table holding the latest
// version of each key
type Memtable interface {
	Set(key string, value []byte, timestamp int64)
	Get(key string) (record.Record, bool)
	Delete(key string) bool
	Len() int
}

// MapMemtable implements the Memtable interface on a Go map.
// It is not safe for concurrent use; the engine serializes access.
type MapMemtable struct {
	entries map[string]record.Record
}

// NewMemtable creates a new Memtable instance.
func NewMemtable() Memtable {
	return &MapMemtable{
		entries: make(map[string]record.Record),
	}
}

// Set inserts or replaces the value for key
func (m *MapMemtable) Set(key string, value []byte, timestamp int64) {
	m.entries[key] = record.Record{Value: value, Timestamp: timestamp}
}

// Get retrieves the record stored for key
func (m *MapMemtable) Get(key string) (record.Record, bool) {
	r, ok := m.entries[key]
	return r, ok
}

// Delete removes key and reports whether it was present
func (m *MapMemtable) Delete(key string) bool {
	if _, ok := m.entries[key]; !ok {
		return false
	}
	delete(m.entries, key)
	return true
}

// Len returns the number of keys in the memtable
func (m *MapMemtable) Len() int {
	return len(m.entries)
}

