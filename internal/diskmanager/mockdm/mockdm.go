// Package mockdm provides an in-memory diskmanager.FileHandle with fault
// injection for testing
package mockdm

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/MikhailWahib/litespeed/internal/diskmanager"
)

// ErrInjected is the default error returned by injected faults
var ErrInjected = errors.New("mockdm: injected fault")

// Fault describes which operations of a MockFile should fail
type Fault struct {
	// FailAfterBytes makes writes fail once this many bytes have been written
	// through the handle. A write crossing the limit is applied partially.
	// Negative disables the limit.
	FailAfterBytes int64
	FailOnSync     bool
	FailOnTruncate bool
	FailOnRead     bool
	Err            error
}

// MockFile implements diskmanager.FileHandle for testing purposes
type MockFile struct {
	mu      sync.Mutex
	data    []byte
	name    string
	fault   Fault
	written int64
	closed  bool
	locked  bool
}

var _ diskmanager.FileHandle = (*MockFile)(nil)

// NewMockFile creates an empty mock file with no faults
func NewMockFile(name string) *MockFile {
	return &MockFile{
		name:  name,
		fault: Fault{FailAfterBytes: -1},
	}
}

// SetFault replaces the active fault configuration and resets the write counter
func (m *MockFile) SetFault(f Fault) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault = f
	m.written = 0
}

// Bytes returns a copy of the file contents
func (m *MockFile) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// SetBytes replaces the file contents
func (m *MockFile) SetBytes(b []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), b...)
}

// Closed reports whether Close has been called
func (m *MockFile) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MockFile) err() error {
	if m.fault.Err != nil {
		return m.fault.Err
	}
	return ErrInjected
}

// WriteAt writes len(b) bytes to the file starting at byte offset off
func (m *MockFile) WriteAt(b []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, os.ErrClosed
	}

	var failErr error
	if m.fault.FailAfterBytes >= 0 {
		room := m.fault.FailAfterBytes - m.written
		if room < 0 {
			room = 0
		}
		if int64(len(b)) > room {
			b = b[:room]
			failErr = m.err()
		}
	}
	if len(b) == 0 {
		return 0, failErr
	}

	// Extend the slice if needed
	requiredLen := int(off) + len(b)
	if requiredLen > len(m.data) {
		newData := make([]byte, requiredLen)
		copy(newData, m.data)
		m.data = newData
	}
	n := copy(m.data[off:], b)
	m.written += int64(n)
	return n, failErr
}

// ReadAt reads len(b) bytes from the file starting at byte offset off
func (m *MockFile) ReadAt(b []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, os.ErrClosed
	}
	if m.fault.FailOnRead {
		return 0, m.err()
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(b, m.data[off:])
	if n < len(b) {
		return n, io.EOF
	}
	return n, nil
}

// Truncate changes the size of the mock file
func (m *MockFile) Truncate(size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fault.FailOnTruncate {
		return m.err()
	}
	if size < int64(len(m.data)) {
		m.data = m.data[:size]
		return nil
	}
	newData := make([]byte, size)
	copy(newData, m.data)
	m.data = newData
	return nil
}

// Close closes the mock file
func (m *MockFile) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return os.ErrClosed
	}
	m.closed = true
	return nil
}

// Sync simulates syncing file contents to disk
func (m *MockFile) Sync() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fault.FailOnSync {
		return m.err()
	}
	return nil
}

// Stat returns file information
func (m *MockFile) Stat() (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &testFileInfo{size: int64(len(m.data)), name: m.name}, nil
}

// Lock marks the mock file as locked
func (m *MockFile) Lock() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locked {
		return diskmanager.ErrLocked
	}
	m.locked = true
	return nil
}

// Unlock releases the mock lock
func (m *MockFile) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = false
	return nil
}

type testFileInfo struct {
	size int64
	name string
}

func (m *testFileInfo) Name() string       { return m.name }
func (m *testFileInfo) Size() int64        { return m.size }
func (m *testFileInfo) Mode() os.FileMode  { return 0644 }
func (m *testFileInfo) ModTime() time.Time { return time.Now() }
func (m *testFileInfo) IsDir() bool        { return false }
func (m *testFileInfo) Sys() any           { return nil }
