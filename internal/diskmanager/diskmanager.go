// Package diskmanager provides the file handle abstraction the write-ahead log
// is built on. It handles positioned reads and writes, truncation, syncing and
// advisory locking of the single file a log owns.
package diskmanager

import (
	"errors"
	"os"
)

// ErrLocked is returned when another handle already holds the file lock.
var ErrLocked = errors.New("diskmanager: file is locked by another process")

// FileHandle abstracts file operations with random access, syncing and truncation.
type FileHandle interface {
	// ReadAt reads len(b) bytes from the file starting at byte offset off.
	// It returns the number of bytes read and any error encountered.
	ReadAt(b []byte, off int64) (int, error)
	// WriteAt writes len(b) bytes to the file starting at byte offset off.
	// It returns the number of bytes written and any error encountered.
	WriteAt(b []byte, off int64) (int, error)
	// Truncate changes the size of the file.
	Truncate(size int64) error
	// Close closes the file handle, rendering it unusable for I/O.
	Close() error
	// Sync commits the current contents of the file to stable storage.
	Sync() error
	// Stat returns the file stat
	Stat() (os.FileInfo, error)
	// Lock takes an exclusive, non-blocking advisory lock on the file.
	Lock() error
	// Unlock releases a lock taken by Lock.
	Unlock() error
}

type fileHandle struct {
	file *os.File
}

// NewFileHandle wraps an *os.File into a FileHandle implementation.
func NewFileHandle(file *os.File) FileHandle { return &fileHandle{file: file} }

// OpenFile opens the named file with the given flags and permissions.
func OpenFile(path string, flags int, perm os.FileMode) (FileHandle, error) {
	file, err := os.OpenFile(path, flags, perm)
	if err != nil {
		return nil, err
	}
	return NewFileHandle(file), nil
}

func (fh *fileHandle) ReadAt(b []byte, off int64) (int, error) { return fh.file.ReadAt(b, off) }

func (fh *fileHandle) WriteAt(b []byte, off int64) (int, error) { return fh.file.WriteAt(b, off) }

func (fh *fileHandle) Truncate(size int64) error { return fh.file.Truncate(size) }

func (fh *fileHandle) Close() error { return fh.file.Close() }

func (fh *fileHandle) Sync() error { return fh.file.Sync() }

func (fh *fileHandle) Stat() (os.FileInfo, error) { return fh.file.Stat() }

func (fh *fileHandle) Lock() error { return lockFile(fh.file) }

func (fh *fileHandle) Unlock() error { return unlockFile(fh.file) }
