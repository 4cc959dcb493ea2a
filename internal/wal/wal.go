// Package wal implements the append-only write-ahead log that makes the
// engine durable.
//
// Every entry is framed as [4 CRC][17 header][key][value] and fsynced before
// Append returns. Recover replays the file front to back and stops at the
// first short read or checksum mismatch, truncating the file there so that
// later appends resume after the last good entry.
package wal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/MikhailWahib/litespeed/internal/checksum"
	"github.com/MikhailWahib/litespeed/internal/diskmanager"
	"github.com/MikhailWahib/litespeed/internal/record"
)

// ErrClosed is returned by operations on a closed WAL
var ErrClosed = errors.New("wal: closed")

// Visitor receives every verified entry during Recover, in file order.
type Visitor func(e record.Entry)

// WAL manages the write-ahead log file
type WAL struct {
	mu sync.Mutex

	path        string
	file        diskmanager.FileHandle
	writeOffset int64
	locked      bool
	closed      bool
	logger      *slog.Logger
}

// Open opens or creates the log at path. It does not scan the contents;
// call Recover before appending to a log that may have a torn tail.
func Open(path string, opts ...Option) (*WAL, error) {
	o := options{
		logger:   slog.Default(),
		locking:  true,
		fileMode: defaultFileMode,
	}
	for _, opt := range opts {
		opt(&o)
	}

	file := o.handle
	if file == nil {
		var err error
		file, err = diskmanager.OpenFile(path, os.O_RDWR|os.O_CREATE, o.fileMode)
		if err != nil {
			return nil, fmt.Errorf("wal: open %s: %w", path, err)
		}
	}

	if o.locking {
		if err := file.Lock(); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("wal: lock %s: %w", path, err)
		}
	}

	// Get current file size to set initial write offset
	fileInfo, err := file.Stat()
	if err != nil {
		if o.locking {
			_ = file.Unlock()
		}
		_ = file.Close()
		return nil, fmt.Errorf("wal: stat %s: %w", path, err)
	}

	return &WAL{
		path:        path,
		file:        file,
		writeOffset: fileInfo.Size(),
		locked:      o.locking,
		logger:      o.logger.With("wal", path),
	}, nil
}

// Path returns the file path the log was opened with.
func (w *WAL) Path() string { return w.path }

// Size returns the logical end of the log, where the next entry will be written.
func (w *WAL) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeOffset
}

// Append writes one entry and syncs it to stable storage. When Append returns
// nil the entry survives a crash; when it returns an error the entry must be
// treated as never written.
func (w *WAL) Append(t record.EntryType, key, value []byte, timestamp int64) error {
	if err := record.CheckLengths(int64(len(key)), int64(len(value))); err != nil {
		return fmt.Errorf("wal: append %s: %w", t, err)
	}

	buf := record.EncodeEntry(record.Entry{
		Type:      t,
		Key:       key,
		Value:     value,
		Timestamp: timestamp,
	})

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	n, err := w.file.WriteAt(buf, w.writeOffset)
	if err == nil && n != len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.rollback()
		return fmt.Errorf("wal: append %s: %w", t, err)
	}

	if err := w.file.Sync(); err != nil {
		w.rollback()
		return fmt.Errorf("wal: sync after append: %w", err)
	}

	w.writeOffset += int64(n)
	return nil
}

// rollback drops any bytes a failed append left past the write offset.
// Must be called with w.mu held.
func (w *WAL) rollback() {
	if err := w.file.Truncate(w.writeOffset); err != nil {
		w.logger.Error("failed to roll back partial append",
			"offset", w.writeOffset,
			"error", err,
		)
	}
}

// Recover scans the log from the beginning and calls visit for every entry
// whose checksum verifies. It returns true if the scan reached a clean end of
// file. On a torn write or checksum mismatch it truncates the file to the end
// of the last good entry, moves the write offset there and returns false.
//
// A non-nil error means the file could not be read or repaired.
func (w *WAL) Recover(visit Visitor) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false, ErrClosed
	}

	fileInfo, err := w.file.Stat()
	if err != nil {
		return false, fmt.Errorf("wal: stat: %w", err)
	}
	size := fileInfo.Size()

	var (
		offset  int64
		entries int
		reason  string
	)

scan:
	for {
		crcBuf := make([]byte, checksum.Size)
		n, err := w.file.ReadAt(crcBuf, offset)
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("wal: read checksum at %d: %w", offset, err)
		}
		switch {
		case n == 0:
			break scan
		case n < checksum.Size:
			reason = "torn checksum"
			break scan
		}
		stored := binary.LittleEndian.Uint32(crcBuf)

		header := make([]byte, record.HeaderSize)
		ok, err := w.readFull(header, offset+checksum.Size)
		if err != nil {
			return false, err
		}
		if !ok {
			reason = "torn header"
			break
		}
		h := record.DecodeHeader(header)

		bodyOffset := offset + checksum.Size + record.HeaderSize
		// A length running past the end of the file is a torn write; checking
		// first keeps a corrupt length from driving a huge allocation.
		if h.BodyLen() > size-bodyOffset {
			reason = "torn body"
			break
		}

		body := make([]byte, h.BodyLen())
		ok, err = w.readFull(body, bodyOffset)
		if err != nil {
			return false, err
		}
		if !ok {
			reason = "torn body"
			break
		}

		if !record.VerifyEntry(stored, header, body) {
			reason = "checksum mismatch"
			break
		}

		if visit != nil {
			visit(record.Entry{
				Type:      h.Type,
				Key:       body[:h.KeyLen],
				Value:     body[h.KeyLen:],
				Timestamp: h.Timestamp,
			})
		}
		entries++
		offset = bodyOffset + h.BodyLen()
	}

	if reason == "" {
		w.writeOffset = offset
		w.logger.Debug("wal recovered", "entries", entries, "size", offset)
		return true, nil
	}

	w.logger.Warn("corrupt or partial entry in wal, truncating",
		"reason", reason,
		"offset", offset,
		"discarded_bytes", size-offset,
		"entries", entries,
	)

	// Appends resume at the last good entry even if the repair below fails,
	// overwriting whatever is left of the damaged tail.
	w.writeOffset = offset

	if err := w.file.Truncate(offset); err != nil {
		return false, fmt.Errorf("wal: truncate to %d: %w", offset, err)
	}
	if err := w.file.Sync(); err != nil {
		return false, fmt.Errorf("wal: sync after truncate: %w", err)
	}

	return false, nil
}

// readFull reads len(buf) bytes at off. It reports false on a short read.
func (w *WAL) readFull(buf []byte, off int64) (bool, error) {
	if len(buf) == 0 {
		return true, nil
	}
	n, err := w.file.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("wal: read at %d: %w", off, err)
	}
	return n == len(buf), nil
}

// Sync flushes the log to stable storage. Append already syncs every entry,
// so a failure here is logged and otherwise ignored.
func (w *WAL) Sync() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if err := w.file.Sync(); err != nil {
		w.logger.Error("wal sync failed", "error", err)
	}
}

// Close syncs and closes the WAL file. Calling Close more than once is a no-op.
func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	if err := w.file.Sync(); err != nil {
		errs = append(errs, fmt.Errorf("wal: sync on close: %w", err))
	}
	if w.locked {
		if err := w.file.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("wal: unlock: %w", err))
		}
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("wal: close: %w", err))
	}
	return errors.Join(errs...)
}
