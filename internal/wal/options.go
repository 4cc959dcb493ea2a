package wal

import (
	"log/slog"
	"os"

	"github.com/MikhailWahib/litespeed/internal/diskmanager"
)

const defaultFileMode os.FileMode = 0644

type options struct {
	logger   *slog.Logger
	handle   diskmanager.FileHandle
	locking  bool
	fileMode os.FileMode
}

// Option configures a WAL at Open time.
type Option func(*options)

// WithLogger sets the logger used for recovery and sync diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFileHandle makes the WAL use h instead of opening path itself.
// The WAL takes ownership of h and closes it on Close.
func WithFileHandle(h diskmanager.FileHandle) Option {
	return func(o *options) { o.handle = h }
}

// WithLocking controls whether Open takes an exclusive advisory lock on the file.
func WithLocking(enabled bool) Option {
	return func(o *options) { o.locking = enabled }
}

// WithFileMode sets the permissions used when the log file is created.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		if mode != 0 {
			o.fileMode = mode
		}
	}
}
