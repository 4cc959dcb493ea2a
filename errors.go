package litespeed

import (
	"errors"

	"github.com/MikhailWahib/litespeed/internal/diskmanager"
	"github.com/MikhailWahib/litespeed/internal/engine"
)

var (
	// ErrClosed is returned by mutations on a closed DB.
	ErrClosed = engine.ErrClosed
	// ErrLocked is returned by Open when another handle owns the log file.
	ErrLocked = diskmanager.ErrLocked
	// ErrSnapshotUnsupported is returned by Snapshot.
	ErrSnapshotUnsupported = errors.New("litespeed: snapshot not supported")
)
