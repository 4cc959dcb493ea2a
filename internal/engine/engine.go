// Package engine implements the LiteSpeed storage engine: an in-memory index
// of versioned records per key, kept durable by a write-ahead log.
//
// Every mutation is appended to the log and synced before it is applied to
// the index, so the index can always be rebuilt from the log on open.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/MikhailWahib/litespeed/internal/config"
	"github.com/MikhailWahib/litespeed/internal/memtable"
	"github.com/MikhailWahib/litespeed/internal/record"
	"github.com/MikhailWahib/litespeed/internal/wal"
)

// ErrClosed is returned by mutations on a closed engine
var ErrClosed = errors.New("engine: closed")

type Engine struct {
	mu sync.RWMutex

	// durable mode
	index map[string]record.History
	wal   *wal.WAL

	// ephemeral mode
	mem memtable.Memtable

	clock  func() int64
	logger *slog.Logger
	closed bool
}

// NewEngine creates an engine from cfg. With an empty WALPath the engine is
// ephemeral; otherwise the log is opened (or created) and replayed before
// NewEngine returns.
func NewEngine(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.FillDefaults()

	if cfg.WALPath == "" {
		return &Engine{
			mem:    memtable.NewMemtable(),
			clock:  cfg.Clock,
			logger: cfg.Logger,
		}, nil
	}

	w, err := wal.Open(cfg.WALPath,
		wal.WithLogger(cfg.Logger),
		wal.WithLocking(!cfg.DisableLock),
		wal.WithFileMode(cfg.FileMode),
	)
	if err != nil {
		return nil, err
	}

	return NewWithWAL(w, cfg)
}

// NewWithWAL creates a durable engine on an already opened log and replays it.
// The engine takes ownership of w and closes it on Close, or on failure.
func NewWithWAL(w *wal.WAL, cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.FillDefaults()

	e := &Engine{
		index:  make(map[string]record.History),
		wal:    w,
		clock:  cfg.Clock,
		logger: cfg.Logger,
	}

	clean, err := e.Recover()
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("engine: recover %s: %w", w.Path(), err)
	}
	if !clean {
		e.logger.Info("recovered from a damaged log",
			"path", w.Path(),
			"keys", len(e.index),
		)
	}

	return e, nil
}

// Durable reports whether the engine is backed by a write-ahead log.
func (e *Engine) Durable() bool {
	return e.wal != nil
}

// Set records a new version of key. The previous versions are kept.
// If the log append fails the index is left untouched.
func (e *Engine) Set(key string, value []byte, duration float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	ts := e.clock()
	value = bytes.Clone(value)
	if value == nil {
		value = []byte{}
	}

	if e.wal == nil {
		e.mem.Set(key, value, ts)
		return nil
	}

	payload := record.EncodePutPayload(value, duration)
	if err := e.wal.Append(record.PutEntry, []byte(key), payload, ts); err != nil {
		return fmt.Errorf("engine: set %q: %w", key, err)
	}

	e.index[key] = append(e.index[key], record.Record{
		Value:     value,
		Duration:  duration,
		Timestamp: ts,
	})
	return nil
}

// Get returns the most recent value of key.
func (e *Engine) Get(key string) ([]byte, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.wal == nil {
		r, ok := e.mem.Get(key)
		if !ok {
			return nil, false
		}
		return bytes.Clone(r.Value), true
	}

	r, ok := e.index[key].Current()
	if !ok {
		return nil, false
	}
	return bytes.Clone(r.Value), true
}

// Average returns the mean duration over the history of key, or 0 if the key
// is absent. Ephemeral engines do not track durations and always return 0.
func (e *Engine) Average(key string) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.wal == nil {
		return 0
	}
	return e.index[key].Average()
}

// Remove drops the whole history of key and reports whether it was present.
func (e *Engine) Remove(key string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false, ErrClosed
	}

	if e.wal == nil {
		return e.mem.Delete(key), nil
	}

	if err := e.wal.Append(record.DeleteEntry, []byte(key), nil, e.clock()); err != nil {
		return false, fmt.Errorf("engine: remove %q: %w", key, err)
	}

	_, existed := e.index[key]
	delete(e.index, key)
	return existed, nil
}

// Count returns the number of distinct keys.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.wal == nil {
		return e.mem.Len()
	}
	return len(e.index)
}

// HistoryCount returns the number of versions stored for key.
func (e *Engine) HistoryCount(key string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.wal == nil {
		if _, ok := e.mem.Get(key); ok {
			return 1
		}
		return 0
	}
	return len(e.index[key])
}

// History returns a copy of every version of key, oldest first.
func (e *Engine) History(key string) []record.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.wal == nil {
		r, ok := e.mem.Get(key)
		if !ok {
			return nil
		}
		r.Value = bytes.Clone(r.Value)
		return []record.Record{r}
	}

	h := slices.Clone(e.index[key])
	for i := range h {
		h[i].Value = bytes.Clone(h[i].Value)
	}
	return h
}

// Recover discards the index and rebuilds it by replaying the log. It returns
// false if the log had a damaged tail that was truncated. Ephemeral engines
// have nothing to replay.
func (e *Engine) Recover() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.wal == nil {
		return true, nil
	}
	if e.closed {
		return false, ErrClosed
	}

	// Replay into a fresh index so a failed scan leaves the live one intact.
	idx := make(map[string]record.History)
	clean, err := e.wal.Recover(func(entry record.Entry) {
		e.apply(idx, entry)
	})
	if err != nil {
		return false, err
	}
	e.index = idx
	return clean, nil
}

// apply replays one log entry into idx.
func (e *Engine) apply(idx map[string]record.History, entry record.Entry) {
	key := string(entry.Key)

	switch entry.Type {
	case record.PutEntry:
		value, duration, err := record.DecodePutPayload(entry.Value)
		if err != nil {
			e.logger.Warn("skipping malformed put during replay",
				"key", key,
				"error", err,
			)
			return
		}
		idx[key] = append(idx[key], record.Record{
			Value:     value,
			Duration:  duration,
			Timestamp: entry.Timestamp,
		})
	case record.DeleteEntry:
		delete(idx, key)
	default:
		e.logger.Warn("skipping unknown entry type during replay",
			"key", key,
			"type", entry.Type.String(),
		)
	}
}

// Sync asks the log to flush to stable storage. Failures are only logged.
func (e *Engine) Sync() {
	if e.wal != nil {
		e.wal.Sync()
	}
}

// Close releases the log. It is safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	if e.wal == nil {
		return nil
	}
	return e.wal.Close()
}
