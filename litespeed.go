// Package litespeed is an embedded key-value store made durable by a single
// append-only write-ahead log.
//
// Every Set keeps the previous versions of a key, each with a caller supplied
// duration measurement, so the store can report the latest value as well as
// the average duration across a key's history. On Open the in-memory index is
// rebuilt by replaying the log; a torn or corrupt tail left by a crash is
// detected by checksum and truncated.
//
// Example usage:
//
//	db, err := litespeed.Open("/path/to/litespeed.wal", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	err = db.Set("key", []byte("value"), 12.5)
//	if err != nil {
//		log.Printf("Set failed: %v", err)
//	}
//
//	value, exists := db.Get("key")
//	if exists {
//		fmt.Printf("Value: %s\n", string(value))
//	}
//
//	fmt.Println(db.Average("key"))
package litespeed

import (
	"github.com/MikhailWahib/litespeed/internal/config"
	"github.com/MikhailWahib/litespeed/internal/engine"
	"github.com/MikhailWahib/litespeed/internal/record"
)

// Config is an alias for config.Config, re-exported for user convenience.
type Config = config.Config

// Record is one stored version of a key, re-exported for user convenience.
type Record = record.Record

// DefaultConfig returns a Config struct populated with default values. Re-exported for user convenience.
var DefaultConfig = config.DefaultConfig

// DefaultPath is the log file name used by DefaultConfig.
const DefaultPath = config.DefaultWALPath

// DB represents a thread-safe LiteSpeed instance.
type DB struct {
	engine *engine.Engine
}

// Open opens or creates the write-ahead log at path and rebuilds the index
// from it before returning. The path argument overrides cfg.WALPath; an empty
// path falls back to cfg.WALPath, then to DefaultPath.
func Open(path string, cfg *Config) (*DB, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	} else {
		c := *cfg
		cfg = &c
	}
	if path != "" {
		cfg.WALPath = path
	}
	if cfg.WALPath == "" {
		cfg.WALPath = config.DefaultWALPath
	}

	e, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &DB{engine: e}, nil
}

// OpenMemory returns an ephemeral DB with no log. It keeps only the latest
// version of each key and does not track durations.
func OpenMemory() *DB {
	cfg := config.DefaultConfig()
	cfg.WALPath = ""

	// An ephemeral engine never touches the filesystem, so it cannot fail.
	e, _ := engine.NewEngine(cfg)
	return &DB{engine: e}
}

// Set stores a new version of key together with its duration measurement.
// The write is durable when Set returns nil.
func (db *DB) Set(key string, value []byte, duration float64) error {
	return db.engine.Set(key, value, duration)
}

// Get retrieves the latest value for a given key.
// Returns the value and true if found, or nil and false if the key doesn't exist.
func (db *DB) Get(key string) ([]byte, bool) {
	return db.engine.Get(key)
}

// Average returns the mean duration across every version of key, or 0 when
// the key does not exist.
func (db *DB) Average(key string) float64 {
	return db.engine.Average(key)
}

// Remove deletes the key and its whole history. It reports whether the key existed.
func (db *DB) Remove(key string) (bool, error) {
	return db.engine.Remove(key)
}

// Count returns the number of distinct keys.
func (db *DB) Count() int {
	return db.engine.Count()
}

// HistoryCount returns how many versions of key are stored.
func (db *DB) HistoryCount(key string) int {
	return db.engine.HistoryCount(key)
}

// History returns every version of key, oldest first.
func (db *DB) History(key string) []Record {
	return db.engine.History(key)
}

// Reload discards the in-memory index and replays the log. It returns false
// if a damaged tail had to be truncated.
func (db *DB) Reload() (bool, error) {
	return db.engine.Recover()
}

// Sync flushes the log to stable storage. Every Set and Remove already syncs,
// so failures are logged rather than returned.
func (db *DB) Sync() {
	db.engine.Sync()
}

// Close releases the log file. Calling Close more than once is safe.
func (db *DB) Close() error {
	return db.engine.Close()
}
