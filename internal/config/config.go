// Package config provides configuration structures and defaults for LiteSpeed.
package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	// DefaultWALPath is the log file used when no path is given.
	DefaultWALPath = "litespeed.wal"

	defaultFileMode os.FileMode = 0644
)

// Config holds the tunable parameters for a LiteSpeed engine.
type Config struct {
	// WALPath is the write-ahead log location. Empty means no log: the engine
	// runs in ephemeral mode with a single version per key.
	WALPath string
	// FileMode is used when the log file has to be created.
	FileMode os.FileMode
	// DisableLock skips the exclusive advisory lock that otherwise keeps a
	// second process from appending to the same log.
	DisableLock bool
	// Logger receives recovery and durability diagnostics.
	Logger *slog.Logger
	// Clock returns the timestamp recorded with each mutation.
	Clock func() int64
}

// DefaultConfig returns a Config struct populated with default values.
func DefaultConfig() *Config {
	return &Config{
		WALPath:  DefaultWALPath,
		FileMode: defaultFileMode,
		Logger:   defaultLogger(),
		Clock:    wallClock,
	}
}

// FillDefaults sets any zero-value fields in the Config to their default values.
// WALPath is left alone since an empty path selects ephemeral mode.
func (c *Config) FillDefaults() {
	if c.FileMode == 0 {
		c.FileMode = defaultFileMode
	}
	if c.Logger == nil {
		c.Logger = defaultLogger()
	}
	if c.Clock == nil {
		c.Clock = wallClock
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func wallClock() int64 {
	return time.Now().UnixNano()
}
