package config_test

import (
	"testing"

	"github.com/MikhailWahib/litespeed/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, "litespeed.wal", cfg.WALPath)
	assert.EqualValues(t, 0644, cfg.FileMode)
	assert.False(t, cfg.DisableLock, "locking is on by default")
	assert.NotNil(t, cfg.Logger)
	assert.NotNil(t, cfg.Clock)
	assert.Positive(t, cfg.Clock())
}

func TestFillDefaults(t *testing.T) {
	cfg := &config.Config{WALPath: "custom.wal", FileMode: 0600}
	cfg.FillDefaults()

	assert.Equal(t, "custom.wal", cfg.WALPath)
	assert.EqualValues(t, 0600, cfg.FileMode)
	assert.False(t, cfg.DisableLock, "a hand-built config keeps the lock")
	assert.NotNil(t, cfg.Logger)
	assert.NotNil(t, cfg.Clock)

	empty := &config.Config{}
	empty.FillDefaults()
	assert.Empty(t, empty.WALPath, "an empty path stays ephemeral")
	assert.EqualValues(t, 0644, empty.FileMode)
}
