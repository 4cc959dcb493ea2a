//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package litespeed_test

import (
	"path/filepath"
	"testing"

	"github.com/MikhailWahib/litespeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_RejectsSecondWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owned.wal")

	db, err := litespeed.Open(path, quietConfig())
	require.NoError(t, err)
	defer db.Close()

	_, err = litespeed.Open(path, quietConfig())
	assert.ErrorIs(t, err, litespeed.ErrLocked)
}
