package diskmanager_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/MikhailWahib/litespeed/internal/diskmanager"
	"github.com/stretchr/testify/require"
)

func TestOpenFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "testfile1.wal")

	// Test creating a new file
	handle, err := diskmanager.OpenFile(filePath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err, "Expected no error on file creation")
	require.NotNil(t, handle, "Expected valid file handle, got nil")
	require.NoError(t, handle.Close())

	// Test reopening existing file
	handle, err = diskmanager.OpenFile(filePath, os.O_RDWR, 0644)
	require.NoError(t, err, "Expected no error opening existing file")
	require.NoError(t, handle.Close())

	// Test opening non-existent file without create flag
	_, err = diskmanager.OpenFile(filepath.Join(t.TempDir(), "nonexistent.wal"), os.O_RDWR, 0644)
	require.Error(t, err, "Expected error opening non-existent file without create flag")
	require.True(t, os.IsNotExist(err), "Expected 'file not exist' error")
}

func TestFileHandle_ReadWriteOperations(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "testfile2.wal")

	handle, err := diskmanager.OpenFile(filePath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)
	defer handle.Close()

	data := []byte("Hello, world!")
	n, err := handle.WriteAt(data, 0)
	require.NoError(t, err, "Expected no error on WriteAt")
	require.Equal(t, len(data), n)
	require.NoError(t, handle.Sync(), "Expected no error on Sync")

	readData := make([]byte, len(data))
	n, err = handle.ReadAt(readData, 0)
	require.NoError(t, err, "Expected no error on ReadAt")
	require.Equal(t, len(data), n)
	require.Equal(t, string(data), string(readData))

	// Test appending data
	newData := []byte("\nHiii!")
	_, err = handle.WriteAt(newData, int64(len(data)))
	require.NoError(t, err)

	readData = make([]byte, len(data)+len(newData))
	_, err = handle.ReadAt(readData, 0)
	require.NoError(t, err)
	require.Equal(t, "Hello, world!\nHiii!", string(readData))

	// Reading past the end reports a short read
	buf := make([]byte, 8)
	n, err = handle.ReadAt(buf, int64(len(readData))-2)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 2, n)
}

func TestFileHandle_Truncate(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "testfile3.wal")

	handle, err := diskmanager.OpenFile(filePath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)
	defer handle.Close()

	_, err = handle.WriteAt([]byte("keep-this|drop-this"), 0)
	require.NoError(t, err)

	require.NoError(t, handle.Truncate(9))

	fi, err := handle.Stat()
	require.NoError(t, err)
	require.Equal(t, int64(9), fi.Size())

	onDisk, err := os.ReadFile(filePath)
	require.NoError(t, err)
	require.Equal(t, "keep-this", string(onDisk))
}

func TestFileHandle_Sync(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "testfile4.wal")

	handle, err := diskmanager.OpenFile(filePath, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	data := []byte("Data to sync")
	_, err = handle.WriteAt(data, 0)
	require.NoError(t, err)
	require.NoError(t, handle.Sync())
	require.NoError(t, handle.Close())

	// Verify data was synced to disk by reopening
	handle, err = diskmanager.OpenFile(filePath, os.O_RDONLY, 0644)
	require.NoError(t, err)
	defer handle.Close()

	readData := make([]byte, len(data))
	n, err := handle.ReadAt(readData, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, string(data), string(readData))
}
