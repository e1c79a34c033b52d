package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailingFS_FailWriteCountsDown(t *testing.T) {
	boom := errors.New("disk full")
	ffs := NewFailingFS(NewTestFS())
	ffs.FailWrite("/a.js", 1, boom)

	err := ffs.WriteFile("/a.js", []byte("first"), 0644)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	require.NoError(t, ffs.WriteFile("/a.js", []byte("second"), 0644))
	assert.Equal(t, "second", ReadFS(t, ffs, "/a.js"))
	assert.Equal(t, []string{"/a.js", "/a.js"}, ffs.Writes)
}

func TestFailingFS_FailWriteForever(t *testing.T) {
	ffs := NewFailingFS(NewTestFS())
	ffs.FailWrite("/a.js", -1, errors.New("read-only"))

	for i := 0; i < 3; i++ {
		assert.Error(t, ffs.WriteFile("/a.js", []byte("x"), 0644))
	}
	_, err := ffs.Stat("/a.js")
	assert.Error(t, err)
}

func TestFailingFS_PartialWrite(t *testing.T) {
	ffs := NewFailingFS(NewTestFS())
	ffs.FailWritePartial("/a.js", 1, errors.New("short write"))

	assert.Error(t, ffs.WriteFile("/a.js", []byte("abcdef"), 0644))
	assert.Equal(t, "abc", ReadFS(t, ffs, "/a.js"))
}

func TestFailingFS_ReadAndRemove(t *testing.T) {
	ffs := NewFailingFS(NewTestFS())
	require.NoError(t, ffs.WriteFile("/a.js", []byte("x"), 0644))
	ffs.FailRead("/a.js", errors.New("EIO"))
	ffs.FailRemove("/a.js", errors.New("EPERM"))

	_, err := ffs.ReadFile("/a.js")
	assert.Error(t, err)
	assert.Error(t, ffs.Remove("/a.js"))
}
