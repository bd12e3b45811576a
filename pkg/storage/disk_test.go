package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisk_PutExistsDelete(t *testing.T) {
	root := t.TempDir()
	disk, err := NewDisk(root, "/storage/")
	require.NoError(t, err)
	ctx := context.Background()

	ref, err := disk.Put(ctx, "avatars/abc.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/storage/avatars/abc.png", ref)

	data, err := os.ReadFile(filepath.Join(root, "avatars", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	ok, err := disk.Exists(ctx, ref)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, disk.Delete(ctx, ref))

	ok, err = disk.Exists(ctx, ref)
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting twice is fine
	assert.NoError(t, disk.Delete(ctx, ref))
}

func TestDisk_RejectsTraversal(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), "/storage")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = disk.Put(ctx, "../escape.txt", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, ErrInvalidKey)

	assert.ErrorIs(t, disk.Delete(ctx, "/storage/../../etc/passwd"), ErrInvalidKey)
	assert.ErrorIs(t, disk.Delete(ctx, "/elsewhere/file.png"), ErrInvalidKey)
}

func TestCleanKey(t *testing.T) {
	key, err := cleanKey("/reels/p1/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, "reels/p1/a.mp4", key)

	for _, bad := range []string{"", "/", "a//b", "a/./b", "a/../b"} {
		_, err := cleanKey(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
}
