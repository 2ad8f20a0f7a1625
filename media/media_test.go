package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		filename string
		ext      string
		ok       bool
	}{
		{"clip.mp4", "mp4", true},
		{"CLIP.MOV", "mov", true},
		{"a.b.webm", "webm", true},
		{"old.avi", "avi", true},
		{"song.mp3", "", false},
		{"noext", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			ext, ok := ExtensionOf(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "video/mp4", ContentType("x.mp4"))
	assert.Equal(t, "video/quicktime", ContentType("x.mov"))
	assert.Equal(t, "application/octet-stream", ContentType("x.txt"))
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID(newID("mp4")))
	assert.False(t, ValidID("../etc/passwd"))
	assert.False(t, ValidID("video.mp4"))
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	id, err := store.Save(ctx, strings.NewReader("frames"), "mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, ".mp4"))

	size, err := store.SizeOf(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(6), size)

	rc, err := store.Open(ctx, id)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "frames", string(data))
}

func TestLocalStoreMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Open(ctx, newID("mp4"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.SizeOf(ctx, "../../secret")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	id, err := store.Save(ctx, strings.NewReader("frames"), "webm")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Open(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again, or deleting a foreign id, is a no-op.
	assert.NoError(t, store.Delete(ctx, id))
	assert.NoError(t, store.Delete(ctx, "../../secret"))
}
