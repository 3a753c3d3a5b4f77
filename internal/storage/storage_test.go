package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	ok, err := CleanKey("user-1/headshot_1700000000000.jpg")
	require.NoError(t, err)
	assert.Equal(t, "user-1/headshot_1700000000000.jpg", ok)

	for _, bad := range []string{"", "/etc/passwd", "../x", "a/../../x", "a\\b", ".."} {
		_, err := CleanKey(bad)
		assert.ErrorIs(t, err, ErrInvalidPath, bad)
	}
}

func TestLocalStorage_SaveURLDelete(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: base, BaseURL: "http://localhost:8080/uploads/"})
	require.NoError(t, err)

	ctx := context.Background()
	key := "u1/headshot_1.jpg"

	require.NoError(t, s.Save(ctx, key, bytes.NewReader([]byte("img")), "image/jpeg"))

	data, err := os.ReadFile(filepath.Join(base, DefaultBucket, "u1", "headshot_1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	url, err := s.GetURL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/portfolio-media/u1/headshot_1.jpg", url)

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key), "deleting twice is fine")

	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Save(ctx, "u1/x.jpg", bytes.NewReader([]byte("img")), "image/jpeg")
	assert.ErrorIs(t, err, context.Canceled)

	exists, err := s.Exists(context.Background(), "u1/x.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)
}
