package images

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageSaveGetRoundTrip(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	data := []byte("fake image bytes")
	require.NoError(t, storage.Save("photo.jpg", data))

	got, err := storage.Get("photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.True(t, storage.Exists("photo.jpg"))
}

func TestStorageGetMissing(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Get("nope.jpg")
	assert.Error(t, err)
	assert.False(t, storage.Exists("nope.jpg"))
}

func TestStorageDeleteIsIdempotent(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storage.Save("photo.jpg", []byte("data")))
	require.NoError(t, storage.Delete("photo.jpg"))
	assert.False(t, storage.Exists("photo.jpg"))

	// Deleting a missing file is not an error
	assert.NoError(t, storage.Delete("photo.jpg"))
}

func TestStoragePathStripsDirectories(t *testing.T) {
	base := t.TempDir()
	storage, err := NewStorage(base)
	require.NoError(t, err)

	path := storage.Path("../../etc/passwd")
	assert.Equal(t, filepath.Join(base, "places", "passwd"), path)
}

func TestStorageHash(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storage.Save("a.jpg", []byte("same")))
	require.NoError(t, storage.Save("b.jpg", []byte("same")))
	require.NoError(t, storage.Save("c.jpg", []byte("different")))

	hashA, err := storage.Hash("a.jpg")
	require.NoError(t, err)
	hashB, err := storage.Hash("b.jpg")
	require.NoError(t, err)
	hashC, err := storage.Hash("c.jpg")
	require.NoError(t, err)

	assert.Equal(t, hashA, hashB)
	assert.NotEqual(t, hashA, hashC)
	assert.Len(t, hashA, 64)
}

func TestNewStorageValidation(t *testing.T) {
	_, err := NewStorage("")
	assert.Error(t, err)

	_, err = NewStorageWithSubdir(t.TempDir(), "")
	assert.Error(t, err)
}
