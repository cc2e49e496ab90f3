package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskImageStorageSave(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewDiskImageStorage(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := storage.Save(context.Background(), []byte("image bytes"), "dish.png", "image/png")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	name := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestDiskImageStorageUniqueNames(t *testing.T) {
	storage, err := NewDiskImageStorage(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	first, err := storage.Save(context.Background(), []byte("a"), "dish.jpg", "image/jpeg")
	require.NoError(t, err)
	second, err := storage.Save(context.Background(), []byte("b"), "dish.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSafeExt(t *testing.T) {
	assert.Equal(t, ".png", safeExt("dish.PNG"))
	assert.Equal(t, ".jpeg", safeExt("dish.jpeg"))
	assert.Equal(t, ".webp", safeExt("dish.webp"))
	// Unknown and missing extensions fall back to .jpg.
	assert.Equal(t, ".jpg", safeExt("dish.exe"))
	assert.Equal(t, ".jpg", safeExt("dish"))
}
