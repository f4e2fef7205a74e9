package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/config"
	"github.com/city-tourism-backend/internal/pkg/errors"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()

	return NewDiskStore(&config.UploadsConfig{
		Dir:       t.TempDir(),
		PublicURL: "/uploads",
	}, zap.NewNop())
}

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestDiskStore_Save(t *testing.T) {
	t.Run("generates a server-side name and keeps the original as metadata", func(t *testing.T) {
		store := newTestStore(t)
		fh := uploadHeader(t, "vacation photo.JPG", "image-bytes")

		stored, err := store.Save("city-points", fh)
		require.NoError(t, err)

		assert.Equal(t, "vacation photo.JPG", stored.OriginalName)
		assert.NotEqual(t, stored.OriginalName, stored.Filename)
		assert.True(t, strings.HasSuffix(stored.Filename, ".jpg"))
		assert.Equal(t, int64(len("image-bytes")), stored.Size)
		assert.True(t, strings.HasPrefix(stored.Path, "/uploads/city-points/"))

		// File is actually on disk under the generated name.
		path, err := store.Resolve("city-points", stored.Filename)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "image-bytes", string(data))
	})

	t.Run("traversal directory segment is rejected", func(t *testing.T) {
		store := newTestStore(t)
		fh := uploadHeader(t, "a.png", "x")

		_, err := store.Save("..", fh)
		assert.ErrorIs(t, err, errors.ErrInvalidUploadPath)

		_, err = store.Save("a/b", fh)
		assert.ErrorIs(t, err, errors.ErrInvalidUploadPath)
	})
}

func TestDiskStore_ResolveAndDelete(t *testing.T) {
	store := newTestStore(t)
	fh := uploadHeader(t, "doc.pdf", "pdf-bytes")

	stored, err := store.Save("docs", fh)
	require.NoError(t, err)

	t.Run("missing file is a 404", func(t *testing.T) {
		_, err := store.Resolve("docs", "nope.pdf")
		assert.ErrorIs(t, err, errors.ErrFileNotFound)
	})

	t.Run("traversal filename is rejected", func(t *testing.T) {
		_, err := store.Resolve("docs", "../secret")
		assert.ErrorIs(t, err, errors.ErrInvalidUploadPath)
	})

	t.Run("delete removes the file, second delete is a 404", func(t *testing.T) {
		require.NoError(t, store.Delete("docs", stored.Filename))
		err := store.Delete("docs", stored.Filename)
		assert.ErrorIs(t, err, errors.ErrFileNotFound)
	})
}

func TestDiskStore_RemoveByPublicPath(t *testing.T) {
	store := newTestStore(t)
	fh := uploadHeader(t, "img.png", "png-bytes")

	stored, err := store.Save("city-points", fh)
	require.NoError(t, err)

	onDisk, err := store.Resolve("city-points", stored.Filename)
	require.NoError(t, err)

	store.RemoveByPublicPath(stored.Path)

	_, statErr := os.Stat(onDisk)
	assert.True(t, os.IsNotExist(statErr))

	// Suspicious paths are skipped without touching the disk.
	store.RemoveByPublicPath("/uploads/../etc/passwd")
	store.RemoveByPublicPath(filepath.Join("..", "x"))
}
