package filestorage

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
)

// makeFileHeader builds a real multipart.FileHeader from an in-memory form.
func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("payment_slip", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files := req.MultipartForm.File["payment_slip"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveFileUsesGeneratedName(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.SaveFile(makeFileHeader(t, "proof.pdf", "pdf-bytes"))
	require.NoError(t, err)

	assert.NotEqual(t, "proof.pdf", stored)
	assert.True(t, strings.HasSuffix(stored, ".pdf"), "extension must be preserved")
	assert.True(t, storage.Exists(stored))

	content, err := os.ReadFile(storage.FullPath(stored))
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))
}

func TestSaveFileCollidingOriginalNames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	first, err := storage.SaveFile(makeFileHeader(t, "slip.png", "first"))
	require.NoError(t, err)
	second, err := storage.SaveFile(makeFileHeader(t, "slip.png", "second"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same original name must not overwrite")

	content, err := os.ReadFile(storage.FullPath(first))
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestDeleteFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.SaveFile(makeFileHeader(t, "proof.jpg", "bytes"))
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(stored))
	assert.False(t, storage.Exists(stored))

	// Deleting again is not an error
	assert.NoError(t, storage.DeleteFile(stored))
}

func TestFullPathStripsDirectories(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base)
	require.NoError(t, err)

	path := storage.FullPath("../../etc/passwd")
	assert.Equal(t, filepath.Join(base, "passwd"), path)
}
