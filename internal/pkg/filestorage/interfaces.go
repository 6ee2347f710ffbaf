package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves an uploaded file and returns the stored filename
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// DeleteFile removes a stored file by its stored filename
	DeleteFile(filename string) error

	// FullPath returns the full filesystem path for a stored filename
	FullPath(filename string) string

	// Exists reports whether a stored filename exists on disk
	Exists(filename string) bool
}
