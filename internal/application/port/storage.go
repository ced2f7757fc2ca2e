package port

import (
	"context"
	"io"
)

// StoredFile describes an uploaded file written to storage
type StoredFile struct {
	Name       string // name on disk, <epoch-ms>_<sanitized original>
	PublicPath string // path the file is served under
	Size       int64
}

// FileStorage defines upload storage operations
type FileStorage interface {
	Store(ctx context.Context, originalName string, content io.Reader) (*StoredFile, error)
	Delete(ctx context.Context, name string) error
	GetFullPath(name string) string
}
