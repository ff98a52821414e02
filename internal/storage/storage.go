package storage

import (
	"context"
	"io"
)

// StorageService stores uploaded files and returns publicly reachable URLs.
type StorageService interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
