package handler

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/niramoy/clinic-api/internal/storage"
)

// UploadAll pushes every part to the file store and returns the
// resulting URLs in part order.
func UploadAll(ctx context.Context, store storage.StorageService, headers []*multipart.FileHeader) ([]string, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	if store == nil {
		return nil, fmt.Errorf("file storage not configured")
	}

	urls := make([]string, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %q: %w", fh.Filename, err)
		}

		url, err := store.Upload(ctx, f, fh.Filename)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to store upload %q: %w", fh.Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}
