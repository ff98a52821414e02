package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/niramoy/clinic-api/internal/config"
	"github.com/niramoy/clinic-api/pkg/metrics"
)

type cloudinaryStorage struct {
	cld     *cloudinary.Cloudinary
	folder  string
	metrics *metrics.Metrics
}

// NewCloudinaryStorage builds a StorageService backed by Cloudinary.
func NewCloudinaryStorage(cfg config.StorageConfig, m *metrics.Metrics) (StorageService, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	folder := cfg.Folder
	if folder == "" {
		folder = "clinic"
	}

	return &cloudinaryStorage{cld: cld, folder: folder, metrics: m}, nil
}

func (s *cloudinaryStorage) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	start := time.Now()

	publicID := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       publicID,
		UniqueFilename: boolPtr(true),
	})
	if s.metrics != nil {
		s.metrics.UploadDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.UploadsTotal.WithLabelValues("error").Inc()
		}
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("no URL returned for upload %q", filename)
	}
	if s.metrics != nil {
		s.metrics.UploadsTotal.WithLabelValues("success").Inc()
	}
	return result.SecureURL, nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
