// Package media validates image uploads and stores them with an
// external service in exchange for a durable public URL.
package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/trivora/trivora/internal/config"
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"webp": {},
	"bmp":  {},
}

// AllowedExtension reports whether the filename carries an image
// extension. Extension only: a renamed file passes, there is no
// content sniffing.
func AllowedExtension(filename string) bool {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[i+1:])]
	return ok
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// NewFromConfig picks the configured backend. A "host" backend without
// an endpoint yields a nil Uploader: uploads are disabled and posts are
// created without images.
func NewFromConfig(cfg config.Media) (Uploader, error) {
	switch cfg.Backend {
	case "s3":
		return NewS3Uploader(S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
			UsePathStyle:    cfg.S3UsePathStyle,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
	case "host":
		if cfg.HostEndpoint == "" {
			return nil, nil
		}
		return NewHostUploader(cfg.HostEndpoint, cfg.HostAPIKey, cfg.UploadTimeout), nil
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
	}
}
