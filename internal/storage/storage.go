// Package storage provides image storage for the catalog.
//
// Two implementations exist:
//   - LocalStorage: filesystem storage for development, served by the
//     application itself under /files/
//   - R2Storage: S3-compatible object storage for production deployments
//     that do not use the Cloudinary pipeline
//
// Stored objects are only ever read back through their public URL, so the
// interface covers writing, deleting and URL generation.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Storage is the interface image uploads are written through.
type Storage interface {
	// Put stores data at the specified key.
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Delete removes the object at the specified key. Idempotent.
	Delete(ctx context.Context, key string) error

	// URL returns a URL for accessing the object at the specified key.
	// For private objects, this is a presigned URL valid for the given
	// duration; with expires 0 a permanent public URL is returned where
	// the provider supports one.
	URL(ctx context.Context, key string, expires time.Duration) (string, error)

	// Exists checks if an object exists at the specified key.
	Exists(ctx context.Context, key string) (bool, error)
}

// PutOptions configures how an object is stored.
type PutOptions struct {
	// ContentType specifies the MIME type of the object. If empty, it is
	// detected from the key's extension.
	ContentType string

	// MaxSize limits the object size in bytes. 0 means no limit.
	MaxSize int64

	// Public marks the object as publicly readable where the provider
	// distinguishes (R2 sets a public-read ACL).
	Public bool
}

// LocalConfig holds configuration for local filesystem storage.
type LocalConfig struct {
	// BasePath is the root directory where files are stored.
	BasePath string

	// BaseURL is the public URL prefix for accessing files.
	// Example: "http://localhost:8080/files"
	BaseURL string
}

// R2Config holds configuration for S3-compatible (Cloudflare R2) storage.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string

	// PublicURL is the public base URL for the bucket (custom domain).
	// If empty, presigned URLs are used for all access.
	PublicURL string

	// Region defaults to "auto", which is what R2 expects.
	Region string
}

// MotoImageKey generates a storage key for an uploaded catalog image.
// Format: motos/{uuid}.{ext}
func MotoImageKey(filename string) string {
	return fmt.Sprintf("motos/%s%s", uuid.New(), filepath.Ext(filename))
}

// LogoImageKey generates a storage key for an uploaded site logo.
// Format: site/logo-{uuid}.{ext}
func LogoImageKey(filename string) string {
	return fmt.Sprintf("site/logo-%s%s", uuid.New(), filepath.Ext(filename))
}

// ThumbnailKey generates a storage key for a catalog image thumbnail.
// Format: motos/thumbs/{uuid}.{ext}
func ThumbnailKey(filename string) string {
	return fmt.Sprintf("motos/thumbs/%s%s", uuid.New(), filepath.Ext(filename))
}
