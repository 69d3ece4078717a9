package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/disintegration/imaging"

	"github.com/multimark/motos/internal/cdn"
	"github.com/multimark/motos/internal/domain"
	"github.com/multimark/motos/internal/storage"
)

const (
	// MaxImageSize caps uploads at 10 MB.
	MaxImageSize = 10 << 20

	thumbMaxWidth  = 600
	thumbMaxHeight = 400
	thumbQuality   = 80
)

// UploadedImage is the outcome of a processed upload.
type UploadedImage struct {
	// URL is the delivery URL to store in the catalog.
	URL string `json:"url"`

	// PublicID identifies the asset for later deletion. Empty for
	// storage-backed uploads, where the URL itself is the handle.
	PublicID string `json:"publicId,omitempty"`

	// ThumbnailURL is set for storage-backed catalog uploads.
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// ImageService processes image uploads for the catalog and site assets.
type ImageService interface {
	// Upload validates and stores an image, returning its delivery URL.
	Upload(ctx context.Context, filename, contentType string, data io.Reader, kind cdn.Kind) (*UploadedImage, error)

	// Remove deletes a previously uploaded asset. Blank handles are a
	// no-op.
	Remove(ctx context.Context, publicID string) error
}

// Uploader is the subset of the Cloudinary client the service needs.
type Uploader interface {
	Upload(ctx context.Context, filename string, data io.Reader, kind cdn.Kind) (*cdn.UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

// cdnImageService routes uploads through Cloudinary: background removal
// and padding happen in the CDN, so no local processing is needed.
type cdnImageService struct {
	client Uploader
	logger *slog.Logger
}

// NewCDNImageService creates an ImageService backed by Cloudinary.
func NewCDNImageService(client Uploader, logger *slog.Logger) ImageService {
	return &cdnImageService{client: client, logger: logger}
}

func (s *cdnImageService) Upload(ctx context.Context, filename, contentType string, data io.Reader, kind cdn.Kind) (*UploadedImage, error) {
	const op = "ImageService.Upload"

	if err := validateImageUpload(op, contentType); err != nil {
		return nil, err
	}

	// Read one byte past the cap so an oversized upload is rejected rather
	// than truncated mid-file.
	raw, err := io.ReadAll(io.LimitReader(data, MaxImageSize+1))
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to read upload")
	}
	if len(raw) > MaxImageSize {
		return nil, domain.Errorf(domain.ETOOLARGE, op, "Image exceeds the 10MB limit")
	}
	if len(raw) == 0 {
		return nil, domain.Invalid(op, "Empty file")
	}

	result, err := s.client.Upload(ctx, filename, bytes.NewReader(raw), kind)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to upload image")
	}

	return &UploadedImage{URL: result.URL, PublicID: result.PublicID}, nil
}

func (s *cdnImageService) Remove(ctx context.Context, publicID string) error {
	const op = "ImageService.Remove"

	if err := s.client.Destroy(ctx, publicID); err != nil {
		return domain.Internal(err, op, "Failed to delete image")
	}
	return nil
}

// storageImageService writes uploads to a Storage backend and generates a
// JPEG thumbnail for catalog images.
type storageImageService struct {
	store  storage.Storage
	logger *slog.Logger
}

// NewStorageImageService creates an ImageService backed by object or
// filesystem storage.
func NewStorageImageService(store storage.Storage, logger *slog.Logger) ImageService {
	return &storageImageService{store: store, logger: logger}
}

func (s *storageImageService) Upload(ctx context.Context, filename, contentType string, data io.Reader, kind cdn.Kind) (*UploadedImage, error) {
	const op = "ImageService.Upload"

	if err := validateImageUpload(op, contentType); err != nil {
		return nil, err
	}

	// Buffer the upload so it can be both stored and decoded for the
	// thumbnail. MaxImageSize bounds the buffer.
	raw, err := io.ReadAll(io.LimitReader(data, MaxImageSize+1))
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to read upload")
	}
	if len(raw) > MaxImageSize {
		return nil, domain.Errorf(domain.ETOOLARGE, op, "Image exceeds the 10MB limit")
	}
	if len(raw) == 0 {
		return nil, domain.Invalid(op, "Empty file")
	}

	key := storage.MotoImageKey(filename)
	if kind == cdn.KindLogo {
		key = storage.LogoImageKey(filename)
	}

	opts := storage.PutOptions{ContentType: contentType, Public: true}
	if err := s.store.Put(ctx, key, bytes.NewReader(raw), opts); err != nil {
		return nil, domain.Internal(err, op, "Failed to store image")
	}

	url, err := s.store.URL(ctx, key, 0)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to resolve image URL")
	}

	uploaded := &UploadedImage{URL: url}

	// Logos are small enough to serve as-is.
	if kind == cdn.KindMoto {
		if thumbURL, err := s.storeThumbnail(ctx, raw); err != nil {
			s.logger.Warn("thumbnail generation failed", "key", key, "error", err)
		} else {
			uploaded.ThumbnailURL = thumbURL
		}
	}

	s.logger.Info("image uploaded", "key", key, "size", len(raw), "kind", string(kind))

	return uploaded, nil
}

func (s *storageImageService) storeThumbnail(ctx context.Context, raw []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fit(img, thumbMaxWidth, thumbMaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbQuality)); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}

	key := storage.ThumbnailKey("thumb.jpg")
	opts := storage.PutOptions{ContentType: "image/jpeg", Public: true}
	if err := s.store.Put(ctx, key, &buf, opts); err != nil {
		return "", fmt.Errorf("store thumbnail: %w", err)
	}

	return s.store.URL(ctx, key, 0)
}

// Remove is a no-op for storage-backed uploads: the catalog only tracks
// Cloudinary public IDs, storage keys are left to bucket lifecycle rules.
func (s *storageImageService) Remove(ctx context.Context, publicID string) error {
	return nil
}

func validateImageUpload(op, contentType string) error {
	if !storage.IsImage(contentType) {
		return domain.Invalid(op, "File must be an image")
	}
	return nil
}
