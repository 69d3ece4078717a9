package cdn

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiBaseURL = "https://api.cloudinary.com/v1_1"

	// uploadFolder groups every dealership asset under one folder in the
	// Cloudinary media library.
	uploadFolder = "multimark-motos"

	requestTimeout = 60 * time.Second
)

// Kind selects the transform applied to the delivery URL of an upload.
type Kind string

const (
	KindMoto Kind = "moto"
	KindLogo Kind = "logo"
)

// Config holds Cloudinary API credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

// UploadResult is the outcome of a successful upload.
type UploadResult struct {
	// URL is the transform-tagged delivery URL to store in the catalog.
	URL string `json:"url"`
	// PublicID identifies the asset for later deletion.
	PublicID string `json:"publicId"`
}

// Client talks to the Cloudinary upload API.
type Client struct {
	http   *resty.Client
	cfg    Config
	logger *slog.Logger
}

// NewClient creates a Cloudinary API client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(fmt.Sprintf("%s/%s", apiBaseURL, cfg.CloudName)).
			SetTimeout(requestTimeout),
		cfg:    cfg,
		logger: logger,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload pushes an image to Cloudinary with AI background removal enabled
// and returns its transform-tagged delivery URL. Uploads are forced to PNG
// so the removed background stays transparent.
func (c *Client) Upload(ctx context.Context, filename string, data io.Reader, kind Kind) (*UploadResult, error) {
	params := map[string]string{
		"background_removal": "cloudinary_ai",
		"folder":             uploadFolder,
		"format":             "png",
		"timestamp":          strconv.FormatInt(time.Now().Unix(), 10),
	}

	var result uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(params).
		SetFormData(map[string]string{
			"api_key":   c.cfg.APIKey,
			"signature": c.sign(params),
		}).
		SetFileReader("file", filename, data).
		SetResult(&result).
		Post("/image/upload")
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("cloudinary upload: status %d: %s", resp.StatusCode(), result.Error.Message)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("cloudinary upload: response missing secure_url")
	}

	url := MotoImageURL(result.SecureURL)
	if kind == KindLogo {
		url = LogoImageURL(result.SecureURL)
	}

	c.logger.Debug("uploaded image to cloudinary", "public_id", result.PublicID, "kind", string(kind))

	return &UploadResult{URL: url, PublicID: result.PublicID}, nil
}

// Destroy deletes an asset by public ID, invalidating cached copies.
// A blank public ID is a no-op so callers can pass through whatever the
// catalog row holds.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	params := map[string]string{
		"invalidate": "true",
		"public_id":  publicID,
		"timestamp":  strconv.FormatInt(time.Now().Unix(), 10),
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(params).
		SetFormData(map[string]string{
			"api_key":   c.cfg.APIKey,
			"signature": c.sign(params),
		}).
		Post("/image/destroy")
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("cloudinary destroy: status %d", resp.StatusCode())
	}

	return nil
}

// sign computes the Cloudinary API request signature: the SHA-1 hex digest
// of the sorted request parameters concatenated with the API secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	digest := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret))
	return hex.EncodeToString(digest[:])
}
