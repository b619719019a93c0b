// Package media hosts property images on Cloudinary.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/iliyamo/property-backoffice/internal/config"
)

// ErrUpload wraps every failure to hand a file to the image host.
var ErrUpload = errors.New("image upload failed")

// Uploader stores an image and returns its public HTTPS URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// UploadFunc adapts a function to Uploader.
type UploadFunc func(ctx context.Context, filename string, r io.Reader) (string, error)

func (f UploadFunc) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	return f(ctx, filename, r)
}

// Cloudinary uploads into a fixed folder of one cloud.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cfg config.CloudinaryConfig) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld, folder: cfg.Folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         c.folder,
		UniqueFilename: boolPtr(true),
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUpload, filename, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("%w: %s: %s", ErrUpload, filename, res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("%w: %s: empty url in response", ErrUpload, filename)
	}
	return res.SecureURL, nil
}

func boolPtr(b bool) *bool { return &b }

// Disabled rejects every upload.  It is used when no Cloudinary
// credentials are configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, io.Reader) (string, error) {
	return "", fmt.Errorf("%w: image hosting is not configured", ErrUpload)
}

// New returns a Cloudinary uploader when credentials are present and
// Disabled otherwise.
func New(cfg config.CloudinaryConfig) (Uploader, error) {
	if !cfg.Enabled() {
		return Disabled{}, nil
	}
	return NewCloudinary(cfg)
}
