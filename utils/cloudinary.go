package utils

import (
	"context"
	"errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/meinhoongagan/homeconnect-pro/config"
)

var ErrUploadsNotConfigured = errors.New("cloudinary credentials are not set")

// InitCloudinary initializes the Cloudinary client
func InitCloudinary(cfg *config.Config) (*cloudinary.Cloudinary, error) {
	if !cfg.CloudinaryEnabled() {
		return nil, ErrUploadsNotConfigured
	}
	return cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
}

// UploadToCloudinary uploads an image and returns its secure URL. file may be a
// path, URL or io.Reader.
func UploadToCloudinary(ctx context.Context, file interface{}, publicID string, folder string) (string, error) {
	cfg := config.Get()
	cld, err := InitCloudinary(cfg)
	if err != nil {
		return "", err
	}

	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		UploadPreset:   cfg.CloudinaryUploadPreset,
		Transformation: "c_thumb,w_200,h_200",
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.SecureURL, nil
}
