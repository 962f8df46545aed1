package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidImage rejects anything that is not a base64 PNG or JPEG data URL.
var ErrInvalidImage = errors.New("signature must be a base64 PNG or JPEG data URL")

// maxImageBytes bounds a decoded signature image.
const maxImageBytes = 2 << 20

// StoredFile identifies an uploaded file.
type StoredFile struct {
	URL      string
	PublicID string
}

// StorageService stores signature images.
type StorageService interface {
	UploadDataURL(ctx context.Context, dataURL, name string) (*StoredFile, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// ValidateDataURL checks the media type and payload of an image data URL.
func ValidateDataURL(dataURL string) error {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return ErrInvalidImage
	}
	switch header {
	case "data:image/png;base64", "data:image/jpeg;base64":
	default:
		return ErrInvalidImage
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxImageBytes {
		return ErrInvalidImage
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(raw) == 0 {
		return ErrInvalidImage
	}
	return nil
}

// Discard deletes a file that is no longer referenced. Failures are only
// logged; a nil service or empty id is a no-op.
func Discard(ctx context.Context, s StorageService, publicID string, logger *zap.Logger) {
	if s == nil || publicID == "" {
		return
	}
	if err := s.DeleteFile(ctx, publicID); err != nil {
		logger.Warn("Failed to delete discarded file", zap.String("publicId", publicID), zap.Error(err))
		return
	}
	logger.Info("Discarded file deleted", zap.String("publicId", publicID))
}
