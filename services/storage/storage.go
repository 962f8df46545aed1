package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryStorageService keeps signatures in one Cloudinary folder.
type CloudinaryStorageService struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

func NewCloudinaryStorageService(cloudName, apiKey, apiSecret, folder string, logger *zap.Logger) (*CloudinaryStorageService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld, folder: folder, logger: logger}, nil
}

// UploadDataURL uploads an image data URL under the given public id.
func (s *CloudinaryStorageService) UploadDataURL(ctx context.Context, dataURL, name string) (*StoredFile, error) {
	if err := ValidateDataURL(dataURL); err != nil {
		return nil, err
	}
	result, err := s.cld.Upload.Upload(ctx, dataURL, uploader.UploadParams{
		Folder:    s.folder,
		PublicID:  name,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload signature: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload signature: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("failed to upload signature: no public ID returned")
	}
	s.logger.Info("Signature uploaded", zap.String("publicId", result.PublicID))
	return &StoredFile{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// DeleteFile removes a stored file by public id.
func (s *CloudinaryStorageService) DeleteFile(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("failed to delete file: %s", result.Error.Message)
	}
	return nil
}
