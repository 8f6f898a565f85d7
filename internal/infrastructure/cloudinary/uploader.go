package cloudinary

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/docsync/backend/internal/config"
	"github.com/docsync/backend/internal/domain"
	"github.com/docsync/backend/internal/infrastructure/logger"
)

// UploadError wraps a Cloudinary rejection (size limit, quota, malformed
// file). It is always handled as a per-document failure, never fatal.
type UploadError struct {
	PublicID string
	Message  string
	Err      error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cloudinary upload failed for %s: %v", e.PublicID, e.Err)
	}
	return fmt.Sprintf("cloudinary upload failed for %s: %s", e.PublicID, e.Message)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Uploader pushes local files into Cloudinary and returns durable references.
type Uploader struct {
	cld    *cloudinary.Cloudinary
	logger *logger.Logger
}

func NewUploader(cfg config.CloudinaryConfig, log *logger.Logger) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &Uploader{cld: cld, logger: log}, nil
}

// Upload sends the file at localPath to Cloudinary. The resource type is left
// to the store to infer from the content. The SDK reports API-level failures
// through the result's Error field with a nil error, so both paths are
// folded into UploadError.
func (u *Uploader) Upload(ctx context.Context, localPath, folder, publicID, displayName string) (*domain.AssetReference, error) {
	resp, err := u.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		PublicID:     publicID,
		AssetFolder:  folder,
		DisplayName:  displayName,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, &UploadError{PublicID: publicID, Err: err}
	}
	if resp.Error.Message != "" {
		return nil, &UploadError{PublicID: publicID, Message: resp.Error.Message}
	}

	ref := &domain.AssetReference{
		URL:          resp.SecureURL,
		AssetID:      resp.AssetID,
		ResourceType: resp.ResourceType,
	}
	u.logger.Infow("file uploaded to cloudinary",
		"public_id", publicID,
		"url", ref.URL,
		"resource_type", ref.ResourceType)
	return ref, nil
}
