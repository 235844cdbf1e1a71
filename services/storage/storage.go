package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrInvalidFolder = errors.New("invalid upload folder")

// AllowedFolders are the content areas images can be uploaded for.
var AllowedFolders = map[string]bool{
	"services":     true,
	"testimonials": true,
	"blog":         true,
	"site":         true,
}

// uploadAPI is the part of the Cloudinary upload API the service uses.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	upload     uploadAPI
	rootFolder string
}

// NewCloudinaryStorageService uploads under rootFolder/<folder>.
func NewCloudinaryStorageService(cld *cloudinary.Cloudinary, rootFolder string) *CloudinaryStorageService {
	return &CloudinaryStorageService{upload: &cld.Upload, rootFolder: rootFolder}
}

func (s *CloudinaryStorageService) UploadImage(ctx context.Context, file io.Reader, folder string) (*UploadResult, error) {
	if !AllowedFolders[folder] {
		return nil, fmt.Errorf("UploadImage: %w: %q", ErrInvalidFolder, folder)
	}
	overwrite := false
	result, err := s.upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       path.Join(s.rootFolder, folder),
		ResourceType: "image",
		Overwrite:    &overwrite,
	})
	if err != nil {
		return nil, fmt.Errorf("UploadImage: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("UploadImage: cloudinary: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("UploadImage: no public ID returned")
	}
	return &UploadResult{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

func (s *CloudinaryStorageService) DeleteImage(ctx context.Context, publicID string) error {
	result, err := s.upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("DeleteImage: failed to delete file: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("DeleteImage: cloudinary: %s", result.Error.Message)
	}
	return nil
}
