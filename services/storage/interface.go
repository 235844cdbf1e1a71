package storage

import (
	"context"
	"io"
)

// UploadResult is where an uploaded image can be fetched from.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// StorageService stores images used by the site content.
type StorageService interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (*UploadResult, error)
	DeleteImage(ctx context.Context, publicID string) error
}
