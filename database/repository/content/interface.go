package contentRepo

import (
	"context"
	"errors"
	"time"

	"clinicdesk/models"
)

// ErrNotFound is returned when a content record or the settings document is missing.
var ErrNotFound = errors.New("content not found")

// Entity is satisfied by pointers to the content models.
type Entity[T any] interface {
	*T
	SetID(id string)
	Stamp(now time.Time, created bool)
	Fields() map[string]any
}

// ContentRepository stores one kind of admin-owned content.
type ContentRepository[T any] interface {
	// List returns all records, newest first.
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item T) (string, error)
	// Update overwrites the editable fields; createdAt is preserved.
	Update(ctx context.Context, id string, item T) error
	Delete(ctx context.Context, id string) error
}

// SettingsRepository stores the single site settings document.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Save(ctx context.Context, settings models.SiteSettings) error
}

// Collection names shared by both backends.
const (
	ServicesCollection     = "services"
	TestimonialsCollection = "testimonials"
	BlogPostsCollection    = "blogPosts"
	settingsCollection     = "settings"
	settingsDocID          = "site"
)
