package content

import (
	contentRepo "clinicdesk/database/repository/content"
	"clinicdesk/models"

	"go.uber.org/zap"
)

// ContentService groups the admin-owned site content.
type ContentService struct {
	Services     *Collection[models.Service]
	Testimonials *Collection[models.Testimonial]
	BlogPosts    *Collection[models.BlogPost]
	Settings     *SettingsService
}

// Repositories is the storage behind ContentService.
type Repositories struct {
	Services     contentRepo.ContentRepository[models.Service]
	Testimonials contentRepo.ContentRepository[models.Testimonial]
	BlogPosts    contentRepo.ContentRepository[models.BlogPost]
	Settings     contentRepo.SettingsRepository
}

// NewContentService wires the collections. cache may be nil.
func NewContentService(repos Repositories, cache Cache, logger *zap.Logger) *ContentService {
	return &ContentService{
		Services:     NewCollection("services", repos.Services),
		Testimonials: NewCollection("testimonials", repos.Testimonials),
		BlogPosts:    NewCollection("blog posts", repos.BlogPosts),
		Settings:     NewSettingsService(repos.Settings, cache, logger),
	}
}
