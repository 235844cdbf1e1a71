package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	contentRepo "clinicdesk/database/repository/content"
	"clinicdesk/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	SettingsCacheKey = "settings:site"
	SettingsCacheTTL = 10 * time.Minute
)

// Cache is the part of the Redis client the settings service uses.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SettingsService reads the site settings through the Redis cache and
// serves built-in defaults for anything not stored.
type SettingsService struct {
	repo   contentRepo.SettingsRepository
	cache  Cache
	logger *zap.Logger
}

// NewSettingsService builds the service. cache may be nil.
func NewSettingsService(repo contentRepo.SettingsRepository, cache Cache, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, cache: cache, logger: logger}
}

func (s *SettingsService) Get(ctx context.Context) (models.SiteSettings, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	defaults := models.DefaultSiteSettings()
	stored, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, contentRepo.ErrNotFound) {
			return models.SiteSettings{}, fmt.Errorf("GetSettings: %w", err)
		}
		stored = &models.SiteSettings{}
	}
	merged := stored.MergeOver(defaults)
	s.toCache(ctx, merged)
	return merged, nil
}

// Save stores settings as given and returns them merged over the defaults.
func (s *SettingsService) Save(ctx context.Context, settings models.SiteSettings) (models.SiteSettings, error) {
	if err := s.repo.Save(ctx, settings); err != nil {
		return models.SiteSettings{}, fmt.Errorf("SaveSettings: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, SettingsCacheKey).Err(); err != nil {
			s.logger.Warn("failed to invalidate settings cache", zap.Error(err))
		}
	}
	return settings.MergeOver(models.DefaultSiteSettings()), nil
}

func (s *SettingsService) fromCache(ctx context.Context) (models.SiteSettings, bool) {
	if s.cache == nil {
		return models.SiteSettings{}, false
	}
	raw, err := s.cache.Get(ctx, SettingsCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("settings cache read failed", zap.Error(err))
		}
		return models.SiteSettings{}, false
	}
	var settings models.SiteSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.logger.Warn("settings cache entry is corrupt", zap.Error(err))
		return models.SiteSettings{}, false
	}
	return settings, true
}

func (s *SettingsService) toCache(ctx context.Context, settings models.SiteSettings) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, SettingsCacheKey, data, SettingsCacheTTL).Err(); err != nil {
		s.logger.Warn("settings cache write failed", zap.Error(err))
	}
}
