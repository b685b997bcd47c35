package settings

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/internal/service/event"
	apperrors "github.com/meetocure/admin-api/pkg/errors"
)

const (
	cacheKey  = "settings"
	msgFailed = "Error fetching settings"
	msgUpdate = "Error updating settings"
)

// Service serves the settings singleton through a read-through cache.
// Updates go to the store first and then drop the cached copy.
type Service struct {
	repo   repository.SettingsRepository
	events *event.Service
	cache  *cache.Cache
}

// NewService caches the singleton for ttl. A non-positive ttl disables caching.
func NewService(repo repository.SettingsRepository, events *event.Service, ttl time.Duration) *Service {
	s := &Service{repo: repo, events: events}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

func (s *Service) load(ctx context.Context) (*model.Settings, error) {
	if s.cache != nil {
		if cached, found := s.cache.Get(cacheKey); found {
			copied := *cached.(*model.Settings)
			return &copied, nil
		}
	}

	settings, err := s.repo.FindOrCreate(ctx, model.DefaultGeneralSettings())
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		copied := *settings
		s.cache.Set(cacheKey, &copied, cache.DefaultExpiration)
	}
	return settings, nil
}

// Get returns the settings, creating the defaults on first access
func (s *Service) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.load(ctx)
	if err != nil {
		return nil, apperrors.Internal(msgFailed, err)
	}
	return settings, nil
}

// UpdateGeneral merges patch into the general section and returns the result
func (s *Service) UpdateGeneral(ctx context.Context, patch model.GeneralSettingsPatch) (*model.GeneralSettings, error) {
	if err := patch.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	current, err := s.load(ctx)
	if err != nil {
		return nil, apperrors.Internal(msgUpdate, err)
	}
	updated, err := s.repo.UpdateGeneral(ctx, current.ID, patch.Apply(current.General))
	if s.cache != nil {
		s.cache.Delete(cacheKey)
	}
	if err != nil {
		return nil, apperrors.Internal(msgUpdate, err)
	}

	s.events.Emit(ctx, event.SettingsUpdated, updated.ID.Hex(), updated.General)
	return &updated.General, nil
}
