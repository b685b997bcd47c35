package memory

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetocure/admin-api/internal/model"
)

type settingsRepository struct {
	s *Store
}

func (r *settingsRepository) FindOrCreate(ctx context.Context, defaults model.GeneralSettings) (*model.Settings, error) {
	r.s.uniq.Lock()
	defer r.s.uniq.Unlock()
	if existing := r.s.settings.find(nil); len(existing) > 0 {
		return existing[0], nil
	}
	settings := &model.Settings{ID: primitive.NewObjectID(), Key: model.SettingsKey, General: defaults}
	settings.Touch(r.s.now())
	r.s.settings.insert(settings.ID, settings)
	return cloneSettings(settings), nil
}

func (r *settingsRepository) UpdateGeneral(ctx context.Context, id primitive.ObjectID, general model.GeneralSettings) (*model.Settings, error) {
	return r.s.settings.update(id, func(s *model.Settings) *model.Settings {
		s.General = general
		s.UpdatedAt = r.s.now()
		return s
	})
}
