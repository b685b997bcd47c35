package settings

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/repository"
	"github.com/meetocure/admin-api/internal/repository/memory"
	apperrors "github.com/meetocure/admin-api/pkg/errors"
)

type countingRepo struct {
	repository.SettingsRepository
	loads atomic.Int32
}

func (r *countingRepo) FindOrCreate(ctx context.Context, defaults model.GeneralSettings) (*model.Settings, error) {
	r.loads.Add(1)
	return r.SettingsRepository.FindOrCreate(ctx, defaults)
}

func newRepo() *countingRepo {
	return &countingRepo{SettingsRepository: memory.New(nil).Repositories().Settings}
}

func TestGetCreatesDefaults(t *testing.T) {
	svc := NewService(newRepo(), nil, 0)

	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultGeneralSettings(), s.General)

	again, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
}

func TestCacheIsInvalidatedOnUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	svc := NewService(repo, nil, time.Minute)

	_, err := svc.Get(ctx)
	require.NoError(t, err)
	_, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), repo.loads.Load())

	hindi := model.LanguageHindi
	general, err := svc.UpdateGeneral(ctx, model.GeneralSettingsPatch{Language: &hindi})
	require.NoError(t, err)
	assert.Equal(t, model.LanguageHindi, general.Language)
	assert.True(t, general.NotificationsEnabled)

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.LanguageHindi, s.General.Language)
	assert.Equal(t, int32(2), repo.loads.Load())
}

func TestCachedCopyIsNotShared(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newRepo(), nil, time.Minute)

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	s.General.Language = "Klingon"

	again, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.LanguageEnglish, again.General.Language)
}

func TestUpdateGeneralValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newRepo(), nil, 0)

	french := "French"
	_, err := svc.UpdateGeneral(ctx, model.GeneralSettingsPatch{Language: &french})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())

	off := false
	general, err := svc.UpdateGeneral(ctx, model.GeneralSettingsPatch{NotificationsEnabled: &off})
	require.NoError(t, err)
	assert.Equal(t, model.GeneralSettings{Language: model.LanguageEnglish, NotificationsEnabled: false}, *general)
}
