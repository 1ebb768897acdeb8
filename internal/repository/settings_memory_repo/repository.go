package settings_memory_repo

import (
	"context"
	"sync"
	"time"

	"judol_backend/internal/model"
	"judol_backend/internal/repository"
)

// Реализация хранилища настроек в памяти процесса.
// Используется как запасной бэкенд и как дублер в тестах
type repo struct {
	mtx      sync.RWMutex
	settings model.GameSettings
}

func NewSettingsRepository() repository.SettingsRepository {
	return &repo{
		settings: model.DefaultGameSettings(),
	}
}

func (r *repo) Get(_ context.Context) (model.GameSettings, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.settings, nil
}

func (r *repo) Set(_ context.Context, settings model.GameSettings) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.settings = settings
	return nil
}

func (r *repo) Init(_ context.Context) error {
	return nil
}

// ConsumeAndReset выполняется под общим мьютексом, поэтому в пределах
// одного процесса потребление строго однократное
func (r *repo) ConsumeAndReset(_ context.Context) (model.OutcomeOverride, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	consumed := r.settings.OutcomeOverride
	if consumed == model.OverrideRNG {
		return model.OverrideRNG, nil
	}

	r.settings = model.GameSettings{
		OutcomeOverride: model.OverrideRNG,
		UpdatedAt:       time.Now().UnixMilli(),
	}

	return consumed, nil
}
