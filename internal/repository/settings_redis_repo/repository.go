package settings_redis_repo

import (
	"context"
	"strconv"
	"time"

	"judol_backend/internal/model"
	"judol_backend/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	// Ключ хеша с настройками игры (как в исходной системе)
	settingsKey = "game:settings"

	fieldOverride  = "outcomeOverride"
	fieldUpdatedAt = "updatedAt"
)

type repo struct {
	client *redis.Client
}

func NewSettingsRepository(client *redis.Client) repository.SettingsRepository {
	return &repo{
		client: client,
	}
}

// Get - получение текущих настроек игры из хеша.
// Возвращает настройки по умолчанию, если хеш пуст или поля отсутствуют
func (r *repo) Get(ctx context.Context) (model.GameSettings, error) {
	fields, err := r.client.HGetAll(ctx, settingsKey).Result()
	if err != nil {
		return model.DefaultGameSettings(), err
	}

	settings := model.DefaultGameSettings()

	if override, ok := fields[fieldOverride]; ok {
		parsed := model.OutcomeOverride(override)
		if parsed.Valid() {
			settings.OutcomeOverride = parsed
		}
	}
	if raw, ok := fields[fieldUpdatedAt]; ok {
		if ts, err := strconv.ParseInt(raw, 10, 64); err == nil {
			settings.UpdatedAt = ts
		}
	}

	return settings, nil
}

// Set - перезапись настроек игры в хеше
func (r *repo) Set(ctx context.Context, settings model.GameSettings) error {
	return r.client.HSet(ctx, settingsKey, map[string]interface{}{
		fieldOverride:  string(settings.OutcomeOverride),
		fieldUpdatedAt: strconv.FormatInt(settings.UpdatedAt, 10),
	}).Err()
}

// Init - создание записи по умолчанию, если ключа ещё нет
func (r *repo) Init(ctx context.Context) error {
	exists, err := r.client.Exists(ctx, settingsKey).Result()
	if err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	return r.Set(ctx, model.DefaultGameSettings())
}

// ConsumeAndReset - потребление взведенного оверрайда.
// Последовательность get -> set намеренно не атомарна: это три независимых
// обращения без compare-and-swap, две гоняющиеся сессии могут потребить один
// оверрайд (поведение исходной системы, best effort)
func (r *repo) ConsumeAndReset(ctx context.Context) (model.OutcomeOverride, error) {
	settings, err := r.Get(ctx)
	if err != nil {
		return model.OverrideRNG, err
	}

	consumed := settings.OutcomeOverride
	if consumed == model.OverrideRNG {
		return model.OverrideRNG, nil
	}

	err = r.Set(ctx, model.GameSettings{
		OutcomeOverride: model.OverrideRNG,
		UpdatedAt:       time.Now().UnixMilli(),
	})
	if err != nil {
		return model.OverrideRNG, err
	}

	return consumed, nil
}
