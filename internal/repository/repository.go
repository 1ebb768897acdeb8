package repository

import (
	"context"

	"judol_backend/internal/model"
)

// SettingsRepository - хранилище единственной живой записи настроек игры
type SettingsRepository interface {
	// Get возвращает текущие настройки. Если записи нет - настройки по умолчанию
	Get(ctx context.Context) (model.GameSettings, error)
	// Set перезаписывает запись настроек (идемпотентный upsert)
	Set(ctx context.Context, settings model.GameSettings) error
	// Init создает запись по умолчанию, если её ещё нет
	Init(ctx context.Context) error
	// ConsumeAndReset сбрасывает взведенный оверрайд в RNG и возвращает
	// потребленное значение. Если оверрайд не взведен - возвращает RNG
	ConsumeAndReset(ctx context.Context) (model.OutcomeOverride, error)
}
