package service

import (
	"context"

	"judol_backend/internal/broker"
	"judol_backend/internal/model"
)

// SettingsService - управление глобальным оверрайдом исхода
type SettingsService interface {
	// Get возвращает текущие настройки. Ошибки хранилища гасятся:
	// при недоступности возвращается RNG по умолчанию
	Get(ctx context.Context) model.GameSettings
	// Update устанавливает оверрайд (идемпотентная перезапись),
	// сохраняет и публикует событие изменения
	Update(ctx context.Context, override model.OutcomeOverride) (model.GameSettings, error)
	// ConsumeAndReset потребляет взведенный оверрайд и сбрасывает его в RNG.
	// При ошибке записи возвращает локально известное значение armed:
	// своя сессия считает оверрайд потребленным, общий сброс best effort
	ConsumeAndReset(ctx context.Context, armed model.OutcomeOverride) model.OutcomeOverride
	// Subscribe открывает подписку на события изменения настроек
	Subscribe(ctx context.Context) (broker.Subscription, error)
}

// GameService - оркестрация игровых сессий и спинов
type GameService interface {
	CreateSession(ctx context.Context) (*model.GameSession, error)
	Spin(ctx context.Context, spin model.Spin) (*model.SpinResult, error)
	SessionState(ctx context.Context, sessionID string) (*model.GameSession, error)
	ResetSession(ctx context.Context, sessionID string) (*model.GameSession, error)
}
