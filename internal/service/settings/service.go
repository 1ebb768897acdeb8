package settings

import (
	"context"
	"errors"
	"log"
	"time"

	"judol_backend/internal/broker"
	"judol_backend/internal/model"
	"judol_backend/internal/repository"
	"judol_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	repo      repository.SettingsRepository
	broker    broker.EventBroker
	txManager trm.Manager
}

// NewSettingsService создает сервис настроек игры.
// txManager нужен только бэкенду Postgres для атомарного потребления
// оверрайда; для остальных бэкендов передается nil
func NewSettingsService(
	repo repository.SettingsRepository,
	eventBroker broker.EventBroker,
	txManager trm.Manager,
) service.SettingsService {
	return &serv{
		repo:      repo,
		broker:    eventBroker,
		txManager: txManager,
	}
}

// Get - текущие настройки игры.
// Ошибка хранилища гасится: логируем и отдаем RNG по умолчанию
func (s *serv) Get(ctx context.Context) model.GameSettings {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		log.Printf("settings: get failed, falling back to defaults: %v", err)
		return model.DefaultGameSettings()
	}
	return settings
}

// Update - установка оверрайда оператором.
// Перезапись идемпотентна: установка текущего значения все равно
// сохраняется и публикуется
func (s *serv) Update(ctx context.Context, override model.OutcomeOverride) (model.GameSettings, error) {
	if !override.Valid() {
		return model.GameSettings{}, errors.New("invalid outcome override value")
	}

	newSettings := model.GameSettings{
		OutcomeOverride: override,
		UpdatedAt:       time.Now().UnixMilli(),
	}

	if err := s.repo.Set(ctx, newSettings); err != nil {
		return model.GameSettings{}, err
	}

	s.publishChanged(ctx, newSettings)

	return newSettings, nil
}

// ConsumeAndReset - однократное потребление взведенного оверрайда.
// Для Postgres потребление выполняется в транзакции (строго один
// потребитель), для остальных бэкендов - best effort как в исходной
// системе. Ошибка сброса гасится: своя сессия считает оверрайд
// потребленным, общее состояние может остаться взведенным
func (s *serv) ConsumeAndReset(ctx context.Context, armed model.OutcomeOverride) model.OutcomeOverride {
	var consumed model.OutcomeOverride

	consume := func(txCtx context.Context) error {
		c, err := s.repo.ConsumeAndReset(txCtx)
		if err != nil {
			return err
		}
		consumed = c
		return nil
	}

	var err error
	if s.txManager != nil {
		err = s.txManager.Do(ctx, consume)
	} else {
		err = consume(ctx)
	}

	if err != nil {
		log.Printf("settings: consume-and-reset failed, treating %s as consumed locally: %v", armed, err)
		return armed
	}

	if consumed != model.OverrideRNG {
		s.publishChanged(ctx, model.GameSettings{
			OutcomeOverride: model.OverrideRNG,
			UpdatedAt:       time.Now().UnixMilli(),
		})
	}

	return consumed
}

func (s *serv) Subscribe(ctx context.Context) (broker.Subscription, error) {
	return s.broker.Subscribe(ctx)
}

// publishChanged публикует событие изменения настроек.
// Ошибка публикации гасится: подписчики ресинхронизируются при переподключении
func (s *serv) publishChanged(ctx context.Context, settings model.GameSettings) {
	event := model.NewSettingsChangedEvent(settings)
	if err := s.broker.Publish(ctx, event); err != nil {
		log.Printf("settings: publish %s failed: %v", event.Type, err)
	}
}
