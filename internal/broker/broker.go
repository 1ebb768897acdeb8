package broker

import (
	"context"

	"judol_backend/internal/model"
)

// Subscription - одна подписка на игровые события.
// Канал Events закрывается при обрыве источника или после Close
type Subscription interface {
	Events() <-chan model.GameEvent
	Close()
}

// EventBroker - широковещательный канал изменений настроек игры.
// Каждое успешное изменение публикуется всем активным подписчикам
type EventBroker interface {
	Publish(ctx context.Context, event model.GameEvent) error
	Subscribe(ctx context.Context) (Subscription, error)
}
