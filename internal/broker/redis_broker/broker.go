package redis_broker

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"judol_backend/internal/broker"
	"judol_backend/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	// Канал игровых событий (как в исходной системе)
	eventsChannel = "game:events"

	subscriberBuffer = 16
)

// Broker - брокер событий поверх Redis pub/sub.
// Позволяет нескольким процессам видеть одни и те же изменения настроек
type Broker struct {
	client *redis.Client
}

func NewBroker(client *redis.Client) *Broker {
	return &Broker{
		client: client,
	}
}

// Publish сериализует событие в JSON и публикует в общий канал
func (b *Broker) Publish(ctx context.Context, event model.GameEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return b.client.Publish(ctx, eventsChannel, payload).Err()
}

// Subscribe открывает выделенную pub/sub подписку.
// Битые сообщения пропускаются, не обрывая подписку
func (b *Broker) Subscribe(ctx context.Context) (broker.Subscription, error) {
	pubsub := b.client.Subscribe(ctx, eventsChannel)

	// Дожидаемся подтверждения подписки, иначе можно потерять первые события
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	events := make(chan model.GameEvent, subscriberBuffer)
	sub := &subscription{
		pubsub: pubsub,
		events: events,
	}

	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var event model.GameEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("redis broker: malformed event dropped: %v", err)
				continue
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub, nil
}

type subscription struct {
	pubsub *redis.PubSub
	events chan model.GameEvent
	once   sync.Once
}

func (s *subscription) Events() <-chan model.GameEvent {
	return s.events
}

func (s *subscription) Close() {
	s.once.Do(func() {
		// Закрытие pubsub закрывает его канал, и пересылающая горутина завершается
		if err := s.pubsub.Close(); err != nil {
			log.Printf("redis broker: close subscription: %v", err)
		}
	})
}
