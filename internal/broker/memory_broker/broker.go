package memory_broker

import (
	"context"
	"sync"

	"judol_backend/internal/broker"
	"judol_backend/internal/model"
)

const subscriberBuffer = 16

// Broker - внутрипроцессный брокер событий.
// Используется с бэкендами настроек без собственного pub/sub
type Broker struct {
	mtx    sync.RWMutex
	nextID int
	subs   map[int]chan model.GameEvent
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[int]chan model.GameEvent),
	}
}

// Publish рассылает событие всем подписчикам.
// Отправка неблокирующая: медленный подписчик теряет событие,
// но не задерживает остальных
func (b *Broker) Publish(_ context.Context, event model.GameEvent) error {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe регистрирует нового подписчика.
// Подписка снимается через Close или отмену контекста
func (b *Broker) Subscribe(ctx context.Context) (broker.Subscription, error) {
	b.mtx.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan model.GameEvent, subscriberBuffer)
	b.subs[id] = ch
	b.mtx.Unlock()

	sub := &subscription{
		broker: b,
		id:     id,
		events: ch,
	}

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub, nil
}

func (b *Broker) remove(id int) (chan model.GameEvent, bool) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	ch, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
	}
	return ch, ok
}

type subscription struct {
	broker *Broker
	id     int
	events chan model.GameEvent
	once   sync.Once
}

func (s *subscription) Events() <-chan model.GameEvent {
	return s.events
}

func (s *subscription) Close() {
	s.once.Do(func() {
		if ch, ok := s.broker.remove(s.id); ok {
			close(ch)
		}
	})
}
