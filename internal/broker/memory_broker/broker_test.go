package memory_broker

import (
	"context"
	"testing"
	"time"

	"judol_backend/internal/broker"
	"judol_backend/internal/model"
)

func receiveEvent(t *testing.T, sub broker.Subscription) model.GameEvent {
	t.Helper()
	select {
	case event, ok := <-sub.Events():
		if !ok {
			t.Fatal("subscription closed before event arrived")
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return model.GameEvent{}
}

// Событие расходится всем активным подписчикам
func TestPublishFanout(t *testing.T) {
	ctx := context.Background()
	b := NewBroker()

	first, err := b.Subscribe(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Close()

	second, err := b.Subscribe(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	event := model.NewSettingsChangedEvent(model.GameSettings{
		OutcomeOverride: model.OverrideWIN,
		UpdatedAt:       42,
	})
	if err := b.Publish(ctx, event); err != nil {
		t.Fatal(err)
	}

	for _, sub := range []broker.Subscription{first, second} {
		got := receiveEvent(t, sub)
		if got.OutcomeOverride != model.OverrideWIN || got.UpdatedAt != 42 {
			t.Fatalf("unexpected event: %+v", got)
		}
	}
}

// Закрытая подписка снимается с рассылки, канал закрывается
func TestCloseRemovesSubscriber(t *testing.T) {
	ctx := context.Background()
	b := NewBroker()

	sub, err := b.Subscribe(ctx)
	if err != nil {
		t.Fatal(err)
	}

	sub.Close()
	// Повторный Close безопасен
	sub.Close()

	if _, ok := <-sub.Events(); ok {
		t.Fatal("events channel not closed after Close")
	}

	if err := b.Publish(ctx, model.NewHeartbeatEvent()); err != nil {
		t.Fatal(err)
	}
}

// Медленный подписчик с полным буфером не блокирует публикацию
func TestPublishNonBlocking(t *testing.T) {
	ctx := context.Background()
	b := NewBroker()

	sub, err := b.Subscribe(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			if err := b.Publish(ctx, model.NewHeartbeatEvent()); err != nil {
				t.Errorf("publish %d: %v", i, err)
				return
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on full subscriber buffer")
	}
}

// Отмена контекста подписки эквивалентна Close
func TestContextCancelClosesSubscription(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewBroker()

	sub, err := b.Subscribe(ctx)
	if err != nil {
		t.Fatal(err)
	}

	cancel()

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Fatal("expected closed channel, got event")
		}
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after context cancel")
	}
}
