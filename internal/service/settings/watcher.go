package settings

import (
	"context"
	"log"
	"sync"
	"time"

	"judol_backend/internal/model"
	"judol_backend/internal/service"
)

// Состояния подписки
type WatchState string

const (
	StateConnecting WatchState = "connecting"
	StateOpen       WatchState = "open"
	StateClosed     WatchState = "closed"
)

// Задержка перед переподключением после обрыва потока
const defaultReconnectDelay = 3 * time.Second

// Watcher держит локальный кеш настроек игры, подписываясь на брокер.
// На каждом (пере)подключении кеш ресинхронизируется свежим чтением из
// хранилища, поэтому любое число переподключений не нарушает корректность.
// Если подписка вообще не открывается, остается одноразовое чтение -
// реальное время теряется, следующий спин все равно видит валидное значение
type Watcher struct {
	serv service.SettingsService

	// Пауза между попытками переподключения; в тестах укорачивается
	reconnectDelay time.Duration

	mtx     sync.RWMutex
	current model.GameSettings
	state   WatchState

	cancel context.CancelFunc
	done   chan struct{}
}

func NewWatcher(serv service.SettingsService) *Watcher {
	return &Watcher{
		serv:           serv,
		reconnectDelay: defaultReconnectDelay,
		current:        model.DefaultGameSettings(),
		state:          StateConnecting,
		done:           make(chan struct{}),
	}
}

// Start запускает цикл подписки. Останавливается через Close
// или отмену родительского контекста
func (w *Watcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	go w.run(ctx)
}

// Current - снимок локально известных настроек
func (w *Watcher) Current() model.GameSettings {
	w.mtx.RLock()
	defer w.mtx.RUnlock()
	return w.current
}

// State - текущее состояние подписки
func (w *Watcher) State() WatchState {
	w.mtx.RLock()
	defer w.mtx.RUnlock()
	return w.state
}

// SetLocal обновляет кеш немедленно, не дожидаясь события от брокера.
// Вызывается сессией сразу после потребления оверрайда
func (w *Watcher) SetLocal(settings model.GameSettings) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.current = settings
}

// Close останавливает цикл и ждет его завершения.
// Таймер переподключения при этом отменяется, висящих горутин не остается
func (w *Watcher) Close() {
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer w.setState(StateClosed)

	for {
		// Ресинхронизация: свежее значение из хранилища закрывает щель
		// между подключением и первым событием
		w.SetLocal(w.serv.Get(ctx))

		sub, err := w.serv.Subscribe(ctx)
		if err != nil {
			log.Printf("settings watcher: subscribe failed, retrying in %s: %v", w.reconnectDelay, err)
			if !w.sleep(ctx, w.reconnectDelay) {
				return
			}
			continue
		}

		w.setState(StateOpen)

		for event := range sub.Events() {
			if event.Type != model.EventSettingsChanged {
				continue
			}
			if !event.OutcomeOverride.Valid() {
				log.Printf("settings watcher: dropped event with invalid override %q", event.OutcomeOverride)
				continue
			}
			w.SetLocal(model.GameSettings{
				OutcomeOverride: event.OutcomeOverride,
				UpdatedAt:       event.UpdatedAt,
			})
		}

		sub.Close()

		select {
		case <-ctx.Done():
			return
		default:
		}

		// Поток оборвался: переподключаемся с фиксированной задержкой
		w.setState(StateConnecting)
		log.Printf("settings watcher: stream closed, reconnecting in %s", w.reconnectDelay)
		if !w.sleep(ctx, w.reconnectDelay) {
			return
		}
	}
}

func (w *Watcher) setState(state WatchState) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.state = state
}

// sleep ждет d или отмену контекста. Возвращает false при отмене
func (w *Watcher) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
