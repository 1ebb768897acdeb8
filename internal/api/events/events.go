package events

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"judol_backend/internal/model"
	"judol_backend/internal/service"
)

// Интервал heartbeat: позволяет клиентам и прокси отличать мертвое
// соединение от просто тихого
const defaultHeartbeatInterval = 30 * time.Second

type HandlerDeps struct {
	SettingsServ service.SettingsService
}

type Handler struct {
	settingsServ service.SettingsService

	// Интервал heartbeat; в тестах укорачивается
	heartbeatInterval time.Duration
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		settingsServ:      deps.SettingsServ,
		heartbeatInterval: defaultHeartbeatInterval,
	}
}

// Stream - долгоживущий SSE-поток игровых событий.
// Сразу после подключения клиент получает connected и синтетическое
// settings_changed с текущим значением, дальше все опубликованные
// события пересылаются как есть
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sendEvent := func(event model.GameEvent) bool {
		payload, err := json.Marshal(event)
		if err != nil {
			log.Printf("events: marshal %s failed: %v", event.Type, err)
			return true
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	sendEvent(model.NewConnectedEvent())

	// Текущее значение закрывает щель между подключением
	// и следующим реальным изменением
	sendEvent(model.NewSettingsChangedEvent(h.settingsServ.Get(r.Context())))

	sub, err := h.settingsServ.Subscribe(r.Context())
	if err != nil {
		log.Printf("events: subscribe failed: %v", err)
		sendEvent(model.NewErrorEvent("Failed to establish real-time connection"))
		return
	}
	defer sub.Close()

	heartbeat := time.NewTicker(h.heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if !sendEvent(event) {
				return
			}
		case <-heartbeat.C:
			if !sendEvent(model.NewHeartbeatEvent()) {
				return
			}
		}
	}
}
