package model

import "time"

// EventType - тип широковещательного события
type EventType string

const (
	EventConnected       EventType = "connected"
	EventSettingsChanged EventType = "settings_changed"
	EventHeartbeat       EventType = "heartbeat"
	EventError           EventType = "error"
)

// GameEvent - событие игрового канала.
// Закрытое объединение: набор полей зависит от Type
type GameEvent struct {
	Type            EventType       `json:"type"`
	OutcomeOverride OutcomeOverride `json:"outcomeOverride,omitempty"`
	UpdatedAt       int64           `json:"updatedAt,omitempty"`
	Message         string          `json:"message,omitempty"`
	Timestamp       int64           `json:"timestamp"`
}

// NewConnectedEvent - событие установки соединения
func NewConnectedEvent() GameEvent {
	return GameEvent{
		Type:      EventConnected,
		Message:   "SSE connection established",
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewSettingsChangedEvent - событие изменения настроек игры
func NewSettingsChangedEvent(settings GameSettings) GameEvent {
	return GameEvent{
		Type:            EventSettingsChanged,
		OutcomeOverride: settings.OutcomeOverride,
		UpdatedAt:       settings.UpdatedAt,
		Timestamp:       time.Now().UnixMilli(),
	}
}

// NewHeartbeatEvent - периодическое событие для контроля живости соединения
func NewHeartbeatEvent() GameEvent {
	return GameEvent{
		Type:      EventHeartbeat,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewErrorEvent - событие ошибки канала
func NewErrorEvent(message string) GameEvent {
	return GameEvent{
		Type:      EventError,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}
