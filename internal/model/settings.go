package model

import "time"

// OutcomeOverride - принудительный исход следующего спина
type OutcomeOverride string

const (
	// OverrideRNG - обычная взвешенная генерация (состояние по умолчанию)
	OverrideRNG OutcomeOverride = "RNG"
	// OverrideWIN - следующий спин гарантированно выигрышный
	OverrideWIN OutcomeOverride = "WIN"
	// OverrideLOSS - следующий спин гарантированно проигрышный
	OverrideLOSS OutcomeOverride = "LOSS"
)

// Valid проверяет принадлежность значения к множеству {RNG, WIN, LOSS}
func (o OutcomeOverride) Valid() bool {
	switch o {
	case OverrideRNG, OverrideWIN, OverrideLOSS:
		return true
	}
	return false
}

// GameSettings - глобальное разделяемое состояние оверрайда.
// В любой момент существует ровно одна живая запись, видимая всем сессиям
type GameSettings struct {
	OutcomeOverride OutcomeOverride
	UpdatedAt       int64 // unix-миллисекунды
}

// DefaultGameSettings возвращает настройки по умолчанию (RNG, текущее время)
func DefaultGameSettings() GameSettings {
	return GameSettings{
		OutcomeOverride: OverrideRNG,
		UpdatedAt:       time.Now().UnixMilli(),
	}
}
