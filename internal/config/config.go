package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// PayoutEntry - одна строка таблицы выплат: комбинация из 1-3 символов и множитель
type PayoutEntry struct {
	Symbols    []string
	Multiplier int
}

type GameConfig interface {
	Symbols() []string
	SymbolWeights() map[string]int
	PayoutEntries() []PayoutEntry
	LosingCombos() [][3]string
	InitialBalance() int
	DefaultBet() int
	MinBet() int
	SpinDelay() time.Duration
	LuckBoostSpins() int
	LuckBoostWinChance() float64
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type RedisConfig interface {
	Addr() string
	Password() string
	DB() int
}

// SettingsBackendConfig определяет бэкенд хранилища настроек: redis, postgres или memory
type SettingsBackendConfig interface {
	Backend() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

type AdminConfig interface {
	PasswordHash() []byte
}
