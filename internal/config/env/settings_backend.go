package env

import (
	"fmt"
	"os"

	"judol_backend/internal/config"
)

const (
	settingsBackendName = "SETTINGS_BACKEND"

	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type settingsBackendConfig struct {
	backend string
}

// NewSettingsBackendConfig читает выбор бэкенда хранилища настроек.
// По умолчанию redis (как в исходной системе)
func NewSettingsBackendConfig() (config.SettingsBackendConfig, error) {
	backend := os.Getenv(settingsBackendName)
	if len(backend) == 0 {
		backend = BackendRedis
	}

	switch backend {
	case BackendRedis, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown settings backend: %s", backend)
	}

	return &settingsBackendConfig{
		backend: backend,
	}, nil
}

func (cfg *settingsBackendConfig) Backend() string {
	return cfg.backend
}
