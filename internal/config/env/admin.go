package env

import (
	"errors"
	"os"

	"judol_backend/internal/config"
)

const (
	adminPasswordHashName = "ADMIN_PASSWORD_HASH"
)

type adminConfig struct {
	passwordHash string
}

// NewAdminConfig читает bcrypt-хеш пароля оператора
func NewAdminConfig() (config.AdminConfig, error) {
	hash := os.Getenv(adminPasswordHashName)
	if len(hash) == 0 {
		return nil, errors.New("admin password hash not found")
	}

	return &adminConfig{
		passwordHash: hash,
	}, nil
}

func (cfg *adminConfig) PasswordHash() []byte {
	return []byte(cfg.passwordHash)
}
