package env

import (
	"errors"
	"os"
	"strconv"

	"judol_backend/internal/config"
)

const (
	redisAddrName     = "REDIS_ADDR"
	redisPasswordName = "REDIS_PASSWORD"
	redisDBName       = "REDIS_DB"
)

type redisConfig struct {
	addr     string
	password string
	db       int
}

func NewRedisConfig() (config.RedisConfig, error) {
	addr := os.Getenv(redisAddrName)
	if len(addr) == 0 {
		return nil, errors.New("redis address not found")
	}

	// Пароль и номер базы опциональны
	password := os.Getenv(redisPasswordName)

	db := 0
	if raw := os.Getenv(redisDBName); len(raw) > 0 {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("invalid redis db number")
		}
		db = parsed
	}

	return &redisConfig{
		addr:     addr,
		password: password,
		db:       db,
	}, nil
}

func (cfg *redisConfig) Addr() string {
	return cfg.addr
}

func (cfg *redisConfig) Password() string {
	return cfg.password
}

func (cfg *redisConfig) DB() int {
	return cfg.db
}
