package env

import (
	"errors"
	"os"

	"judol_backend/internal/config"
)

const (
	httpAddrName = "HTTP_ADDR"
)

type httpConfig struct {
	addr string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	addr := os.Getenv(httpAddrName)
	if len(addr) == 0 {
		return nil, errors.New("http address not found")
	}

	return &httpConfig{
		addr: addr,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.addr
}
