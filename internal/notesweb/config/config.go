// Package config содержит конфигурацию веб-клиента заметок.
package config

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	pkgconfig "notesweb/pkg/config"
	"notesweb/pkg/logger"
)

// ServiceName используется в логах загрузки конфигурации.
const ServiceName = "notesweb"

// Config представляет полную конфигурацию notesweb.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Remote   RemoteConfig   `yaml:"remote"`
	Display  DisplayConfig  `yaml:"display"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию. path может быть пустым.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, path)
	if err != nil {
		return nil, err
	}

	if _, err := cfg.Display.Location(); err != nil {
		return nil, fmt.Errorf("display timezone: %w", err)
	}

	logger.Log(ctx).Info(ctx, "notesweb configuration",
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("remote_base_url", cfg.Remote.BaseURL),
		zap.Duration("remote_timeout", cfg.Remote.Timeout),
		zap.String("timezone", cfg.Display.Timezone),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode))

	return cfg, nil
}

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"NOTESWEB_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"NOTESWEB_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"NOTESWEB_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"NOTESWEB_HTTP_WRITE_TIMEOUT" env-default:"30s"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ShutdownConfig представляет конфигурацию корректного завершения работы.
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"NOTESWEB_SHUTDOWN_TIMEOUT" env-default:"5s"`
}
