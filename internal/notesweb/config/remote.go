package config

import "time"

// RemoteConfig описывает подключение к удаленному сервису заметок.
type RemoteConfig struct {
	BaseURL string `yaml:"base_url" env:"NOTESWEB_REMOTE_BASE_URL" env-default:"https://notes-api.dicoding.dev/v2"`
	// Timeout 0 означает отсутствие таймаута.
	Timeout time.Duration `yaml:"timeout" env:"NOTESWEB_REMOTE_TIMEOUT" env-default:"0s"`
	Breaker BreakerConfig `yaml:"breaker"`
}

// BreakerConfig содержит настройки circuit breaker для удаленного сервиса.
// По умолчанию выключен: каждое действие пользователя доходит до сервиса.
type BreakerConfig struct {
	Enabled          bool          `yaml:"enabled" env:"NOTESWEB_BREAKER_ENABLED" env-default:"false"`
	MaxRequests      uint32        `yaml:"max_requests" env:"NOTESWEB_BREAKER_MAX_REQUESTS" env-default:"1"`
	Interval         time.Duration `yaml:"interval" env:"NOTESWEB_BREAKER_INTERVAL" env-default:"60s"`
	OpenTimeout      time.Duration `yaml:"open_timeout" env:"NOTESWEB_BREAKER_OPEN_TIMEOUT" env-default:"10s"`
	ConsecutiveFails uint32        `yaml:"consecutive_failures" env:"NOTESWEB_BREAKER_CONSECUTIVE_FAILURES" env-default:"5"`
}
