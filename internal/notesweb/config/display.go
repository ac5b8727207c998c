package config

import (
	"fmt"
	"time"
	// Встроенная база часовых поясов для контейнеров без zoneinfo.
	_ "time/tzdata"
)

// DisplayConfig управляет отображением дат в карточках заметок.
type DisplayConfig struct {
	Timezone string `yaml:"timezone" env:"NOTESWEB_TIMEZONE" env-default:"Asia/Jakarta"`
}

// Location возвращает часовой пояс для форматирования дат.
func (c *DisplayConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", c.Timezone, err)
	}
	return loc, nil
}
