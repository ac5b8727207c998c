package app

import (
	"context"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// LoaderText - текст индикатора загрузки.
const LoaderText = "Memuat catatan..."

// Indicator отображает, что сетевая операция выполняется.
type Indicator interface {
	Show(ctx context.Context)
	Hide(ctx context.Context)
}

// Loader - общий индикатор загрузки. Пересекающиеся операции не считаются:
// флаг отражает последнее переключение.
type Loader struct {
	visible atomic.Bool
	gauge   prometheus.Gauge
}

var _ Indicator = (*Loader)(nil)

// NewLoader создает скрытый индикатор. gauge может быть nil.
func NewLoader(gauge prometheus.Gauge) *Loader {
	return &Loader{gauge: gauge}
}

// Show делает индикатор видимым.
func (l *Loader) Show(context.Context) {
	l.set(true)
}

// Hide скрывает индикатор.
func (l *Loader) Hide(context.Context) {
	l.set(false)
}

// Visible сообщает, виден ли индикатор.
func (l *Loader) Visible() bool {
	return l.visible.Load()
}

func (l *Loader) set(v bool) {
	l.visible.Store(v)
	if l.gauge == nil {
		return
	}
	if v {
		l.gauge.Set(1)
	} else {
		l.gauge.Set(0)
	}
}
