package widgets

import (
	"context"
	"html/template"
	"sync"

	"go.uber.org/zap"

	"notesweb/internal/notesweb/domain/entities"
	"notesweb/internal/notesweb/events"
	"notesweb/pkg/logger"
)

// LogListRenderFailed пишется, если список не удалось перерисовать.
const LogListRenderFailed = "failed to re-render note list"

// NotesSource - источник уведомлений "notes changed". Реализуется app.Store.
type NotesSource interface {
	Notes() []entities.Note
	Subscribe(fn events.Handler[[]entities.Note]) (unsubscribe func())
}

// ListView держит последний отрендеренный список и целиком перерисовывает его
// при каждом уведомлении. Рендерится текущее содержимое source, а не снимок из
// уведомления.
type ListView struct {
	renderer *Renderer
	source   NotesSource

	mu      sync.RWMutex
	html    template.HTML
	renders int
}

// NewListView рендерит начальное состояние из source и подписывается на изменения.
func NewListView(r *Renderer, source NotesSource) (*ListView, func(), error) {
	v := &ListView{renderer: r, source: source}
	if err := v.render(); err != nil {
		return nil, nil, err
	}

	unsubscribe := source.Subscribe(func(ctx context.Context, _ []entities.Note) {
		if err := v.render(); err != nil {
			logger.Log(ctx).Error(ctx, LogListRenderFailed, zap.Error(err))
		}
	})
	return v, unsubscribe, nil
}

// HTML возвращает последний фрагмент списка.
func (v *ListView) HTML() template.HTML {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.html
}

// Renders возвращает число выполненных рендеров.
func (v *ListView) Renders() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.renders
}

// render читает source и сохраняет результат под одной блокировкой, поэтому
// последний рендер всегда видит последнюю замену списка.
func (v *ListView) render() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	html, err := v.renderer.NoteList(v.source.Notes())
	if err != nil {
		return err
	}
	v.html = html
	v.renders++
	return nil
}
