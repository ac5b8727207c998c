package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"notesweb/internal/notesweb/domain/entities"
	"notesweb/internal/notesweb/events"
	"notesweb/internal/notesweb/metrics"
	remotePort "notesweb/internal/notesweb/ports/remote"
	"notesweb/pkg/logger"
)

// Имена операций контроллера.
const (
	OpRefresh = "refresh"
	OpCreate  = "create"
	OpRemove  = "remove"
	OpArchive = "archive"
)

// Константы для логирования.
const (
	LogRefreshDone      = "notes refreshed"
	LogCreationIntent   = "creation intent received"
	ErrMsgRefreshFailed = "failed to fetch notes from remote service"
	ErrMsgCreateFailed  = "failed to add note"
	ErrMsgRemoveFailed  = "failed to delete note"
	ErrMsgArchiveFailed = "failed to archive note"
)

// SyncController выполняет запросы к удаленному сервису и обновляет Store.
// Операции ничего не возвращают: ошибка завершает пользовательское действие
// и только логируется.
type SyncController struct {
	api       remotePort.NotesAPI
	store     *Store
	indicator Indicator
	metrics   *metrics.Collector
}

// NewSyncController создает контроллер. collector может быть nil.
func NewSyncController(
	api remotePort.NotesAPI,
	store *Store,
	indicator Indicator,
	collector *metrics.Collector,
) *SyncController {
	return &SyncController{
		api:       api,
		store:     store,
		indicator: indicator,
		metrics:   collector,
	}
}

// Store возвращает хранилище, которым владеет контроллер.
func (c *SyncController) Store() *Store {
	return c.store
}

// Refresh заново получает список и заменяет содержимое Store.
// При ошибке Store не меняется.
func (c *SyncController) Refresh(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	c.indicator.Show(ctx)
	defer c.indicator.Hide(ctx)

	notes, err := c.api.List(ctx)
	if err != nil {
		c.fail(ctx, OpRefresh, "", ErrMsgRefreshFailed, err)
		return
	}

	active := entities.Active(notes)
	if c.metrics != nil {
		c.metrics.ActiveNotes.Set(float64(len(active)))
	}
	c.store.replace(ctx, active)

	logger.Log(ctx).Debug(ctx, LogRefreshDone, zap.Int("active_notes", len(active)))
}

// Create отправляет новую заметку и при успехе обновляет список.
// Пустые title и body должны отсекаться вызывающей стороной.
func (c *SyncController) Create(ctx context.Context, title, body string) {
	ctx = context.WithoutCancel(ctx)
	ok := c.mutate(ctx, OpCreate, "", ErrMsgCreateFailed, func() error {
		_, err := c.api.Create(ctx, title, body)
		return err
	})
	if ok {
		c.Refresh(ctx)
	}
}

// Remove удаляет заметку и при успехе обновляет список.
func (c *SyncController) Remove(ctx context.Context, id string) {
	ctx = context.WithoutCancel(ctx)
	ok := c.mutate(ctx, OpRemove, id, ErrMsgRemoveFailed, func() error {
		return c.api.Delete(ctx, id)
	})
	if ok {
		c.Refresh(ctx)
	}
}

// Archive архивирует заметку и при успехе обновляет список.
func (c *SyncController) Archive(ctx context.Context, id string) {
	ctx = context.WithoutCancel(ctx)
	ok := c.mutate(ctx, OpArchive, id, ErrMsgArchiveFailed, func() error {
		return c.api.Archive(ctx, id)
	})
	if ok {
		c.Refresh(ctx)
	}
}

// ListenCreationIntents передает title и body каждого намерения в Create.
// Сгенерированные формой id и дата отбрасываются.
func (c *SyncController) ListenCreationIntents(bus *events.CreationIntents) (unsubscribe func()) {
	return bus.Subscribe(func(ctx context.Context, intent events.CreationIntent) {
		logger.Log(ctx).Debug(ctx, LogCreationIntent, zap.String("draft_id", intent.ID))
		c.Create(ctx, intent.Title, intent.Body)
	})
}

// mutate выполняет call, показывая индикатор, и сообщает об успехе.
// Индикатор скрывается до последующего Refresh.
func (c *SyncController) mutate(ctx context.Context, op, id, msg string, call func() error) bool {
	c.indicator.Show(ctx)
	defer c.indicator.Hide(ctx)

	if err := call(); err != nil {
		c.fail(ctx, op, id, msg, err)
		return false
	}
	return true
}

func (c *SyncController) fail(ctx context.Context, op, id, msg string, err error) {
	fields := []zap.Field{zap.String("operation", op), zap.Error(err)}
	if id != "" {
		fields = append(fields, zap.String("note_id", id))
	}

	var apiErr *remotePort.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		fields = append(fields, zap.String("message", apiErr.Message))
	}

	logger.Log(ctx).Error(ctx, msg, fields...)

	if c.metrics != nil {
		c.metrics.SyncFailures.WithLabelValues(op).Inc()
	}
}
