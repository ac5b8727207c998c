package http

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesweb/internal/notesweb/adapters/http/middleware"
	"notesweb/internal/notesweb/app"
	"notesweb/internal/notesweb/widgets"
	"notesweb/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerPage     = "web handler: page"
	LogHandlerCreate   = "web handler: create note"
	LogHandlerCard     = "web handler: card action"
	LogHandlerRefresh  = "web handler: refresh"
	LogFormRejected    = "creation form rejected"
	LogUnknownAction   = "card action ignored"
	LogInvalidNoteID   = "card action with malformed note id"
	ErrMsgRenderFailed = "failed to render page"
)

// Controller - операции синхронизации, доступные из интерфейса.
type Controller interface {
	widgets.CardActions
	Refresh(ctx context.Context)
}

// LoaderState сообщает, виден ли индикатор загрузки.
type LoaderState interface {
	Visible() bool
}

// Handler содержит HTTP обработчики страницы заметок.
type Handler struct {
	renderer   *widgets.Renderer
	form       *widgets.CreationForm
	controller Controller
	loader     LoaderState
	list       *widgets.ListView
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(
	renderer *widgets.Renderer,
	form *widgets.CreationForm,
	controller Controller,
	loader LoaderState,
	list *widgets.ListView,
) *Handler {
	return &Handler{
		renderer:   renderer,
		form:       form,
		controller: controller,
		loader:     loader,
		list:       list,
	}
}

// Page отдает страницу целиком.
func (h *Handler) Page(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerPage)

	return h.sendPage(ctx, fiber.StatusOK, widgets.FormState{})
}

// NotesFragment отдает последний отрендеренный список заметок.
func (h *Handler) NotesFragment(ctx fiber.Ctx) error {
	return sendHTML(ctx, fiber.StatusOK, string(h.list.HTML()))
}

// CreateNote принимает отправку формы создания. Некорректная форма возвращается
// с ошибками полей, корректная превращается в намерение создать заметку.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	state, ok := h.form.Submit(requestCtx,
		ctx.FormValue(widgets.FieldTitle),
		ctx.FormValue(widgets.FieldBody),
	)
	if !ok {
		log.Info(requestCtx, LogFormRejected, zap.Int("errors", len(state.Errors)))
		return h.sendPage(ctx, fiber.StatusUnprocessableEntity, state)
	}

	return redirectHome(ctx)
}

// ArchiveNote обрабатывает действие "Arsipkan" карточки.
func (h *Handler) ArchiveNote(ctx fiber.Ctx) error {
	return h.cardAction(ctx, widgets.ActionArchive)
}

// DeleteNote обрабатывает действие "Hapus" карточки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	return h.cardAction(ctx, widgets.ActionDelete)
}

// Refresh заново загружает список по запросу пользователя.
func (h *Handler) Refresh(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerRefresh)

	h.controller.Refresh(requestCtx)
	return redirectHome(ctx)
}

func (h *Handler) cardAction(ctx fiber.Ctx, action widgets.CardAction) error {
	requestCtx := middleware.RequestContext(ctx)
	rawID := ctx.Params("id")
	log := logger.Log(requestCtx).With(zap.String("action", string(action)), zap.String("note_id", rawID))
	log.Info(requestCtx, LogHandlerCard)

	// Параметры маршрута приходят неразобранными, клиент экранирует id сам.
	id, err := url.PathUnescape(rawID)
	if err != nil {
		log.Warn(requestCtx, LogInvalidNoteID, zap.Error(err))
		return redirectHome(ctx)
	}

	if !widgets.DispatchCardAction(requestCtx, h.controller, action, id) {
		log.Warn(requestCtx, LogUnknownAction)
	}
	return redirectHome(ctx)
}

func (h *Handler) sendPage(ctx fiber.Ctx, status int, form widgets.FormState) error {
	requestCtx := middleware.RequestContext(ctx)

	page, err := h.renderer.Page(widgets.PageProps{
		Loader: widgets.LoaderProps{Visible: h.loader.Visible(), Text: app.LoaderText},
		Form:   form,
		List:   h.list.HTML(),
	})
	if err != nil {
		logger.Log(requestCtx).Error(requestCtx, ErrMsgRenderFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrMsgRenderFailed, fiber.ErrInternalServerError)
	}

	return sendHTML(ctx, status, string(page))
}

func sendHTML(ctx fiber.Ctx, status int, body string) error {
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	if err := ctx.Status(status).SendString(body); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

func redirectHome(ctx fiber.Ctx) error {
	if err := ctx.Redirect().Status(fiber.StatusSeeOther).To("/"); err != nil {
		return fmt.Errorf("redirecting: %w", err)
	}
	return nil
}
