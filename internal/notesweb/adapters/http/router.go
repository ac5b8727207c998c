// Package http содержит веб-интерфейс заметок поверх fiber.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notesweb/internal/notesweb/adapters/http/middleware"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
// registry может быть nil, тогда /metrics не публикуется.
func SetupRouter(app *fiber.App, handler *Handler, registry *prometheus.Registry) {
	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/", handler.Page)
	app.Get("/fragments/notes", handler.NotesFragment)
	app.Post("/refresh", handler.Refresh)

	app.Post("/notes", handler.CreateNote)
	app.Post("/notes/:id/archive", handler.ArchiveNote)
	app.Post("/notes/:id/delete", handler.DeleteNote)

	if registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("Route not found")
	})
}
