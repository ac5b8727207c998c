// Package remote определяет порт удаленного сервиса заметок.
package remote

import (
	"context"

	"notesweb/internal/notesweb/domain/entities"
)

// NotesAPI определяет операции удаленного сервиса заметок.
type NotesAPI interface {
	// List возвращает все заметки, включая архивные.
	List(ctx context.Context) ([]entities.Note, error)

	// Create создает заметку и возвращает сохраненную версию.
	Create(ctx context.Context, title, body string) (*entities.Note, error)

	// Delete удаляет заметку.
	Delete(ctx context.Context, id string) error

	// Archive архивирует заметку.
	Archive(ctx context.Context, id string) error
}
