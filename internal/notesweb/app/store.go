// Package app содержит хранилище заметок, индикатор загрузки и контроллер синхронизации.
package app

import (
	"context"
	"sync"

	"notesweb/internal/notesweb/domain/entities"
	"notesweb/internal/notesweb/events"
)

// Store хранит последний полученный активный список заметок.
// Писатель один - SyncController; читатели получают копии.
type Store struct {
	mu      sync.RWMutex
	notes   []entities.Note
	changed *events.NotesChanged
}

// NewStore создает пустое хранилище.
func NewStore() *Store {
	return &Store{
		notes:   []entities.Note{},
		changed: events.NewBus[[]entities.Note](),
	}
}

// Notes возвращает копию текущего списка.
func (s *Store) Notes() []entities.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.notes)
}

// Len возвращает размер текущего списка.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Subscribe подписывает обработчик на уведомление "notes changed".
func (s *Store) Subscribe(fn events.Handler[[]entities.Note]) (unsubscribe func()) {
	return s.changed.Subscribe(fn)
}

// replace заменяет содержимое целиком и уведомляет подписчиков.
func (s *Store) replace(ctx context.Context, notes []entities.Note) {
	s.mu.Lock()
	s.notes = cloneNotes(notes)
	s.mu.Unlock()

	s.changed.Publish(ctx, s.Notes())
}

func cloneNotes(notes []entities.Note) []entities.Note {
	out := make([]entities.Note, len(notes))
	copy(out, notes)
	return out
}
