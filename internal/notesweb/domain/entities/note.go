// Package entities содержит доменные сущности клиента заметок.
package entities

import "time"

// Note представляет заметку.
type Note struct {
	ID        string
	Title     string
	Body      string
	CreatedAt time.Time
	Archived  bool
}

// Active возвращает только неархивированные заметки, сохраняя порядок.
func Active(notes []Note) []Note {
	active := make([]Note, 0, len(notes))
	for _, n := range notes {
		if !n.Archived {
			active = append(active, n)
		}
	}
	return active
}
