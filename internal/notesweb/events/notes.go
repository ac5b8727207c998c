package events

import (
	"time"

	"notesweb/internal/notesweb/domain/entities"
)

// NotesChanged публикуется после каждого успешного обновления списка.
type NotesChanged = Bus[[]entities.Note]

// CreationIntent - намерение создать заметку, отправленное формой.
// ID и Date формируются на клиенте и сервисом не используются.
type CreationIntent struct {
	ID    string
	Title string
	Body  string
	Date  time.Time
}

// CreationIntents - шина намерений создания.
type CreationIntents = Bus[CreationIntent]
