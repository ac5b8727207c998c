package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notesweb/internal/notesweb/domain/entities"
)

func TestActive(t *testing.T) {
	notes := []entities.Note{
		{ID: "a", Title: "first"},
		{ID: "b", Title: "archived", Archived: true},
		{ID: "c", Title: "third"},
	}

	active := entities.Active(notes)

	assert.Equal(t, []entities.Note{notes[0], notes[2]}, active)
	assert.Empty(t, entities.Active(nil))
	assert.NotNil(t, entities.Active(nil))
}
