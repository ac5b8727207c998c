package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"notesweb/internal/notesweb/domain/entities"
	remotePort "notesweb/internal/notesweb/ports/remote"
)

var errUnreachable = errors.New("dial tcp: connection refused")

// fakeAPI - удаленный сервис в памяти.
type fakeAPI struct {
	mu     sync.Mutex
	notes  []entities.Note
	nextID int
	fail   map[string]error
	calls  []string
	ctxErr []error
}

var _ remotePort.NotesAPI = (*fakeAPI)(nil)

func newFakeAPI(notes ...entities.Note) *fakeAPI {
	return &fakeAPI{notes: notes, fail: map[string]error{}}
}

func (f *fakeAPI) record(ctx context.Context, op string) error {
	f.calls = append(f.calls, op)
	f.ctxErr = append(f.ctxErr, ctx.Err())
	return f.fail[op]
}

func (f *fakeAPI) List(ctx context.Context) ([]entities.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, "list"); err != nil {
		return nil, err
	}
	out := make([]entities.Note, len(f.notes))
	copy(out, f.notes)
	return out, nil
}

func (f *fakeAPI) Create(ctx context.Context, title, body string) (*entities.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, "create"); err != nil {
		return nil, err
	}
	f.nextID++
	n := entities.Note{
		ID:        fmt.Sprintf("notes-%d", f.nextID),
		Title:     title,
		Body:      body,
		CreatedAt: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
	}
	f.notes = append(f.notes, n)
	return &n, nil
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, "delete"); err != nil {
		return err
	}
	for i, n := range f.notes {
		if n.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return &remotePort.APIError{Operation: "delete", HTTPStatus: 404, Status: "fail", Message: "Catatan tidak ditemukan"}
}

func (f *fakeAPI) Archive(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, "archive"); err != nil {
		return err
	}
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes[i].Archived = true
			return nil
		}
	}
	return &remotePort.APIError{Operation: "archive", HTTPStatus: 404, Status: "fail", Message: "Catatan tidak ditemukan"}
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

type mockIndicator struct {
	mock.Mock
}

func (m *mockIndicator) Show(ctx context.Context) { m.Called(ctx) }
func (m *mockIndicator) Hide(ctx context.Context) { m.Called(ctx) }

func newMockIndicator() *mockIndicator {
	m := new(mockIndicator)
	m.On("Show", mock.Anything).Return()
	m.On("Hide", mock.Anything).Return()
	return m
}

func note(id, title string, archived bool) entities.Note {
	return entities.Note{
		ID:        id,
		Title:     title,
		Body:      title + " body",
		CreatedAt: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Archived:  archived,
	}
}
