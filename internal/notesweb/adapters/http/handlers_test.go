package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	webhttp "notesweb/internal/notesweb/adapters/http"
	"notesweb/internal/notesweb/adapters/http/middleware"
	remoteAdapter "notesweb/internal/notesweb/adapters/remote"
	"notesweb/internal/notesweb/app"
	"notesweb/internal/notesweb/config"
	"notesweb/internal/notesweb/events"
	"notesweb/internal/notesweb/metrics"
	"notesweb/internal/notesweb/widgets"
)

type remoteNote struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	Archived  bool   `json:"archived"`
}

// fakeRemote - удаленный сервис заметок в памяти.
type fakeRemote struct {
	mu         sync.Mutex
	notes      []remoteNote
	next       int
	failCreate bool
	posts      int
	requestIDs []string
}

func (f *fakeRemote) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/notes", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requestIDs = append(f.requestIDs, r.Header.Get(middleware.HeaderRequestID))
		respond(w, http.StatusOK, map[string]any{"status": "success", "data": f.notes})
	})
	mux.HandleFunc("POST /v2/notes", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.posts++
		if f.failCreate {
			respond(w, http.StatusBadRequest, map[string]any{"status": "fail", "message": "Gagal menambahkan catatan"})
			return
		}
		var in struct{ Title, Body string }
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respond(w, http.StatusBadRequest, map[string]any{"status": "fail", "message": err.Error()})
			return
		}
		f.next++
		n := remoteNote{
			ID:        fmt.Sprintf("notes-%d", f.next),
			Title:     in.Title,
			Body:      in.Body,
			CreatedAt: "2024-06-04T10:00:00.000Z",
		}
		f.notes = append(f.notes, n)
		respond(w, http.StatusCreated, map[string]any{"status": "success", "data": n})
	})
	mux.HandleFunc("DELETE /v2/notes/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, n := range f.notes {
			if n.ID == r.PathValue("id") {
				f.notes = append(f.notes[:i], f.notes[i+1:]...)
				respond(w, http.StatusOK, map[string]any{"status": "success"})
				return
			}
		}
		respond(w, http.StatusNotFound, map[string]any{"status": "fail", "message": "Catatan tidak ditemukan"})
	})
	mux.HandleFunc("POST /v2/notes/{id}/archive", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.notes {
			if f.notes[i].ID == r.PathValue("id") {
				f.notes[i].Archived = true
				respond(w, http.StatusOK, map[string]any{"status": "success"})
				return
			}
		}
		respond(w, http.StatusNotFound, map[string]any{"status": "fail", "message": "Catatan tidak ditemukan"})
	})
	return mux
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type testStack struct {
	app       *fiber.App
	remote    *fakeRemote
	collector *metrics.Collector
	loader    *app.Loader
}

func newStack(t *testing.T, notes ...remoteNote) *testStack {
	t.Helper()
	ctx := context.Background()

	remote := &fakeRemote{notes: notes}
	srv := httptest.NewServer(remote.handler())
	t.Cleanup(srv.Close)

	collector := metrics.NewCollector("test")
	client, err := remoteAdapter.NewClient(ctx, &config.RemoteConfig{BaseURL: srv.URL + "/v2"}, collector)
	require.NoError(t, err)

	store := app.NewStore()
	loader := app.NewLoader(collector.Loading)
	ctrl := app.NewSyncController(client, store, loader, collector)

	intents := events.NewBus[events.CreationIntent]()
	t.Cleanup(ctrl.ListenCreationIntents(intents))

	renderer, err := widgets.NewRenderer(time.UTC)
	require.NoError(t, err)
	view, unsubscribe, err := widgets.NewListView(renderer, store)
	require.NoError(t, err)
	t.Cleanup(unsubscribe)

	form, err := widgets.NewCreationForm(intents, collector.FormRejected)
	require.NoError(t, err)

	ctrl.Refresh(ctx)

	fiberApp := fiber.New()
	webhttp.SetupRouter(fiberApp, webhttp.NewHandler(renderer, form, ctrl, loader, view), collector.Registry())

	return &testStack{app: fiberApp, remote: remote, collector: collector, loader: loader}
}

func (s *testStack) do(t *testing.T, method, target string, form url.Values, headers ...string) (*http.Response, string) {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func (s *testStack) fragment(t *testing.T) string {
	t.Helper()
	resp, body := s.do(t, http.MethodGet, "/fragments/notes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body
}

func TestCreateNoteEndToEnd(t *testing.T) {
	s := newStack(t)

	resp, page := s.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, page, widgets.EmptyListText)

	resp, _ = s.do(t, http.MethodPost, "/notes", url.Values{
		widgets.FieldTitle: {"Groceries"},
		widgets.FieldBody:  {"Milk, eggs"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	list := s.fragment(t)
	assert.Equal(t, 1, strings.Count(list, "<note-card "))
	assert.Contains(t, list, "Groceries")
	assert.Contains(t, list, "Milk, eggs")
	assert.Contains(t, list, "4 Juni 2024")
	assert.NotContains(t, list, widgets.EmptyListText)
}

func TestCreateNoteRejectsBlankTitle(t *testing.T) {
	s := newStack(t)

	resp, page := s.do(t, http.MethodPost, "/notes", url.Values{
		widgets.FieldTitle: {"   "},
		widgets.FieldBody:  {"kept body"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, page, widgets.MsgTitleRequired)
	assert.NotContains(t, page, widgets.MsgBodyRequired)
	assert.Contains(t, page, "kept body")
	assert.Zero(t, s.remote.posts, "invalid form never reaches the remote service")
	assert.InDelta(t, 1, testutil.ToFloat64(s.collector.FormRejected), 0)
}

func TestArchiveAndDeleteActions(t *testing.T) {
	s := newStack(t,
		remoteNote{ID: "a", Title: "Shelve", Body: "x", CreatedAt: "2024-06-04"},
		remoteNote{ID: "b", Title: "Drop", Body: "y", CreatedAt: "2024-06-04"},
	)
	require.Equal(t, 2, strings.Count(s.fragment(t), "<note-card "))

	resp, _ := s.do(t, http.MethodPost, "/notes/a/archive", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	list := s.fragment(t)
	assert.Equal(t, 1, strings.Count(list, "<note-card "))
	assert.NotContains(t, list, "Shelve")

	resp, _ = s.do(t, http.MethodPost, "/notes/b/delete", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, s.fragment(t), widgets.EmptyListText)
	assert.False(t, s.loader.Visible())
}

func TestCardActionUnescapesNoteID(t *testing.T) {
	s := newStack(t,
		remoteNote{ID: "notes 1%", Title: "Spaced", Body: "x", CreatedAt: "2024-06-04"},
		remoteNote{ID: "b", Title: "Other", Body: "y", CreatedAt: "2024-06-04"},
	)

	resp, _ := s.do(t, http.MethodPost, "/notes/"+url.PathEscape("notes 1%")+"/archive", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	list := s.fragment(t)
	assert.NotContains(t, list, "Spaced")
	assert.Contains(t, list, "Other")
	assert.Zero(t, testutil.ToFloat64(s.collector.SyncFailures.WithLabelValues(app.OpArchive)))
}

func TestRemoteFailureKeepsList(t *testing.T) {
	s := newStack(t, remoteNote{ID: "a", Title: "Existing", Body: "x", CreatedAt: "2024-06-04"})
	s.remote.failCreate = true

	resp, _ := s.do(t, http.MethodPost, "/notes", url.Values{
		widgets.FieldTitle: {"Groceries"},
		widgets.FieldBody:  {"Milk, eggs"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	list := s.fragment(t)
	assert.Equal(t, 1, strings.Count(list, "<note-card "))
	assert.NotContains(t, list, "Groceries")
	assert.InDelta(t, 1, testutil.ToFloat64(s.collector.SyncFailures.WithLabelValues(app.OpCreate)), 0)

	_, page := s.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, page, "display:none", "loader hidden after failure")
}

func TestRefreshPropagatesRequestID(t *testing.T) {
	s := newStack(t)

	resp, _ := s.do(t, http.MethodPost, "/refresh", nil, middleware.HeaderRequestID, "req-123")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(middleware.HeaderRequestID))

	s.remote.mu.Lock()
	defer s.remote.mu.Unlock()
	assert.Contains(t, s.remote.requestIDs, "req-123")
}

func TestRequestIDGenerated(t *testing.T) {
	s := newStack(t)

	resp, _ := s.do(t, http.MethodGet, "/", nil)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))
}

func TestMetricsEndpoint(t *testing.T) {
	s := newStack(t)

	resp, body := s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "test_remote_requests_total")
	assert.Contains(t, body, "test_active_notes")
}

func TestUnknownRoute(t *testing.T) {
	s := newStack(t)

	resp, _ := s.do(t, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
