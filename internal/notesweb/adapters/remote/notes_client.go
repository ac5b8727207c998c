// Package remote содержит HTTP-клиент удаленного сервиса заметок.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"notesweb/internal/notesweb/config"
	"notesweb/internal/notesweb/domain/entities"
	"notesweb/internal/notesweb/metrics"
	remotePort "notesweb/internal/notesweb/ports/remote"
	"notesweb/internal/notesweb/resilience"
	"notesweb/pkg/logger"
)

// Имена операций для логов и метрик.
const (
	OpList    = "list"
	OpCreate  = "create"
	OpDelete  = "delete"
	OpArchive = "archive"
)

// Константы ошибок и сообщений для логирования.
const (
	LogSendingRequest = "sending request to remote note service"
	LogRequestDone    = "remote note service responded"

	ErrMsgBuildRequest = "failed to build request"
	ErrMsgInvalidURL   = "invalid remote base url"
)

var (
	// ErrTransport означает, что сервис недоступен или ответ не удалось прочитать.
	ErrTransport = errors.New("remote note service transport failure")
	// ErrMalformedResponse означает, что тело ответа не соответствует контракту.
	ErrMalformedResponse = errors.New("malformed response")
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type noteDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	Archived  bool   `json:"archived"`
}

type createNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Client реализует remote.NotesAPI поверх JSON/HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	breaker    *resilience.ServiceResilience
	metrics    *metrics.Collector
}

var _ remotePort.NotesAPI = (*Client)(nil)

// NewClient создает клиента. collector может быть nil.
func NewClient(ctx context.Context, cfg *config.RemoteConfig, collector *metrics.Collector) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%s: %q", ErrMsgInvalidURL, cfg.BaseURL)
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		metrics:    collector,
	}
	if cfg.Breaker.Enabled {
		c.breaker = resilience.NewServiceResilience(ctx, "remote-notes", cfg.Breaker, IsServiceFailure)
	}
	return c, nil
}

// IsServiceFailure сообщает, указывает ли ошибка на отказ самого сервиса.
// Ответы со status "fail" означают, что сервис работает.
func IsServiceFailure(err error) bool {
	var apiErr *remotePort.APIError
	return err != nil && !errors.As(err, &apiErr)
}

// List возвращает все заметки сервиса.
func (c *Client) List(ctx context.Context) ([]entities.Note, error) {
	var env envelope
	if err := c.do(ctx, OpList, http.MethodGet, []string{"notes"}, nil, &env); err != nil {
		return nil, err
	}

	var dtos []noteDTO
	if err := json.Unmarshal(env.Data, &dtos); err != nil {
		return nil, fmt.Errorf("%w: %w: list data: %w", ErrTransport, ErrMalformedResponse, err)
	}

	notes := make([]entities.Note, 0, len(dtos))
	for _, d := range dtos {
		n, err := d.toEntity()
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// Create создает заметку.
func (c *Client) Create(ctx context.Context, title, body string) (*entities.Note, error) {
	var env envelope
	payload := createNoteRequest{Title: title, Body: body}
	if err := c.do(ctx, OpCreate, http.MethodPost, []string{"notes"}, payload, &env); err != nil {
		return nil, err
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}
	var d noteDTO
	if err := json.Unmarshal(env.Data, &d); err != nil {
		return nil, fmt.Errorf("%w: %w: create data: %w", ErrTransport, ErrMalformedResponse, err)
	}
	n, err := d.toEntity()
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete удаляет заметку.
func (c *Client) Delete(ctx context.Context, id string) error {
	var env envelope
	return c.do(ctx, OpDelete, http.MethodDelete, []string{"notes", id}, nil, &env)
}

// Archive архивирует заметку.
func (c *Client) Archive(ctx context.Context, id string) error {
	var env envelope
	return c.do(ctx, OpArchive, http.MethodPost, []string{"notes", id, "archive"}, nil, &env)
}

func (c *Client) do(ctx context.Context, op, method string, path []string, payload any, out *envelope) error {
	call := func() error {
		return c.roundTrip(ctx, op, method, path, payload, out)
	}

	start := time.Now()
	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(ctx, op, call)
	} else {
		err = call()
	}
	c.observe(op, start, err)
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method string, path []string, payload any, out *envelope) error {
	log := logger.Log(ctx).With(zap.String("operation", op), zap.String("method", method))

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgBuildRequest, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	target := c.baseURL.JoinPath(path...)
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBuildRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := logger.GetRequestID(ctx); ok {
		req.Header.Set("X-Request-ID", id)
	}

	log.Debug(ctx, LogSendingRequest, zap.String("url", target.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, target.Path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Warn(ctx, "failed to close response body", zap.Error(cerr))
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	log.Debug(ctx, LogRequestDone, zap.Int("http_status", resp.StatusCode))

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w: http %d: %w", ErrTransport, ErrMalformedResponse, resp.StatusCode, err)
	}

	if out.Status != remotePort.StatusSuccess {
		return &remotePort.APIError{
			Operation:  op,
			HTTPStatus: resp.StatusCode,
			Status:     out.Status,
			Message:    out.Message,
		}
	}
	return nil
}

func (c *Client) observe(op string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.RemoteDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	var apiErr *remotePort.APIError
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.As(err, &apiErr):
		outcome = metrics.OutcomeFail
	case errors.Is(err, resilience.ErrCircuitOpen):
		outcome = metrics.OutcomeRejected
	default:
		outcome = metrics.OutcomeTransport
	}
	c.metrics.RemoteRequests.WithLabelValues(op, outcome).Inc()
}

func (d noteDTO) toEntity() (entities.Note, error) {
	createdAt, err := ParseCreatedAt(d.CreatedAt)
	if err != nil {
		return entities.Note{}, fmt.Errorf("%w: %w: note %s: %w", ErrTransport, ErrMalformedResponse, d.ID, err)
	}
	return entities.Note{
		ID:        d.ID,
		Title:     d.Title,
		Body:      d.Body,
		CreatedAt: createdAt,
		Archived:  d.Archived,
	}, nil
}

// ParseCreatedAt разбирает createdAt в формате RFC 3339 или YYYY-MM-DD.
// Пустая строка дает нулевое время.
func ParseCreatedAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse createdAt %q: %w", s, err)
	}
	return t, nil
}
