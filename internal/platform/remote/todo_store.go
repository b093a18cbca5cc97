package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// DefaultBaseURL is the public REST collection service the store talks to
// when no base URL is configured.
const DefaultBaseURL = "https://restapi.fr/api"

// listSort asks the backing service for ascending creation order.
const listSort = "createdAt:asc"

// Config describes where the collection lives.
type Config struct {
	BaseURL    string
	Collection string
	// Timeout bounds each HTTP exchange. Zero means no client-side limit;
	// the request context still applies.
	Timeout time.Duration
}

// TodoStore implements store.TodoRepository against a remote collection.
type TodoStore struct {
	root   string
	client *http.Client
	logger *slog.Logger
}

// Ensure TodoStore implements store.TodoRepository interface
var _ store.TodoRepository = (*TodoStore)(nil)

// NewTodoStore creates a remote store. If client is nil a pooled client from
// go-cleanhttp is used with cfg.Timeout. If logger is nil, a default logger
// will be used.
func NewTodoStore(cfg Config, client *http.Client, logger *slog.Logger) (*TodoStore, error) {
	if cfg.Collection == "" {
		return nil, fmt.Errorf("remote store: collection cannot be empty")
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("remote store: invalid base URL: %w", err)
	}

	if client == nil {
		client = cleanhttp.DefaultPooledClient()
		client.Timeout = cfg.Timeout
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TodoStore{
		root:   base + "/" + strings.Trim(cfg.Collection, "/"),
		client: client,
		logger: logger.With(slog.String("component", "remote_todo_store")),
	}, nil
}

func (s *TodoStore) url(id string) string {
	if id == "" {
		return s.root
	}
	return s.root + "/" + url.PathEscape(id)
}

// Save implements store.TodoRepository.Save.
// A todo without ID is created with POST; otherwise it is replaced with PUT.
func (s *TodoStore) Save(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	method := http.MethodPost
	if todo.IsPersisted() {
		method = http.MethodPut
	}

	body, err := json.Marshal(toPayload(todo))
	if err != nil {
		return nil, fmt.Errorf("failed to encode todo: %w", err)
	}

	resp, err := s.do(ctx, method, s.url(todo.ID), body)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		return nil, s.upstreamError(ctx, method, resp)
	}

	var doc document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	return doc.toDomain()
}

// FindByID implements store.TodoRepository.FindByID.
// A 404 from the backing service means absent, not failure.
func (s *TodoStore) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	resp, err := s.do(ctx, http.MethodGet, s.url(id), nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusNotFound {
		logger.FromContextOrDefault(ctx, s.logger).Debug("remote todo not found", slog.String("todo_id", id))
		return nil, nil
	}
	if !isSuccess(resp.StatusCode) {
		return nil, s.upstreamError(ctx, http.MethodGet, resp)
	}

	var doc document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode GET response: %w", err)
	}
	return doc.toDomain()
}

// ListAll implements store.TodoRepository.ListAll in ascending creation order.
func (s *TodoStore) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	resp, err := s.do(ctx, http.MethodGet, s.url("")+"?sort="+listSort, nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		return nil, s.upstreamError(ctx, "LIST", resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read LIST response: %w", err)
	}

	docs, err := decodeDocuments(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode LIST response: %w", err)
	}

	todos := make([]*domain.Todo, 0, len(docs))
	for _, d := range docs {
		todo, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

// decodeDocuments accepts either an array of documents or a single bare
// document, which some collections return when they hold one entry.
func decodeDocuments(raw []byte) ([]document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var docs []document
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return []document{doc}, nil
}

func (s *TodoStore) do(ctx context.Context, method, target string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote %s request failed: %w", method, err)
	}
	return resp, nil
}

func (s *TodoStore) upstreamError(ctx context.Context, op string, resp *http.Response) error {
	logger.FromContextOrDefault(ctx, s.logger).Warn("remote store returned non-success status",
		slog.String("operation", op),
		slog.Int("status_code", resp.StatusCode))
	return &store.UpstreamError{Operation: op, StatusCode: resp.StatusCode}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// closeBody drains what is left so the connection can be reused.
func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
