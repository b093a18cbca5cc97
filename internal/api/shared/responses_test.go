package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"title": "x"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"title":"x"}`, rec.Body.String())
}

func TestRespondWithErrorAndLogRedacts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	ctx := logger.WithLogger(SetTraceID(req.Context()), log)
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred",
		errors.New("connect postgres://todo:hunter2@db/todos"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred", body.Error)
	assert.Equal(t, GetTraceID(ctx), body.TraceID)

	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.NotContains(t, buf.String(), "hunter2")
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestRespondWithErrorOmitsMissingTraceID(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RespondWithError(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, "Todo not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Todo not found"}`, rec.Body.String())
}
