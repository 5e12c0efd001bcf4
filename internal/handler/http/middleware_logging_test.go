package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
)

func newBufferedHandler(t *testing.T, buf *bytes.Buffer) *Handler {
	t.Helper()
	return NewHandler(&service.Services{}, config.Server{}, &logger.Logger{Logger: zerolog.New(buf)})
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := newBufferedHandler(t, &buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	h.withTraceID(h.withLogging(next)).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/pot?x=1", nil))

	// NewHandler logs on construction; the access log is the last line.
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	assert.Equal(t, "/api/pot?x=1", entry["uri"])
	assert.Equal(t, http.MethodPut, entry["method"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.EqualValues(t, len("short and stout"), entry["size"])
	assert.Equal(t, rec.Header().Get(traceIDHeader), entry["trace_id"])
	assert.Contains(t, entry, "duration")
}

func TestWithLogging_NeverLogsFileKey(t *testing.T) {
	var buf bytes.Buffer
	h := newBufferedHandler(t, &buf)

	req := withFileKeyHeader(httptest.NewRequest(http.MethodGet, "/", nil), testFEK)
	h.withLogging(h.withFileKey(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))).
		ServeHTTP(httptest.NewRecorder(), req)

	assert.NotContains(t, buf.String(), encodeFileKey(testFEK))
}
