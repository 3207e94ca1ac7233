package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/readpage/internal/reader"
)

type fakePageReader struct {
	result reader.Result
	err    error
	got    reader.Request
}

func (f *fakePageReader) ReadPage(_ context.Context, req reader.Request) (reader.Result, error) {
	f.got = req
	return f.result, f.err
}

func TestReadPageSucceeds(t *testing.T) {
	t.Parallel()

	pages := &fakePageReader{result: reader.Result{
		URL:      "https://example.com",
		Content:  "# Hello",
		Strategy: reader.StrategyDirect,
	}}
	server := NewServer(pages, zap.NewNop())

	body := []byte(`{"url":"https://example.com","objective":"hello","force_refetch":true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/read", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var result reader.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, "# Hello", result.Content)
	require.Equal(t, reader.StrategyDirect, result.Strategy)

	require.Equal(t, "https://example.com", pages.got.URL)
	require.Equal(t, "hello", pages.got.Objective)
	require.True(t, pages.got.ForceRefetch)
}

func TestReadPageMissingURL(t *testing.T) {
	t.Parallel()

	server := NewServer(&fakePageReader{}, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/v1/read", bytes.NewBufferString(`{"objective":"x"}`))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "url is required")
}

func TestReadPageInvalidJSON(t *testing.T) {
	t.Parallel()

	server := NewServer(&fakePageReader{}, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/v1/read", bytes.NewBufferString("{invalid"))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadPageExhausted(t *testing.T) {
	t.Parallel()

	pages := &fakePageReader{err: &reader.ExhaustedError{URL: "https://example.com/gone"}}
	server := NewServer(pages, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/v1/read",
		bytes.NewBufferString(`{"url":"https://example.com/gone"}`))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "https://example.com/gone")
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	server := NewServer(&fakePageReader{}, zap.NewNop())
	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	server := NewServer(&fakePageReader{}, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
