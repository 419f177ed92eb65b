package main

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
	"bookshelf/internal/testutil"
)

func testConfig() config.Config {
	return config.Config{
		Addr:            "127.0.0.1:0",
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimitRPS:    1000,
		RateLimitBurst:  1000,
		MaxBodyBytes:    1024,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	}
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cfg := testConfig()
	return newHandler(cfg, book.NewMemoryRepository(), httpx.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))
}

func TestRouting_BookLifecycle(t *testing.T) {
	handler := newTestHandler(t)
	do := func(method, path string, body any) testutil.Response {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, testutil.NewRequest(method, path, body))
		return testutil.RecordHTTPResponse(t, w)
	}

	created := do(http.MethodPost, "/books", map[string]any{"name": "A", "publisher": "P", "pageCount": 100, "readPage": 100})
	require.Equal(t, http.StatusCreated, created.Code)
	assert.NotEmpty(t, created.Header.Get(httpx.RequestIDHeader))
	assert.Equal(t, "nosniff", created.Header.Get("X-Content-Type-Options"))

	var data struct {
		BookID string `json:"bookId"`
	}
	created.DecodeData(t, &data)
	assert.Len(t, data.BookID, 16)

	other := do(http.MethodPost, "/books", map[string]any{"name": "B", "pageCount": 100, "readPage": 50})
	require.Equal(t, http.StatusCreated, other.Code)

	finished := do(http.MethodGet, "/books?finished=1", nil)
	require.Equal(t, http.StatusOK, finished.Code)
	assert.JSONEq(t, `{"books":[{"id":"`+data.BookID+`","name":"A","publisher":"P"}]}`, string(finished.Data))

	assert.Equal(t, http.StatusOK, do(http.MethodPut, "/books/"+data.BookID, map[string]any{"name": "A2"}).Code)
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/books/"+data.BookID, nil).Code)
	assert.Equal(t, http.StatusOK, do(http.MethodDelete, "/books/"+data.BookID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/books/"+data.BookID, nil).Code)
}

func TestRouting_Healthz(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRouting_BodyTooLarge(t *testing.T) {
	handler := newTestHandler(t)

	big := map[string]any{"name": string(make([]byte, 2048))}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/books", big))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cfg := testConfig()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	cfg.Addr = ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.Addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
