package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(maxRetries int) *HTTPFetcher {
	return NewHTTPFetcher(HTTPOptions{
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
	})
}

func TestDownloadSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "borderlens/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	body, err := newTestFetcher(3).Download(context.Background(), srv.URL)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestDownloadRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("eventually"))
	}))
	defer srv.Close()

	body, err := newTestFetcher(5).Download(context.Background(), srv.URL)
	require.NoError(t, err)
	defer body.Close()

	data, _ := io.ReadAll(body)
	assert.Equal(t, "eventually", string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestDownloadExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestFetcher(2).Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retries exhausted")
	assert.Equal(t, int32(2), calls.Load())
}

func TestDownloadNonRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher(3).Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
	// 404 is not retried.
	assert.Equal(t, int32(1), calls.Load())
}

func TestDownloadToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("file contents"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "out.json")
	n, err := newTestFetcher(3).DownloadToFile(context.Background(), srv.URL, path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("file contents")), n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file contents", string(data))
}

func TestDownloadContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher(3).Download(ctx, srv.URL)
	require.Error(t, err)
}
