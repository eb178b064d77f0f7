package thttp

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/ridge/gate/test"
	"github.com/stretchr/testify/require"
)

var helloHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = io.WriteString(w, strings.Repeat("hello ", 100))
	w.(http.Flusher).Flush()
	_, _ = io.WriteString(w, "world")
})

func TestShouldGzip(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.False(t, ShouldGzip(r))
	r.Header.Set("Accept-Encoding", "gzip, deflate")
	require.True(t, ShouldGzip(r))
	r.Header.Set("Accept-Encoding", "identity")
	require.False(t, ShouldGzip(r))
}

func TestGzip(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	res := TestCtx(test.Context(t), Gzip(helloHandler), r)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "gzip", res.Header.Get("Content-Encoding"))
	require.Equal(t, "Accept-Encoding", res.Header.Get("Vary"))
	require.Equal(t, "text/plain", res.Header.Get("Content-Type"))

	gz, err := gzip.NewReader(res.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("hello ", 100)+"world", string(body))
}

func TestGzipNotAccepted(t *testing.T) {
	res := TestCtx(test.Context(t), Gzip(helloHandler), httptest.NewRequest(http.MethodGet, "/", nil))
	defer res.Body.Close()

	require.Empty(t, res.Header.Get("Content-Encoding"))
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("hello ", 100)+"world", string(body))
}

func TestGzipNoContent(t *testing.T) {
	r := httptest.NewRequest(http.MethodDelete, "/", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	res := TestCtx(test.Context(t), Gzip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})), r)
	defer res.Body.Close()

	require.Equal(t, http.StatusNoContent, res.StatusCode)
	require.Empty(t, res.Header.Get("Content-Encoding"))
}
