package thttp

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/ridge/gate/test"
	"github.com/ridge/gate/tnet"
	"github.com/ridge/must/v2"
	"github.com/ridge/parallel"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	group := test.Group(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("hello"))
		require.NoError(t, err)
	})

	s := NewServer(tnet.ListenOnRandomPort(), StandardMiddleware(handler))
	group.Spawn("server", parallel.Fail, s.Run)

	res, err := http.DefaultClient.Do(must.OK1(http.NewRequestWithContext(group.Context(), http.MethodGet, "http://"+s.ListenAddr().String(), nil)))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), body)
}

func TestAppServerUnixSocket(t *testing.T) {
	group := test.Group(t)

	path := t.TempDir() + "/gate.sock"
	listener, err := tnet.Listen("unix:" + path)
	require.NoError(t, err)
	s := NewAppServer(listener, helloApp)
	group.Spawn("server", parallel.Fail, s.Run)

	client := &http.Client{Transport: &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", path)
		},
	}}
	res, err := client.Do(must.OK1(http.NewRequestWithContext(group.Context(), http.MethodGet, "http://gate/", nil)))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, "hello, world", string(body))
}
