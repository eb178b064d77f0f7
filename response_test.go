package gate

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/ridge/gate/spool"
	"github.com/ridge/gate/test"
	"github.com/stretchr/testify/require"
)

// server records what an App answers
type server struct {
	status  string
	headers http.Header
	body    BodyFn

	chunks []string
	events chan string
}

func newServer() *server {
	return &server{events: make(chan string, 10)}
}

func (s *server) result(status string, headers http.Header, body BodyFn) {
	s.status, s.headers, s.body = status, headers, body
	s.events <- "result"
}

func (s *server) start() (cancel func()) {
	return s.body(func(data []byte, _ func()) bool {
		s.chunks = append(s.chunks, string(data))
		return false
	}, func(err error) {
		s.events <- "fault: " + err.Error()
	}, func() {
		s.events <- "complete"
	})
}

func TestResponseFinish(t *testing.T) {
	srv := newServer()
	res := NewResponse(srv.result)
	res.SetContentType("text/plain")
	_, err := res.WriteString("hello, ")
	require.NoError(t, err)
	_, err = res.Write([]byte("world"))
	require.NoError(t, err)
	require.NoError(t, res.Finish())

	test.AssertEvents[string](t, srv.events, "result")
	require.Equal(t, "200 OK", srv.status)
	require.Equal(t, "text/plain", srv.headers.Get("Content-Type"))

	srv.start()
	test.AssertEvents[string](t, srv.events, "complete")
	require.Equal(t, "hello, world", strings.Join(srv.chunks, ""))

	_, err = res.WriteString("late")
	require.ErrorIs(t, err, spool.ErrStreamClosed)
}

func TestResponseChunksByBufferSize(t *testing.T) {
	srv := newServer()
	res := NewResponse(srv.result)
	res.BufferSize = 4
	_, err := res.WriteString("abcdefghij")
	require.NoError(t, err)
	require.NoError(t, res.Finish())
	srv.start()
	require.Equal(t, []string{"abcd", "efgh", "ij"}, srv.chunks)
}

func TestResponseInvalidBufferSize(t *testing.T) {
	res := NewResponse(func(string, http.Header, BodyFn) { t.Fatal("unexpected result") })
	res.BufferSize = 0
	require.ErrorIs(t, res.Finish(), spool.ErrInvalidArgument)
}

func TestResponseStreamsAfterFinish(t *testing.T) {
	srv := newServer()
	res := NewResponse(srv.result)
	res.BufferSize = 3

	var complete func()
	require.NoError(t, res.FinishWith(func(fault FaultFn, c func()) {
		complete = c
	}))
	srv.start()
	require.Empty(t, srv.chunks)

	_, err := res.WriteString("abcd")
	require.NoError(t, err)
	require.Equal(t, []string{"abc"}, srv.chunks)

	_, err = res.WriteString("ef")
	require.NoError(t, err)
	require.Equal(t, []string{"abc", "def"}, srv.chunks)

	complete()
	test.AssertEvents[string](t, srv.events, "result", "complete")
	require.Equal(t, []string{"abc", "def"}, srv.chunks)
}

func TestResponseFault(t *testing.T) {
	srv := newServer()
	res := NewResponse(srv.result)
	_, err := res.WriteString("partial")
	require.NoError(t, err)
	require.NoError(t, res.FinishWith(func(fault FaultFn, complete func()) {
		fault(errors.New("oops"))
	}))
	srv.start()
	test.AssertEvents[string](t, srv.events, "result", "fault: oops")
	require.Empty(t, srv.chunks)
}

func TestResponseCancel(t *testing.T) {
	srv := newServer()
	res := NewResponse(srv.result)
	require.NoError(t, res.FinishWith(func(FaultFn, func()) {}))
	cancel := srv.start()
	cancel()
	test.AssertEvents[string](t, srv.events, "result")

	_, err := res.WriteString("ignored")
	require.ErrorIs(t, err, spool.ErrStreamClosed)
}

func TestResponseHeaders(t *testing.T) {
	res := NewResponse(nil)
	res.SetStatus(http.StatusNotFound)
	require.Equal(t, "404 Not Found", res.Status)

	res.SetContentType("text/html")
	require.Equal(t, "text/html", res.ContentType())
	res.SetContentType("")
	require.Empty(t, res.ContentType())
	require.NotContains(t, res.Headers, "Content-Type")

	res.SetCookie(&http.Cookie{Name: "session", Value: "42"})
	require.Equal(t, []string{"session=42"}, res.Headers.Values("Set-Cookie"))
}

func TestWrapOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next App) App {
			return func(env Env, result ResultFn, fault FaultFn) {
				order = append(order, name)
				next(env, result, fault)
			}
		}
	}
	app := Wrap(func(Env, ResultFn, FaultFn) { order = append(order, "app") }, mw("first"), mw("second"))
	app(Env{}, nil, nil)
	require.Equal(t, []string{"first", "second", "app"}, order)
}
