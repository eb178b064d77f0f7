package thttp

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/ridge/gate"
	"github.com/ridge/gate/tlog"
	"github.com/ridge/gate/tnet"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Env builds the gate environment of an HTTP request.
//
// The Host header, which net/http moves to r.Host, is restored in the
// request headers.
func Env(r *http.Request) (gate.Env, error) {
	scheme, err := getScheme(r)
	if err != nil {
		return nil, err
	}
	headers := r.Header.Clone()
	if headers == nil {
		headers = http.Header{}
	}
	if r.Host != "" {
		headers.Set("Host", r.Host)
	}
	env := gate.Env{
		gate.VersionKey:            gate.Version,
		gate.RequestMethodKey:      r.Method,
		gate.RequestSchemeKey:      scheme,
		gate.RequestPathBaseKey:    "",
		gate.RequestPathKey:        r.URL.Path,
		gate.RequestQueryStringKey: r.URL.RawQuery,
		gate.RequestHeadersKey:     headers,
		gate.RequestBodyKey:        r.Body,
		gate.RemoteAddrKey:         r.RemoteAddr,
		gate.ContextKey:            r.Context(),
	}
	if addr, ok := r.Context().Value(http.LocalAddrContextKey).(net.Addr); ok {
		if host, port, err := net.SplitHostPort(addr.String()); err == nil {
			env[gate.ServerNameKey] = host
			env[gate.ServerPortKey] = port
		}
	}
	return env, nil
}

// ParseStatus extracts the code from a status line such as "404 Not Found"
func ParseStatus(status string) (int, error) {
	codeStr, _, _ := strings.Cut(status, " ")
	code, err := strconv.Atoi(codeStr)
	if err != nil || code < 100 || code > 999 {
		return 0, fmt.Errorf("malformed status line %q", status)
	}
	return code, nil
}

// Handler serves a gate application.
//
// The handler goroutine waits until the application completes the body or
// reports a fault, or until the request context is closed, in which case the
// body is canceled. A fault before the status is sent results in a 500
// response.
func Handler(app gate.App) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := tlog.Get(r.Context())

		env, err := Env(r)
		if err != nil {
			logger.Debug("Rejecting request", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ex := &exchange{w: w, done: make(chan error, 1)}
		ex.flusher, _ = w.(http.Flusher)

		app(env, ex.result, ex.finish)

		select {
		case err = <-ex.done:
		case <-r.Context().Done():
			err = r.Context().Err()
		}
		cancel := ex.detach()
		if cancel != nil {
			cancel()
		}

		switch {
		case err == nil:
			logger.Debug("Gate response finished", zap.Int64("bytesSent", ex.sent.Load()))
		case errors.Is(err, r.Context().Err()), tnet.IsPeerGoneError(err):
			logger.Debug("Gate response canceled", zap.Int64("bytesSent", ex.sent.Load()), zap.Error(err))
		default:
			logger.Warn("Gate application fault", zap.Int64("bytesSent", ex.sent.Load()), zap.Error(err))
			if !ex.headerSent {
				w.WriteHeader(http.StatusInternalServerError)
			}
		}
	})
}

// exchange is the server side of one gate request
type exchange struct {
	w       http.ResponseWriter
	flusher http.Flusher

	once sync.Once
	done chan error
	sent atomic.Int64

	mu         sync.Mutex
	headerSent bool
	detached   bool // the handler has returned, w must not be touched
	cancel     func()
}

func (ex *exchange) finish(err error) {
	ex.once.Do(func() {
		ex.done <- err
	})
}

func (ex *exchange) result(status string, headers http.Header, body gate.BodyFn) {
	code, err := ParseStatus(status)
	if err != nil {
		ex.finish(err)
		return
	}

	ex.mu.Lock()
	if ex.detached {
		ex.mu.Unlock()
		return
	}
	h := ex.w.Header()
	for k, v := range headers {
		h[k] = v
	}
	ex.w.WriteHeader(code)
	ex.headerSent = true
	ex.mu.Unlock()

	cancel := body(ex.next, ex.finish, func() { ex.finish(nil) })

	ex.mu.Lock()
	defer ex.mu.Unlock()
	if ex.detached {
		if cancel != nil {
			go cancel()
		}
		return
	}
	ex.cancel = cancel
}

func (ex *exchange) next(data []byte, _ func()) bool {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	if ex.detached {
		return false
	}
	n, err := ex.w.Write(data)
	ex.sent.Add(int64(n))
	if err != nil {
		ex.finish(fmt.Errorf("failed to write response body: %w", err))
		return false
	}
	if ex.flusher != nil {
		ex.flusher.Flush()
	}
	return false
}

func (ex *exchange) detach() func() {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	ex.detached = true
	return ex.cancel
}
