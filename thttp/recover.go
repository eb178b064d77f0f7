package thttp

import (
	"net/http"
	"runtime/debug"

	"github.com/ridge/gate/tlog"
	"github.com/ridge/parallel"
	"go.uber.org/zap"
)

// Recover is a middleware that catches panics from HTTP handlers.
//
// The client receives a 500 response. Under Server, the panic is then
// returned from Server.Run as parallel.ErrPanic.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			err := parallel.ErrPanic{Value: p, Stack: debug.Stack()}
			tlog.Get(r.Context()).Error("Panic in HTTP handler", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			if ch, ok := r.Context().Value(panicKey).(chan error); ok {
				select {
				case ch <- err:
				default:
				}
			}
		}()
		next.ServeHTTP(w, r)
	})
}
