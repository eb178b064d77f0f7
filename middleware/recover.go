package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/ridge/gate"
	"github.com/ridge/gate/tlog"
	"github.com/ridge/parallel"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Recover turns a panic or a fault of the wrapped application into a
// "500 Internal Server Error" response.
//
// Once the application has produced its result, the status is sent and a
// fault is passed on to the server as is.
func Recover(next gate.App) gate.App {
	return func(env gate.Env, result gate.ResultFn, fault gate.FaultFn) {
		var produced atomic.Bool

		failed := func(err error) {
			tlog.Get(env.Context()).Error("Gate application failed", zap.Error(err))
			if !produced.CompareAndSwap(false, true) {
				fault(err)
				return
			}
			res := gate.NewResponse(result)
			res.SetStatus(http.StatusInternalServerError)
			res.SetContentType("text/plain")
			_, _ = res.WriteString(http.StatusText(http.StatusInternalServerError))
			if err := res.Finish(); err != nil {
				fault(err)
			}
		}

		defer func() {
			if p := recover(); p != nil {
				failed(parallel.ErrPanic{Value: p, Stack: debug.Stack()})
			}
		}()

		next(env, func(status string, headers http.Header, body gate.BodyFn) {
			if !produced.CompareAndSwap(false, true) {
				failed(fmt.Errorf("result produced twice: %s", status))
				return
			}
			result(status, headers, body)
		}, failed)
	}
}
