package gate

import "net/http"

// FaultFn reports a failure
type FaultFn func(err error)

// NextFn writes a chunk of the response body. It returns true if it keeps
// using data after returning; in that case it calls continuation once data
// may be reused. A nil continuation means the caller does not care.
type NextFn func(data []byte, continuation func()) (async bool)

// BodyFn produces the response body through next, then calls exactly one of
// fault and complete. It returns a function that cancels the production.
type BodyFn func(next NextFn, fault FaultFn, complete func()) (cancel func())

// ResultFn delivers the response status line (like "200 OK"), headers and
// body
type ResultFn func(status string, headers http.Header, body BodyFn)

// App is an application handling one request: it calls result or fault
// exactly once
type App func(env Env, result ResultFn, fault FaultFn)

// Middleware wraps an App
type Middleware func(App) App

// Wrap installs a number of middleware on an App. The first middleware listed
// will be the first one to see the request.
func Wrap(app App, mw ...Middleware) App {
	for i := len(mw) - 1; i >= 0; i-- {
		app = mw[i](app)
	}
	return app
}
