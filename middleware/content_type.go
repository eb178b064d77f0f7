package middleware

import (
	"net/http"

	"github.com/ridge/gate"
)

// ContentType returns a middleware that sets the Content-Type of responses
// that have none
func ContentType(contentType string) gate.Middleware {
	return func(next gate.App) gate.App {
		return func(env gate.Env, result gate.ResultFn, fault gate.FaultFn) {
			next(env, func(status string, headers http.Header, body gate.BodyFn) {
				if headers == nil {
					headers = http.Header{}
				}
				if headers.Get("Content-Type") == "" {
					headers.Set("Content-Type", contentType)
				}
				result(status, headers, body)
			}, fault)
		}
	}
}
