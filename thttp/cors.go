package thttp

import (
	"net/http"

	"github.com/gorilla/handlers"
)

var (
	allowedMethods = []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodOptions,
		http.MethodPut,
		http.MethodDelete,
		http.MethodPatch,
	}
	allowedHeaders = []string{
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"Content-Type",
		"Cookie",
		"If-Modified-Since",
		"Range",
		"X-HTTP-Method-Override",
		"X-Requested-With",
	}
	exposedHeaders = []string{
		"Content-Encoding",
		"Content-Length",
		"Content-Range",
	}
)

// NewCORS returns a middleware that allows cross-origin requests from the
// given origins, "*" meaning any
func NewCORS(origins ...string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedMethods(allowedMethods),
		handlers.AllowedHeaders(allowedHeaders),
		handlers.ExposedHeaders(exposedHeaders),
		handlers.AllowedOrigins(origins),
	)
}

// CORS is a middleware that allows cross-origin requests from any origin
var CORS = NewCORS("*")
