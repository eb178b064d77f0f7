package gate

import (
	"context"
	"io"
	"net/http"
)

// Well-known environment keys
const (
	VersionKey            = "owin.Version"
	RequestMethodKey      = "owin.RequestMethod"
	RequestSchemeKey      = "owin.RequestScheme"
	RequestPathBaseKey    = "owin.RequestPathBase"
	RequestPathKey        = "owin.RequestPath"
	RequestQueryStringKey = "owin.RequestQueryString"
	RequestHeadersKey     = "owin.RequestHeaders"
	RequestBodyKey        = "owin.RequestBody"

	ServerNameKey = "server.SERVER_NAME"
	ServerPortKey = "server.SERVER_PORT"
	RemoteAddrKey = "server.REMOTE_ADDR"

	// ContextKey holds the context.Context of the request
	ContextKey = "server.Context"
)

// Version is the value of VersionKey set by the servers in this module
const Version = "1.0"

// Env is the request environment
type Env map[string]any

// String returns the string stored under key, or "" if there is none
func (env Env) String(key string) string {
	s, _ := env[key].(string)
	return s
}

// Headers returns the request headers, or nil if there are none
func (env Env) Headers() http.Header {
	h, _ := env[RequestHeadersKey].(http.Header)
	return h
}

// Body returns the request body, or http.NoBody if there is none
func (env Env) Body() io.Reader {
	if body, ok := env[RequestBodyKey].(io.Reader); ok && body != nil {
		return body
	}
	return http.NoBody
}

// Context returns the request context, or context.Background() if the server
// does not provide one
func (env Env) Context() context.Context {
	if ctx, ok := env[ContextKey].(context.Context); ok && ctx != nil {
		return ctx
	}
	return context.Background()
}
