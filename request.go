package gate

import (
	"net"
	"net/http"
	"strings"

	"github.com/ridge/gate/parse"
	"golang.org/x/exp/maps"
)

// Request is a view of a request environment.
//
// Query and Cookies parse on first use and cache the result until the
// underlying raw string changes. Both return a copy owned by the caller:
// changing it does not change the request.
type Request struct {
	Env Env

	query   parsed
	cookies parsed
}

type parsed struct {
	raw    string
	valid  bool
	values map[string]string
}

func (p *parsed) get(raw string, parse func(string) (map[string]string, error)) (map[string]string, error) {
	if !p.valid || p.raw != raw {
		values, err := parse(raw)
		if err != nil {
			p.valid = false
			return nil, err
		}
		p.raw, p.valid, p.values = raw, true, values
	}
	return maps.Clone(p.values), nil
}

// NewRequest creates a view of env
func NewRequest(env Env) *Request {
	return &Request{Env: env}
}

// Method returns the request method
func (r *Request) Method() string {
	return r.Env.String(RequestMethodKey)
}

// Scheme returns the request scheme
func (r *Request) Scheme() string {
	return r.Env.String(RequestSchemeKey)
}

// PathBase returns the part of the path the application is mounted at
func (r *Request) PathBase() string {
	return r.Env.String(RequestPathBaseKey)
}

// Path returns the request path relative to PathBase
func (r *Request) Path() string {
	return r.Env.String(RequestPathKey)
}

// QueryString returns the raw query string, without '?'
func (r *Request) QueryString() string {
	return r.Env.String(RequestQueryStringKey)
}

// SetQueryString replaces the query string in the environment
func (r *Request) SetQueryString(qs string) {
	r.Env[RequestQueryStringKey] = qs
}

// Query returns the parsed query string
func (r *Request) Query() (map[string]string, error) {
	return r.query.get(r.QueryString(), parse.Query)
}

// Header returns the first value of the named request header
func (r *Request) Header(name string) string {
	return r.Env.Headers().Get(name)
}

// Cookies returns the cookies sent with the request. A malformed Cookie
// header yields an error on every call.
func (r *Request) Cookies() (map[string]string, error) {
	return r.cookies.get(strings.Join(r.Env.Headers().Values("Cookie"), "; "), parse.Cookies)
}

// Host returns the host name the request is addressed to: the Host header
// without port if present, the server name otherwise
func (r *Request) Host() string {
	host := r.Header("Host")
	if host == "" {
		return r.Env.String(ServerNameKey)
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// ContentType returns the Content-Type header
func (r *Request) ContentType() string {
	return r.Header("Content-Type")
}

// MediaType returns the Content-Type header without parameters
func (r *Request) MediaType() string {
	mt, _, _ := strings.Cut(r.ContentType(), ";")
	return strings.TrimSpace(mt)
}

// BearerToken returns the bearer token from the Authorization header
func (r *Request) BearerToken() (string, error) {
	return BearerToken(r.Env.Headers())
}

// Headers returns the request headers, creating them in the environment if
// missing
func (r *Request) Headers() http.Header {
	h := r.Env.Headers()
	if h == nil {
		h = http.Header{}
		r.Env[RequestHeadersKey] = h
	}
	return h
}
