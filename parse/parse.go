// Package parse decodes query strings and Cookie headers into plain maps.
//
// Every decoding failure is reported as an error matching ErrMalformedInput,
// so callers can treat all input errors alike.
package parse

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMalformedInput is matched by every error returned from this package
var ErrMalformedInput = errors.New("malformed input")

// ErrMalformed describes a decoding failure
type ErrMalformed struct {
	Kind  string // "query" or "cookie"
	Input string
	Err   error
}

func (e ErrMalformed) Error() string {
	return fmt.Sprintf("malformed %s %q: %v", e.Kind, e.Input, e.Err)
}

// Is makes ErrMalformed match ErrMalformedInput
func (e ErrMalformed) Is(target error) bool {
	return target == ErrMalformedInput
}

// Unwrap returns the underlying decoding error
func (e ErrMalformed) Unwrap() error {
	return e.Err
}

// Query parses a URL query string. Pairs are separated by '&' or ';', '+'
// stands for a space. When a key repeats, the last value wins.
func Query(raw string) (map[string]string, error) {
	res := map[string]string{}
	err := pairs(raw, "&;", func(key, value string) error {
		k, err := url.QueryUnescape(key)
		if err != nil {
			return err
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return err
		}
		res[k] = v
		return nil
	})
	if err != nil {
		return nil, ErrMalformed{Kind: "query", Input: raw, Err: err}
	}
	return res, nil
}

// Cookies parses the value of a Cookie header. Pairs are separated by ';' or
// ','. When a name repeats, the first value wins, as RFC 2109 requires the
// most specific cookie to come first. Quoted values are kept with their
// quotes.
func Cookies(raw string) (map[string]string, error) {
	res := map[string]string{}
	err := pairs(raw, ";,", func(name, value string) error {
		v, err := url.PathUnescape(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		name = strings.TrimSpace(name)
		if _, exists := res[name]; !exists {
			res[name] = v
		}
		return nil
	})
	if err != nil {
		return nil, ErrMalformed{Kind: "cookie", Input: raw, Err: err}
	}
	return res, nil
}

func pairs(raw, separators string, fn func(key, value string) error) error {
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return strings.ContainsRune(separators, r) }) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return nil
}
