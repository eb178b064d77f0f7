package gate

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ridge/gate/parse"
)

// ErrMissingAuthToken is returned by BearerToken if there is no Authorization
// header
var ErrMissingAuthToken = errors.New("missing authentication token")

// ErrMalformedAuthHeader is returned by BearerToken if the Authorization
// header is not in form "Bearer token". It matches parse.ErrMalformedInput.
type ErrMalformedAuthHeader struct {
	header string
}

func (e ErrMalformedAuthHeader) Error() string {
	return fmt.Sprintf("malformed authentication header: %q", e.header)
}

// Is makes ErrMalformedAuthHeader match parse.ErrMalformedInput
func (e ErrMalformedAuthHeader) Is(target error) bool {
	return target == parse.ErrMalformedInput
}

// BearerToken returns the token of an "Authorization: Bearer" header
func BearerToken(header http.Header) (string, error) {
	h := header.Get("Authorization")
	if h == "" {
		return "", ErrMissingAuthToken
	}
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || token == "" {
		return "", ErrMalformedAuthHeader{h}
	}
	return token, nil
}
