package gate

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/ridge/gate/spool"
)

// DefaultBufferSize is the default size of the chunks Response passes to next
const DefaultBufferSize = 512

// Response builds a response and delivers it through a ResultFn.
//
// The body is written with Write or WriteString before or after Finish. The
// bytes are buffered until the server pulls them.
type Response struct {
	Status     string
	Headers    http.Header
	BufferSize int

	result ResultFn
	spool  *spool.Spool
}

// NewResponse creates a "200 OK" response with no headers
func NewResponse(result ResultFn) *Response {
	return &Response{
		Status:     "200 OK",
		Headers:    http.Header{},
		BufferSize: DefaultBufferSize,
		result:     result,
		spool:      spool.New(),
	}
}

// SetStatus sets the status line from a status code
func (r *Response) SetStatus(code int) {
	r.Status = fmt.Sprintf("%d %s", code, http.StatusText(code))
}

// ContentType returns the Content-Type header
func (r *Response) ContentType() string {
	return r.Headers.Get("Content-Type")
}

// SetContentType sets the Content-Type header, or removes it if value is
// empty
func (r *Response) SetContentType(value string) {
	r.setHeader("Content-Type", value)
}

func (r *Response) setHeader(name, value string) {
	if value == "" {
		r.Headers.Del(name)
		return
	}
	r.Headers.Set(name, value)
}

// SetCookie adds a Set-Cookie header
func (r *Response) SetCookie(cookie *http.Cookie) {
	if v := cookie.String(); v != "" {
		r.Headers.Add("Set-Cookie", v)
	}
}

// Write appends p to the body. It fails with spool.ErrStreamClosed once the
// body is complete.
func (r *Response) Write(p []byte) (int, error) {
	return spool.Writer{Spool: r.spool}.Write(p)
}

// WriteString appends s to the body
func (r *Response) WriteString(s string) (int, error) {
	return r.Write([]byte(s))
}

// Finish delivers the response with the body written so far
func (r *Response) Finish() error {
	return r.FinishWith(func(fault FaultFn, complete func()) {
		complete()
	})
}

// FinishWith delivers the response. The server calls body once it is ready
// for the body; body may keep writing to the response until it calls
// complete, or abort the response with fault.
//
// Fails with spool.ErrInvalidArgument if BufferSize is not positive.
func (r *Response) FinishWith(body func(fault FaultFn, complete func())) error {
	if r.BufferSize <= 0 {
		return fmt.Errorf("buffer size %d: %w", r.BufferSize, spool.ErrInvalidArgument)
	}
	r.result(r.Status, r.Headers, func(next NextFn, fault FaultFn, complete func()) func() {
		var once sync.Once
		end := func(err error) {
			once.Do(func() {
				if err != nil {
					fault(err)
				} else {
					complete()
				}
			})
		}
		// the size was validated above
		_ = spool.Pump(r.spool, r.BufferSize, spool.Sink(next), end)

		body(func(err error) {
			end(err)
			r.spool.Discard()
		}, func() {
			_, _ = r.spool.Push(nil, nil)
		})

		return func() {
			once.Do(func() {})
			r.spool.Discard()
		}
	})
	return nil
}
