package thttp

import (
	"bufio"
	"bytes"
	"net"
	"net/http"
)

// Captured is what CaptureResponse records about a response
type Captured struct {
	Status int
	Bytes  int64
}

// CaptureResponse wraps a http.ResponseWriter to record the status code and
// the number of body bytes written.
//
// The returned ResponseWriter keeps the http.Flusher and http.Hijacker
// functionality of the original one.
func CaptureResponse(w http.ResponseWriter, c *Captured) http.ResponseWriter {
	return &captureWriter{ResponseWriter: w, captured: c}
}

type captureWriter struct {
	http.ResponseWriter
	captured *Captured
	// body, if not nil, receives a copy of up to maxLogBodyLen bytes
	body *bytes.Buffer
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.captured.Status == 0 {
		cw.captured.Status = http.StatusOK
	}
	n, err := cw.ResponseWriter.Write(b)
	cw.captured.Bytes += int64(n)
	if cw.body != nil {
		appendToBuffer(cw.body, b, n)
	}
	return n, err
}

func (cw *captureWriter) WriteHeader(statusCode int) {
	if cw.captured.Status == 0 {
		cw.captured.Status = statusCode
	}
	cw.ResponseWriter.WriteHeader(statusCode)
}

func (cw *captureWriter) Flush() {
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *captureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return h.Hijack()
}

// Unwrap lets http.ResponseController reach the original writer
func (cw *captureWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
