package thttp

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ridge/gate/tlog"
	"github.com/ridge/must/v2"
	"go.uber.org/zap"
)

const maxLogBodyLen = 1024 - 3 // make room for 3 dots

// LogBodies is a middleware that logs request and response bodies.
//
// Only has an effect when debug logging is enabled. Bodies of type
// application/octet-stream are not logged, and others are truncated.
func LogBodies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := tlog.Get(r.Context())
		if !logger.Core().Enabled(zap.DebugLevel) {
			next.ServeHTTP(w, r)
			return
		}

		if shouldLogBody(r.Header) {
			r.Body = newCaptureReadCloser(r.Body, func(p []byte, _ bool) {
				logger.Debug("HTTP request body", zap.String("contentType", contentType(r.Header)), zap.ByteString("requestData", p))
			})
		}

		cw := &captureWriter{ResponseWriter: w, captured: &Captured{}, body: &bytes.Buffer{}}
		next.ServeHTTP(cw, r)
		if shouldLogBody(w.Header()) {
			logger.Debug("HTTP response body", zap.String("contentType", contentType(w.Header())), zap.ByteString("body", cw.body.Bytes()))
		}
	})
}

func contentType(header http.Header) string {
	return strings.TrimSpace(strings.ToLower(header.Get("Content-Type")))
}

func shouldLogBody(header http.Header) bool {
	return contentType(header) != "application/octet-stream"
}

func appendToBuffer(buff *bytes.Buffer, p []byte, n int) {
	remaining := maxLogBodyLen - buff.Len()
	if n == 0 || remaining <= 0 {
		return
	}
	// bytes.Buffer writes never fail
	if n > remaining {
		must.OK1(buff.Write(p[:remaining]))
		must.OK1(buff.WriteString("..."))
	} else {
		must.OK1(buff.Write(p[:n]))
	}
}

// captureReadCloser calls done once, at EOF or Close, with the first bytes
// read
type captureReadCloser struct {
	rc       io.ReadCloser
	buff     bytes.Buffer
	done     func(p []byte, eof bool)
	captured bool
}

func newCaptureReadCloser(rc io.ReadCloser, done func(p []byte, eof bool)) *captureReadCloser {
	if rc == nil {
		rc = http.NoBody
	}
	return &captureReadCloser{rc: rc, done: done}
}

func (crc *captureReadCloser) finish(eof bool) {
	if crc.captured {
		return
	}
	crc.captured = true
	crc.done(crc.buff.Bytes(), eof)
}

func (crc *captureReadCloser) Read(p []byte) (int, error) {
	n, err := crc.rc.Read(p)
	appendToBuffer(&crc.buff, p, n)
	if errors.Is(err, io.EOF) {
		crc.finish(true)
	}
	return n, err
}

func (crc *captureReadCloser) Close() error {
	crc.finish(false)
	return crc.rc.Close()
}
