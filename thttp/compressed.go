package thttp

import (
	"net/http"

	"github.com/klauspost/compress/gzip"
	"github.com/kevinpollet/nego"
	"github.com/ridge/gate/tlog"
	"go.uber.org/zap"
)

// ShouldGzip returns if gzip-compression is asked for in HTTP request
func ShouldGzip(r *http.Request) bool {
	// nego.NegotiateContentEncoding(r, "gzip") returns "gzip"
	// if there is no "Accept-Encoding" header there. Guard against it.
	return r.Header.Get("Accept-Encoding") != "" && nego.NegotiateContentEncoding(r, "gzip") == "gzip"
}

// Gzip is a middleware that compresses response bodies if the client accepts
// gzip Content-Encoding.
//
// Flush on the response writer flushes the compressor too, so streamed
// responses reach the client chunk by chunk.
func Gzip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		if !ShouldGzip(r) || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		gw := &gzipWriter{ResponseWriter: w}
		defer func() {
			if err := gw.close(); err != nil {
				tlog.Get(r.Context()).Debug("Failed to finish gzip stream", zap.Error(err))
			}
		}()
		next.ServeHTTP(gw, r)
	})
}

type gzipWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	wroteHeader bool
}

func (gw *gzipWriter) WriteHeader(statusCode int) {
	if gw.wroteHeader {
		return
	}
	gw.wroteHeader = true
	if bodyAllowed(statusCode) && gw.Header().Get("Content-Encoding") == "" {
		gw.Header().Set("Content-Encoding", "gzip")
		gw.Header().Del("Content-Length")
		gw.gz = gzip.NewWriter(gw.ResponseWriter)
	}
	gw.ResponseWriter.WriteHeader(statusCode)
}

func (gw *gzipWriter) Write(b []byte) (int, error) {
	if !gw.wroteHeader {
		if gw.Header().Get("Content-Type") == "" {
			gw.Header().Set("Content-Type", http.DetectContentType(b))
		}
		gw.WriteHeader(http.StatusOK)
	}
	if gw.gz == nil {
		return gw.ResponseWriter.Write(b)
	}
	return gw.gz.Write(b)
}

func (gw *gzipWriter) Flush() {
	if gw.gz != nil {
		if err := gw.gz.Flush(); err != nil {
			return
		}
	}
	if f, ok := gw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (gw *gzipWriter) Unwrap() http.ResponseWriter {
	return gw.ResponseWriter
}

func (gw *gzipWriter) close() error {
	if gw.gz == nil {
		return nil
	}
	return gw.gz.Close()
}

func bodyAllowed(status int) bool {
	return status >= http.StatusOK && status != http.StatusNoContent && status != http.StatusNotModified
}
