package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/gorilla/mux"
	"github.com/ridge/gate"
	"github.com/ridge/gate/middleware"
	"github.com/ridge/gate/run"
	"github.com/ridge/gate/thttp"
	"github.com/ridge/gate/tlog"
	"github.com/ridge/gate/tnet"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Config contains the server parameters
type Config struct {
	Listener net.Listener
	// BodyBuffer is the size of the chunks response bodies are sent in
	BodyBuffer datasize.ByteSize
	// StreamInterval is the pause between the lines sent by /stream
	StreamInterval time.Duration
}

// Main handles the command line and runs the server
func Main(args []string) {
	run.Server(func(ctx context.Context) error {
		addr := "tcp:localhost:8080"
		bodyBuffer := byteSize(gate.DefaultBufferSize)
		var streamInterval time.Duration
		pflag.StringVar(&addr, "addr", addr, "address to listen on (tcp:[host]:port or unix:path)")
		pflag.Var(&bodyBuffer, "body-buffer", "size of response body chunks, e.g. 512B or 4KB")
		pflag.DurationVar(&streamInterval, "stream-interval", 100*time.Millisecond, "pause between lines sent by /stream")
		_ = pflag.CommandLine.Parse(args[1:])

		listener, err := tnet.Listen(addr)
		if err != nil {
			return err
		}

		return Run(ctx, Config{
			Listener:       listener,
			BodyBuffer:     datasize.ByteSize(bodyBuffer),
			StreamInterval: streamInterval,
		})
	})
}

// Run serves the demo applications until ctx is closed
func Run(ctx context.Context, config Config) error {
	if config.BodyBuffer == 0 || config.BodyBuffer > datasize.MB {
		return fmt.Errorf("body buffer size %s is out of range (1B..1MB)", config.BodyBuffer.HR())
	}
	tlog.Get(ctx).Info("Starting gate demo server",
		zap.Stringer("addr", config.Listener.Addr()),
		zap.String("bodyBuffer", config.BodyBuffer.HR()))

	httpServer := thttp.NewServer(config.Listener,
		thttp.Wrap(Router(int(config.BodyBuffer.Bytes()), config.StreamInterval), thttp.StandardMiddleware, thttp.Gzip, thttp.LogBodies))
	return httpServer.Run(ctx)
}

// Router routes requests to the demo applications
func Router(bufferSize int, streamInterval time.Duration) http.Handler {
	wrap := func(app gate.App) http.Handler {
		return thttp.Handler(gate.Wrap(app,
			middleware.Recover,
			middleware.MethodOverride,
			middleware.ContentType("text/plain; charset=utf-8")))
	}

	a := apps{bufferSize: bufferSize, streamInterval: streamInterval}
	router := mux.NewRouter()
	router.Handle("/hello", wrap(a.hello)).Methods(http.MethodGet)
	router.Handle("/echo", wrap(a.echo))
	router.Handle("/stream", wrap(a.stream)).Methods(http.MethodGet)
	return router
}

// byteSize is a datasize.ByteSize command line flag
type byteSize datasize.ByteSize

func (b *byteSize) String() string {
	return datasize.ByteSize(*b).HR()
}

func (b *byteSize) Set(s string) error {
	var size datasize.ByteSize
	if err := size.UnmarshalText([]byte(s)); err != nil {
		return err
	}
	*b = byteSize(size)
	return nil
}

func (b *byteSize) Type() string {
	return "size"
}
