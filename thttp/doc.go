// Package thttp contains HTTP server utilities and the bridge between net/http
// and gate applications.
//
// # HTTP Server
//
// Most use cases for http.Server are covered by thttp.Server with the following
// advantages:
//
// * Instead of pre-context-era start-and-stop paradigm, thttp.Server is
// controlled with a context passed to its Run method. This fits much better
// into hierarchies of internal components that need to be started and shut down
// as a whole. Plays especially nice with parallel.Run.
//
// * The server code ensures that every incoming request has a context inherited
// from the context passed to Run, thus supporting the global expectation that
// every context contains a logger.
//
// * The somewhat tricky graceful shutdown sequence is taken care of by
// thttp.Server.
//
// Note that only a single handler is passed to thttp.NewServer as its second
// argument. Most use cases will need path-based routing. The standard solution
// is to use github.com/gorilla/mux as in the example below.
//
// # Gate applications
//
// Handler adapts a gate.App to http.Handler, and NewAppServer serves one
// behind StandardMiddleware. The example below runs a gate application next
// to plain HTTP handlers. When the parent context is closed, RunServer returns
// after graceful shutdown.
//
//	func RunServer(ctx context.Context, addr string, app gate.App) error {
//	    listener, err := tnet.Listen(addr)
//	    if err != nil {
//	        return fmt.Errorf("failed to run server: %w", err)
//	    }
//
//	    router := mux.NewRouter()
//	    router.Handle("/app/{path:.*}", thttp.Handler(app))
//	    router.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
//
//	    server := thttp.NewServer(listener,
//	        thttp.Wrap(router, thttp.StandardMiddleware, thttp.Gzip))
//	    return server.Run(ctx)
//	}
//
// The application's body is written to the client as soon as the application
// produces it, and flushed after every chunk. If the client goes away, the
// body is canceled.
//
// # Middleware
//
// A middleware is a function that takes an http.Handler and returns an
// http.Handler, usually wrapping the handler with code that runs before, after
// or even instead of the one being wrapped.
//
// One can use a middleware to wrap a handler manually:
//
//	handler = thttp.CORS(handler)
//
// A middleware can also be applied to the mux router or a sub-router:
//
//	router.Use(thttp.CORS)
//
// To apply a handler to all requests handled by the server, which is
// the most common use case, it's convenient to use thttp.Wrap function.
// This function takes any number of middleware, which are applied in
// order so that the first one listed is the first to see the incoming request.
//
//	server := thttp.NewServer(listener,
//	    thttp.Wrap(handler, thttp.StandardMiddleware, thttp.LogBodies))
//
// It is recommended to include at least thttp.StandardMiddleware, and put it
// first. This single middleware is equivalent to listing thttp.Log,
// thttp.Recover and thttp.CORS, in this order. It does not include LogBodies
// because its use is less universal.
//
// # Request context
//
// In an HTTP handler, r.Context() returns the request context. It is a
// descendant of the context passed into the Run method of thttp.Server, and
// contains all the values stored there. However, during shutdown it will stay
// open for somewhat longer than the parent context to allow current running
// requests to complete.
//
// # Logging guidelines
//
// For all logging in HTTP handlers, use the logger embedded in the request
// context:
//
//	logger := tlog.Get(r.Context())
//
// This logger contains the following structured fields:
//
// * httpServer: the local listening address (to distinguish between messages
// from several HTTP servers)
//
// * remoteAddr: the IP address and port of the remote client
//
// If the thttp.Log middleware is installed, which it should be (usually via
// thttp.StandardMiddleware), this logger will also contain the following
// fields:
//
// * method, hostname, url: self-explanatory
//
// Please avoid redundant logging. In particular:
//
// * Don't log any of the information above explicitly.
//
// * Don't include generic unconditional log messages at the beginning and end
// of your handler unless they contain informative fields. The thttp.Log
// middleware already logs before and after handling of each request.
//
// * If you need to log all request and response bodies (at Debug level), use
// the thttp.LogBodies middleware.
//
// * In case of an internal error, don't log it explicitly. Just panic, and the
// thttp.Recover middleware will log the complete error with the panic stack.
// The client will receive a generic error 500 (unless the headers have already
// been sent), without the details of the error being exposed. Afterwards,
// the server will be terminated gracefully.
package thttp
