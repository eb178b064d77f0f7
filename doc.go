// Package gate is a toolkit for applications written against a small,
// transport-neutral server interface.
//
// # Server interface
//
// An App is called with the request environment and two callbacks. It
// answers by calling result with a status line, response headers and a body
// function, or reports a failure through fault. Either can happen inside the
// call or later, from any goroutine.
//
// The server invokes the body function with three callbacks of its own: next
// writes a chunk of bytes, fault aborts the response and complete ends it.
// next returns true when it has not finished with the chunk yet; it then calls
// the continuation passed along with the chunk once the body may write again.
// The body function returns a cancel function the server calls if it stops
// being interested in the body.
//
//	app := func(env gate.Env, result gate.ResultFn, fault gate.FaultFn) {
//	    res := gate.NewResponse(result)
//	    res.SetContentType("text/plain")
//	    res.WriteString("hello")
//	    if err := res.Finish(); err != nil {
//	        fault(err)
//	    }
//	}
//
// Package thttp serves an App over net/http.
//
// # Request and Response
//
// Request is a convenience view of the environment: the query string and the
// Cookie header are parsed on demand, and the host is derived from the Host
// header or the server name.
//
// Response buffers the body written by the application in a spool (see
// package spool) and streams it to next when the response is finished, so
// the application may keep writing after Finish from another goroutine until
// it signals completion.
package gate
