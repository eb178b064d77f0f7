// Package middleware contains gate.Middleware for common needs of gate
// applications.
//
// Middleware is installed with gate.Wrap; the first one listed is the first
// to see the request:
//
//	app = gate.Wrap(app, middleware.Recover, middleware.MethodOverride, middleware.ContentType("text/plain"))
package middleware
