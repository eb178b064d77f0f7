package test

import (
	"context"
	"testing"
	"time"

	"github.com/ridge/gate/tlog"
)

// Context returns a new testing context carrying a verbose logger named after
// the test.
//
// Code relying on the values injected into the context by run.Tool or
// thttp.Server should be tested with this context.
func Context(t *testing.T) context.Context {
	return tlog.WithLogger(context.Background(), tlog.NewForTesting(t))
}

// ContextWithTimeout is a version of Context closed with
// context.DeadlineExceeded after the timeout
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(Context(t), timeout)
	t.Cleanup(cancel)
	return ctx
}
