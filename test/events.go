package test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// EventTimeout is how long AssertForefrontEvents waits for each event
var EventTimeout = 3 * time.Second

// AssertForefrontEvents asserts that the expected events arrive on ch in order.
// Events queued after them are ignored.
func AssertForefrontEvents[T any](t testing.TB, ch <-chan T, expected ...T) bool {
	ok := true
	for i, e := range expected {
		timer := time.NewTimer(EventTimeout)
		select {
		case val, open := <-ch:
			timer.Stop()
			if !assert.Truef(t, open, "channel closed, index: %d", i) {
				return false
			}
			ok = assert.Equalf(t, e, val, "index: %d", i) && ok
		case <-timer.C:
			assert.Failf(t, "timeout", "index: %d", i)
			return false
		}
	}
	return ok
}

// AssertEvents asserts that exactly the expected events are queued on ch
func AssertEvents[T any](t testing.TB, ch <-chan T, expected ...T) bool {
	if !AssertForefrontEvents(t, ch, expected...) {
		return false
	}
	ok := true
	for len(ch) > 0 {
		val, open := <-ch
		if !open {
			break
		}
		assert.Fail(t, "unexpected event", "%#v", val)
		ok = false
	}
	return ok
}
