package test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type event string

func TestEventsEmptyOK(t *testing.T) {
	inner := &testing.T{}
	assert.True(t, AssertForefrontEvents[event](inner, make(chan event)))
	assert.False(t, inner.Failed())
}

func TestEventsSequence(t *testing.T) {
	inner := &testing.T{}
	events := make(chan event, 2)
	events <- "drained"
	events <- "filled"
	assert.True(t, AssertEvents[event](inner, events, "drained", "filled"))
	assert.False(t, inner.Failed())
}

func TestEventsWrongOrder(t *testing.T) {
	inner := &testing.T{}
	events := make(chan event, 2)
	events <- "filled"
	events <- "drained"
	assert.False(t, AssertForefrontEvents[event](inner, events, "drained", "filled"))
	assert.True(t, inner.Failed())
}

func TestEventsUnexpected(t *testing.T) {
	inner := &testing.T{}
	events := make(chan event, 2)
	events <- "drained"
	events <- "filled"
	assert.True(t, AssertForefrontEvents[event](inner, events, "drained"))
	assert.False(t, inner.Failed())

	events <- "filled"
	inner = &testing.T{}
	assert.False(t, AssertEvents[event](inner, events, "filled"))
	assert.True(t, inner.Failed())
}

func TestEventsTimeout(t *testing.T) {
	saved := EventTimeout
	EventTimeout = 10 * time.Millisecond
	defer func() { EventTimeout = saved }()

	inner := &testing.T{}
	assert.False(t, AssertForefrontEvents[event](inner, make(chan event), "drained"))
	assert.True(t, inner.Failed())
}
