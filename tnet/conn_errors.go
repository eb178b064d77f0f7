package tnet

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// IsClosedConnectionError returns if the passed error is "closed network connection".
func IsClosedConnectionError(err error) bool {
	return errors.Is(err, net.ErrClosed)
}

// IsPeerGoneError returns if the passed error means that the remote side of a
// connection has gone away.
//
// Such errors happen every time a client disconnects in the middle of a
// response and are not worth more than a debug message.
func IsPeerGoneError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		IsClosedConnectionError(err)
}
