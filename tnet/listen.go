package tnet

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/ridge/must/v2"
)

const keepAlive = 3 * time.Minute

// ParseAddress splits a listening address into network and address parts.
//
// If the address string starts with "tcp:", the rest is interpreted as
// [address]:port on which to open a TCP listening socket.
//
// If the address string starts with "unix:", the rest is interpreted the path
// to a UNIX domain socket to listen on.
//
// If neither prefix is present, "tcp:" is assumed.
func ParseAddress(address string) (network, addr string) {
	proto, rest, ok := strings.Cut(address, ":")
	if ok {
		switch proto {
		case "unix", "tcp":
			return proto, rest
		}
	}
	return "tcp", address
}

// Listen installs a listener on the specified address, see ParseAddress.
// TCP keep-alive is enabled for TCP listeners.
func Listen(address string) (net.Listener, error) {
	lc := net.ListenConfig{KeepAlive: keepAlive}
	network, addr := ParseAddress(address)
	return lc.Listen(context.Background(), network, addr)
}

// ListenOnRandomPort selects a random local TCP port and installs a listener on
// it with TCP keep-alive enabled
func ListenOnRandomPort() net.Listener {
	return must.OK1(Listen("localhost:"))
}
