// gated serves demo gate applications over HTTP.
//
// Usage:
//
//	gated [--addr tcp:localhost:8080] [--body-buffer 512B] [--stream-interval 100ms] [-v]
package main

import (
	"os"

	"github.com/ridge/gate/server"
)

func main() {
	server.Main(os.Args)
}
