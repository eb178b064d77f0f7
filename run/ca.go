package run

import (
	// CA certificates for TLS connections made from binaries running in
	// empty containers
	_ "golang.org/x/crypto/x509roots/fallback"
)
