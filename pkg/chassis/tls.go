package chassis

import (
	"crypto/tls"
	"fmt"

	"github.com/hazyhaar/ementa/pkg/mcpquic"
)

// nextProtos lists every ALPN the chassis accepts on UDP.
var nextProtos = []string{"h3", mcpquic.ALPN}

// TLSConfig loads certFile/keyFile, or generates a self-signed development
// certificate when either is empty.
func TLSConfig(certFile, keyFile string) (cfg *tls.Config, selfSigned bool, err error) {
	var cert tls.Certificate
	if certFile != "" && keyFile != "" {
		cert, err = tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, false, fmt.Errorf("load TLS cert: %w", err)
		}
	} else {
		cert, err = mcpquic.SelfSignedCert("Ementa Dev")
		if err != nil {
			return nil, false, fmt.Errorf("generate dev cert: %w", err)
		}
		selfSigned = true
	}
	return &tls.Config{
		MinVersion:   tls.VersionTLS13,
		Certificates: []tls.Certificate{cert},
		NextProtos:   nextProtos,
	}, selfSigned, nil
}
