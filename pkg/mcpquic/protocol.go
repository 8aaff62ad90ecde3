// Package mcpquic carries MCP JSON-RPC over a single bidirectional QUIC
// stream. Connections negotiate ALPN "ementa-mcp-v1"; the client then opens
// one stream, writes the 4-byte preamble "EMN1" and exchanges
// newline-delimited JSON-RPC messages.
package mcpquic

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net"
	"time"

	"github.com/quic-go/quic-go"
)

const (
	ALPN             = "ementa-mcp-v1"
	Magic            = "EMN1"
	MaxMessageSize   = 4 * 1024 * 1024
	HandshakeTimeout = 10 * time.Second
	IdleTimeout      = 5 * time.Minute
	KeepAlive        = 30 * time.Second
)

// Stream and connection error codes sent to the peer.
const (
	StreamErrorProtocolConfusion quic.StreamErrorCode = 0x02

	ConnErrorNoError           quic.ApplicationErrorCode = 0x00
	ConnErrorUnsupportedALPN   quic.ApplicationErrorCode = 0x01
	ConnErrorProtocolViolation quic.ApplicationErrorCode = 0x03
	ConnErrorDisabled          quic.ApplicationErrorCode = 0x10
)

var (
	ErrInvalidMagic    = errors.New("mcpquic: invalid preamble")
	ErrUnsupportedALPN = errors.New("mcpquic: " + ALPN + " not negotiated")
	ErrNotConnected    = errors.New("mcpquic: client not connected")
)

// ReadMagic consumes the stream preamble and checks it.
func ReadMagic(r io.Reader) error {
	got := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, got); err != nil {
		return fmt.Errorf("read preamble: %w", err)
	}
	if !bytes.Equal(got, []byte(Magic)) {
		return fmt.Errorf("%w: got %q", ErrInvalidMagic, got)
	}
	return nil
}

// WriteMagic sends the stream preamble. It must be the first bytes written.
func WriteMagic(w io.Writer) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return fmt.Errorf("write preamble: %w", err)
	}
	return nil
}

// QUICConfig returns the transport settings shared by client and server.
func QUICConfig() *quic.Config {
	return &quic.Config{
		HandshakeIdleTimeout:       HandshakeTimeout,
		MaxStreamReceiveWindow:     MaxMessageSize * 2,
		MaxConnectionReceiveWindow: MaxMessageSize * 8,
		MaxIdleTimeout:             IdleTimeout,
		KeepAlivePeriod:            KeepAlive,
	}
}

// ClientTLSConfig offers only the MCP ALPN. insecure skips certificate
// verification, for development servers with self-signed certificates.
func ClientTLSConfig(insecure bool) *tls.Config {
	return &tls.Config{
		NextProtos:         []string{ALPN},
		MinVersion:         tls.VersionTLS13,
		InsecureSkipVerify: insecure,
	}
}

// ServerTLSConfig wraps cert for a standalone MCP listener.
func ServerTLSConfig(cert tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		NextProtos:   []string{ALPN},
		MinVersion:   tls.VersionTLS13,
	}
}

// SelfSignedCert generates an ECDSA P-256 certificate for localhost,
// valid for one year. Development only.
func SelfSignedCert(org string) (tls.Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("generate key: %w", err)
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("generate serial: %w", err)
	}

	now := time.Now()
	tmpl := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{org}, CommonName: "localhost"},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("::1")},
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("create certificate: %w", err)
	}
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}, nil
}
