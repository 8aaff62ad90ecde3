// Package chassis serves the Ementa API over TLS on one port:
//
//   - TCP: HTTP/1.1 and HTTP/2
//   - UDP: QUIC, demultiplexed by ALPN into HTTP/3 ("h3") and MCP
//     ("ementa-mcp-v1")
//
// HTTP responses advertise HTTP/3 through Alt-Svc. Without a configured
// certificate a self-signed one is generated.
package chassis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/hazyhaar/ementa/pkg/mcpquic"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"
)

// Config holds configuration for the chassis server.
type Config struct {
	Addr      string      // TCP and UDP listen address, e.g. ":8443"
	TLS       *tls.Config // nil loads CertFile/KeyFile or self-signs
	CertFile  string
	KeyFile   string
	Handler   http.Handler
	MCPServer *server.MCPServer // nil disables MCP over QUIC
	Logger    *slog.Logger
}

type Server struct {
	addr    string
	logger  *slog.Logger
	tlsCfg  *tls.Config
	handler http.Handler
	mcp     *mcpquic.Handler

	mu     sync.Mutex
	tcp    *http.Server
	h3     *http3.Server
	quicLn *quic.Listener
}

func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Handler == nil {
		return nil, errors.New("chassis: nil handler")
	}

	tlsCfg := cfg.TLS
	if tlsCfg == nil {
		var selfSigned bool
		var err error
		tlsCfg, selfSigned, err = TLSConfig(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, err
		}
		cfg.Logger.Info("TLS ready", "self_signed", selfSigned)
	}

	s := &Server{
		addr:    cfg.Addr,
		logger:  cfg.Logger,
		tlsCfg:  tlsCfg,
		handler: cfg.Handler,
	}
	if cfg.MCPServer != nil {
		s.mcp = mcpquic.NewHandler(cfg.MCPServer, cfg.Logger)
	}
	return s, nil
}

// Headers wraps next with the security headers and the Alt-Svc
// advertisement served on every response.
func Headers(addr string, next http.Handler) http.Handler {
	_, port, _ := net.SplitHostPort(addr)
	if port == "" {
		port = "443"
	}
	altSvc := fmt.Sprintf(`h3=":%s"; ma=86400`, port)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Alt-Svc", altSvc)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// Start listens on TCP and UDP and blocks until ctx is done or a listener
// fails.
func (s *Server) Start(ctx context.Context) error {
	handler := Headers(s.addr, s.handler)

	tcpTLS := s.tlsCfg.Clone()
	tcpTLS.NextProtos = []string{"h2", "http/1.1"}
	tcpLn, err := tls.Listen("tcp", s.addr, tcpTLS)
	if err != nil {
		return fmt.Errorf("TCP listen: %w", err)
	}
	quicLn, err := quic.ListenAddr(s.addr, s.tlsCfg, mcpquic.QUICConfig())
	if err != nil {
		tcpLn.Close()
		return fmt.Errorf("QUIC listen: %w", err)
	}

	s.mu.Lock()
	s.tcp = &http.Server{Handler: handler}
	s.h3 = &http3.Server{Handler: handler}
	s.quicLn = quicLn
	s.mu.Unlock()

	s.logger.Info("chassis listening", "addr", s.addr, "mcp_quic", s.mcp != nil)

	errCh := make(chan error, 2)
	go func() {
		if err := s.tcp.Serve(tcpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("TCP: %w", err)
		}
	}()
	go func() {
		if err := s.acceptQUIC(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) acceptQUIC(ctx context.Context) error {
	for {
		conn, err := s.quicLn.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, quic.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("QUIC accept: %w", err)
		}

		switch alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn {
		case "h3":
			go func() {
				if err := s.h3.ServeQUICConn(conn); err != nil {
					s.logger.Debug("HTTP/3 conn done", "remote", conn.RemoteAddr(), "error", err)
				}
			}()
		case mcpquic.ALPN:
			if s.mcp == nil {
				conn.CloseWithError(mcpquic.ConnErrorDisabled, "MCP not enabled")
				continue
			}
			go s.mcp.ServeConn(ctx, conn)
		default:
			s.logger.Warn("unknown ALPN", "alpn", alpn, "remote", conn.RemoteAddr())
			conn.CloseWithError(mcpquic.ConnErrorUnsupportedALPN, "unsupported ALPN: "+alpn)
		}
	}
}

// Stop shuts down both listeners.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.tcp != nil {
		errs = append(errs, s.tcp.Shutdown(ctx))
	}
	if s.quicLn != nil {
		errs = append(errs, s.quicLn.Close())
	}
	if s.h3 != nil {
		errs = append(errs, s.h3.Close())
	}
	s.logger.Info("chassis stopped")
	return errors.Join(errs...)
}
