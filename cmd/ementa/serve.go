package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazyhaar/ementa/pkg/api"
	"github.com/hazyhaar/ementa/pkg/chassis"
	"github.com/hazyhaar/ementa/pkg/mcpquic"
	"github.com/hazyhaar/ementa/pkg/menu"
	"github.com/hazyhaar/ementa/pkg/speech"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (and MCP over QUIC with transport: quic or mcp_addr)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Addr = addr
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	logger := a.logger
	reg, err := a.registry()
	if err != nil {
		return err
	}
	logger.Info("catalogs loaded", "count", reg.Count(), "dishes", reg.TotalDishes())

	s := a.cfg.Speech
	mcpSrv := api.NewMCPServer(reg, version, logger)
	router := api.NewRouter(reg, api.Options{
		Speaker:   speech.New(s.Enabled, s.Command, s.Voice, s.Rate),
		Export:    a.cfg.Export.options(),
		MCPServer: mcpSrv,
		Logger:    logger,
	})

	// SIGHUP: reload catalogs. SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go a.reloadOnHUP(ctx, reg)

	switch a.cfg.Transport {
	case "quic":
		srv, err := chassis.New(chassis.Config{
			Addr:      a.cfg.Addr,
			CertFile:  a.cfg.TLS.CertFile,
			KeyFile:   a.cfg.TLS.KeyFile,
			Handler:   router,
			MCPServer: mcpSrv,
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start(ctx) }()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)

	default:
		if a.cfg.MCPAddr != "" {
			ln, err := a.mcpListener(mcpSrv)
			if err != nil {
				return err
			}
			defer ln.Close()
			logger.Info("mcp over quic listening", "addr", ln.Addr().String())
			go func() {
				if err := ln.Serve(ctx); err != nil && ctx.Err() == nil {
					logger.Error("mcp listener stopped", "error", err)
				}
			}()
		}

		srv := &http.Server{
			Addr:              a.cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			logger.Info("ementa listening", "addr", a.cfg.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// mcpListener opens the standalone MCP-over-QUIC listener on mcp_addr,
// with the configured certificate or a self-signed one.
func (a *app) mcpListener(mcpSrv *server.MCPServer) (*mcpquic.Listener, error) {
	var cert tls.Certificate
	var err error
	if a.cfg.TLS.CertFile != "" && a.cfg.TLS.KeyFile != "" {
		cert, err = tls.LoadX509KeyPair(a.cfg.TLS.CertFile, a.cfg.TLS.KeyFile)
	} else {
		cert, err = mcpquic.SelfSignedCert("Ementa Dev")
	}
	if err != nil {
		return nil, fmt.Errorf("mcp listener cert: %w", err)
	}
	ln, err := mcpquic.NewListener(a.cfg.MCPAddr, mcpquic.ServerTLSConfig(cert), mcpSrv, a.logger)
	if err != nil {
		return nil, fmt.Errorf("mcp listen %s: %w", a.cfg.MCPAddr, err)
	}
	return ln, nil
}

func (a *app) reloadOnHUP(ctx context.Context, reg *menu.Registry) {
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)

	for {
		select {
		case <-sighup:
			a.logger.Info("SIGHUP received, reloading catalogs")
			if err := reg.Reload(); err != nil {
				a.logger.Error("reload failed, keeping previous catalogs", "error", err)
				continue
			}
			a.logger.Info("catalogs reloaded", "count", reg.Count(), "dishes", reg.TotalDishes())
		case <-ctx.Done():
			return
		}
	}
}
