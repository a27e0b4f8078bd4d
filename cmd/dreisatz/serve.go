package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/api"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/certs"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/classification"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solver service",
		Long: `Serve POST /api/dreisatz/solve together with the history endpoints.

The server shuts down gracefully on SIGINT or SIGTERM. When solver.hints_file
is set, edits to the file are applied without a restart.`,
		RunE: a.runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default from server.addr, :8080)")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed certificate for localhost")

	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := a.cfg
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if useTLS, _ := cmd.Flags().GetBool("tls"); useTLS {
		cfg.Server.TLS = true
	}

	eng, detector, err := newEngine(cfg)
	if err != nil {
		return err
	}

	var opts []api.Option
	if cfg.Cache.Enabled {
		opts = append(opts, api.WithCache(cfg.Cache.TTL))
	}
	if cfg.History.Enabled {
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts = append(opts, api.WithHistory(store))
		if cfg.Cache.UseHistory {
			opts = append(opts, api.WithStoredSolutions())
		}
	}

	handler := api.New(eng, opts...)
	defer handler.Close()

	if cfg.Solver.HintsFile != "" {
		watcher, err := classification.NewHintWatcher(cfg.Solver.HintsFile, detector,
			classification.DefaultHints(), classification.DefaultDebounce)
		if err != nil {
			return err
		}
		watcher.OnReload(handler.InvalidateSolutions)
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to watch hints file: %w", err)
		}
		defer watcher.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if cfg.Server.TLS {
		manager := certs.NewFileManager(cfg.Server.CertDir)
		cert, err := manager.GetOrCreateCertificate()
		if err != nil {
			return fmt.Errorf("failed to prepare TLS certificate: %w", err)
		}
		server.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		slog.Info("Serving HTTPS with local certificate", "cert", manager.CertFile())
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server",
			"addr", cfg.Server.Addr,
			"history", cfg.History.Enabled,
			"cache", cfg.Cache.Enabled,
			"tls", cfg.Server.TLS,
			"hints", detector.HintCount())
		if server.TLSConfig != nil {
			errCh <- server.ListenAndServeTLS("", "")
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
