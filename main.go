// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
uikit serves a showcase of its server-rendered UI components: the icon
resolver and the radio group adapter.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/hopps/uikit/assets"
	"codeberg.org/hopps/uikit/config"
	"codeberg.org/hopps/uikit/core/audit"
	"codeberg.org/hopps/uikit/core/rendercache"
	"codeberg.org/hopps/uikit/i18n"
	"codeberg.org/hopps/uikit/server/middleware/limiter"
	"codeberg.org/hopps/uikit/server/router"
	"codeberg.org/hopps/uikit/server/routes"
	"codeberg.org/hopps/uikit/ui/icon"
)

const (
	// Values for http.Server timeouts.
	// ref: gosec: G112
	readHeaderTimeout time.Duration = 15 * time.Second
	readTimeout       time.Duration = 15 * time.Second
	writeTimeout      time.Duration = 10 * time.Second
	idleTimeout       time.Duration = 30 * time.Second

	serverShutdownDeadline time.Duration = 5 * time.Second

	// unixSocketPermissions lets a reverse proxy in the same group connect.
	unixSocketPermissions os.FileMode = 0o660
)

var errChmodSocket = errors.New("failed to change unix socket permissions")

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run orchestrates the application startup and graceful shutdown.
//
//nolint:funlen
func run() error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	i18n.Logger = log.Logger.With().Str("sys", "i18n").Logger()

	if err := i18n.Setup(assets.FS, i18n.Options{
		Dir:               assets.PoDir,
		StrictMissingKeys: config.Global.Internationalization.StrictMissingKeys,
	}); err != nil {
		return fmt.Errorf("failed to initialize i18n engine: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	catalog, err := loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load icons: %w", err)
	}

	resolver := icon.NewResolver(catalog, log.Logger.With().Str("sys", "icon").Logger())

	cache, err := rendercache.New(config.Global.Icons.RenderCacheSize, config.Global.Icons.RenderCacheCompress)
	if err != nil {
		return fmt.Errorf("failed to create render cache: %w", err)
	}

	handlers, err := routes.New(resolver, cache, routes.Options{
		IconMaxAge: config.Global.HTTPCache.IconMaxAge,
		Dev:        config.Global.Development.InDevelopment,
	})
	if err != nil {
		return err
	}

	var lim *limiter.Limiter

	if config.Global.Limiter.Enabled {
		lim = limiter.New(config.Global.Limiter.Rate, config.Global.Limiter.Burst)

		go lim.Run(ctx)
	}

	router := router.NewRouter(handlers.ErrorPage)
	router.DefineRoutes(handlers)
	router.RegisterMiddleware(lim)

	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		listener, err := chooseListener(ctx)
		if err != nil {
			serverErrors <- fmt.Errorf("failed to create listener: %w", err)

			return
		}

		serverErrors <- server.Serve(listener)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case s := <-quit:
		log.Info().Str("signal", s.String()).Msg("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownDeadline)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

// loadCatalog reads the icon catalog from config.Global.Icons.Dir, or from
// the embedded assets when no directory is configured.
func loadCatalog(ctx context.Context) (*icon.Catalog, error) {
	var (
		fsys fs.FS = assets.FS
		dir        = assets.IconsDir
	)

	if config.Global.Icons.Dir != "" {
		fsys, dir = os.DirFS(config.Global.Icons.Dir), "."
	}

	span := audit.Span{Kind: audit.KindCatalog, URL: config.Global.Icons.Dir}
	ctx = span.Begin(ctx)

	catalog, err := icon.LoadCatalog(ctx, fsys, dir)

	span.End()
	span.Error = err

	if catalog != nil {
		span.Size = catalog.Len()
	}

	span.Log()

	return catalog, err
}

func chooseListener(ctx context.Context) (net.Listener, error) {
	if socket := config.Global.Basic.UnixSocket; socket != "" {
		unixListener, err := (&net.ListenConfig{}).Listen(ctx, "unix", socket)
		if err != nil {
			return nil, fmt.Errorf("failed to start Unix socket listener on %v: %w", socket, err)
		}

		if err := os.Chmod(socket, unixSocketPermissions); err != nil {
			_ = unixListener.Close()

			return nil, fmt.Errorf("%w: %w", errChmodSocket, err)
		}

		log.Info().
			Str("address", socket).
			Msg("Listening on Unix domain socket")

		return unixListener, nil
	}

	addr := net.JoinHostPort(config.Global.Basic.Host, config.Global.Basic.Port)

	tcpListener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	addr = tcpListener.Addr().String()

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		_ = tcpListener.Close()

		return nil, fmt.Errorf("failed to parse listener address %q: %w", addr, err)
	}

	log.Info().
		Str("address", addr).
		Str("port", port).
		Str("url", fmt.Sprintf("http://uikit.localhost:%v/", port)).
		Msg("Listening on address")

	return tcpListener, nil
}
