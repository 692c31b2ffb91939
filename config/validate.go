// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog/log"
)

// validation errors.
var (
	errUnixSocketWithHostPort = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errInvalidLogLevel        = errors.New("invalid Log.Level")
	errInvalidLogFormat       = errors.New("invalid Log.Format")
	errInvalidRenderCacheSize = errors.New("Icons.RenderCacheSize must be positive")
	errInvalidIconsDir        = errors.New("Icons.Dir is not a directory")
	errInvalidLimiterRate     = errors.New("Limiter.Rate and Limiter.Burst must be positive when the limiter is enabled")
	errNegativeMaxAge         = errors.New("HTTPCache.IconMaxAge cannot be negative")
)

const (
	DefaultHost = "localhost"
	DefaultPort = "8383"
)

var validLogFormats = []string{"console", "json"}

// validateAndSet validates the server configuration and populates some fields.
func (cfg *ServerConfig) validateAndSet() error {
	if cfg.Basic.UnixSocket != "" {
		if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
			return errUnixSocketWithHostPort
		}
	} else {
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = DefaultHost
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = DefaultPort
			log.Info().
				Str("port", cfg.Basic.Port).
				Msg("Using default port")
		}
	}

	if _, ok := logLevels[cfg.Log.Level]; !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	if !slices.Contains(validLogFormats, cfg.Log.Format) {
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	if cfg.Icons.RenderCacheSize <= 0 {
		return errInvalidRenderCacheSize
	}

	if cfg.Icons.Dir != "" {
		info, err := os.Stat(cfg.Icons.Dir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %s", errInvalidIconsDir, cfg.Icons.Dir)
		}
	}

	if cfg.HTTPCache.IconMaxAge < 0 {
		return errNegativeMaxAge
	}

	if cfg.Limiter.Enabled && (cfg.Limiter.Rate <= 0 || cfg.Limiter.Burst <= 0) {
		return errInvalidLimiterRate
	}

	return nil
}
