// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	// Default Cache-Control max-age for standalone icons, in days.
	defaultIconMaxAgeDays = 30

	defaultLimiterRate  = 20
	defaultLimiterBurst = 40
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	// Host and Port are filled in by validateAndSet unless a unix socket is used.
	cfg.Basic.Host = ""
	cfg.Basic.Port = ""

	cfg.Icons.Dir = ""
	cfg.Icons.RenderCacheSize = 256
	cfg.Icons.RenderCacheCompress = true

	cfg.HTTPCache.IconMaxAge = defaultIconMaxAgeDays * 24 * time.Hour

	cfg.Response.Compress = true

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Limiter.Enabled = false
	cfg.Limiter.Rate = defaultLimiterRate
	cfg.Limiter.Burst = defaultLimiterBurst

	cfg.Internationalization.StrictMissingKeys = false
}
