// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"
	"sync/atomic"

	"codeberg.org/hopps/uikit/config"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	//
	// Uikit-Version and Uikit-Revision are added dynamically in SetResponseHeaders.
	baseHeaders = http.Header{
		"Referrer-Policy":         {"same-origin"},
		"X-Frame-Options":         {"DENY"},
		"X-Content-Type-Options":  {"nosniff"},
		"Permissions-Policy":      {strings.Join(defaultPermissionsPolicy, ", ")},
		"Content-Security-Policy": {strings.Join(csp, "; ") + ";"},
	}

	// Inline styles are needed by the page stylesheet and the style attribute
	// of components. htmx is optional and served from the same origin.
	csp = []string{
		"base-uri 'self'",
		"default-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"script-src 'self'",
		"connect-src 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}

	defaultPermissionsPolicy = []string{
		"camera=()",
		"display-capture=()",
		"geolocation=()",
		"microphone=()",
		"payment=()",
		"usb=()",
	}
)

// SetResponseHeaders adds default headers to HTTP responses.
//
// Referrer-Policy is same-origin rather than no-referrer so that plain form
// posts can be redirected back to the page they came from.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	if config.Global.Development.InDevelopment {
		invalidateCacheInDevelopment(headers)
	}

	headers.Set("Cache-Control", cacheControl(r.URL.Path))
	headers.Set("Uikit-Version", config.BuildVersion)
	headers.Set("Uikit-Revision", config.Global.Build.Revision())

	next.ServeHTTP(w, r)
}

var firstDevResponse atomic.Bool

// invalidateCacheInDevelopment clears the browser cache on the first response
// after a restart.
func invalidateCacheInDevelopment(headers http.Header) {
	if firstDevResponse.CompareAndSwap(false, true) {
		headers.Set("Clear-Site-Data", `"cache"`)
	}
}

// cacheControl is the default Cache-Control for path. Icon handlers replace it
// with a max-age from config.
func cacheControl(path string) string {
	switch {
	case strings.HasPrefix(path, "/icons/"):
		return "public, no-cache"
	case path == "/healthz":
		return "no-store"
	default:
		return "private, no-cache"
	}
}
