// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"
)

const iconsPrefix = "/icons/"

// NormalizeURL redirects to the canonical form of a URL:
//  1. trailing slashes are removed, except for the root;
//  2. icon paths drop a ".svg" extension and the "Icon" catalog suffix.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if canonical, ok := canonicalIconPath(r.URL.Path); ok {
		redirectToPath(w, r, canonical, http.StatusMovedPermanently)

		return
	}

	if r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/") {
		trimmed := strings.TrimRight(r.URL.Path, "/")
		if trimmed == "" {
			trimmed = "/"
		}

		redirectToPath(w, r, trimmed, http.StatusPermanentRedirect)

		return
	}

	next.ServeHTTP(w, r)
}

// canonicalIconPath reports the canonical form of an icon path that is not canonical.
func canonicalIconPath(path string) (string, bool) {
	name, ok := strings.CutPrefix(path, iconsPrefix)
	if !ok || name == "" {
		return "", false
	}

	trimmed := strings.TrimSuffix(name, ".svg")
	// "Icon" alone is a name in its own right.
	if trimmed != "Icon" {
		trimmed = strings.TrimSuffix(trimmed, "Icon")
	}

	if trimmed == name || trimmed == "" {
		return "", false
	}

	return iconsPrefix + trimmed, true
}

// redirectToPath redirects to path on the same host, keeping the query.
func redirectToPath(w http.ResponseWriter, r *http.Request, path string, code int) {
	target := *r.URL
	target.Path = path
	target.RawPath = ""
	target.Scheme = ""
	target.Host = ""

	// A leading "//" would make the redirect protocol relative.
	if strings.HasPrefix(target.Path, "//") {
		target.Path = "/" + strings.TrimLeft(target.Path, "/")
	}

	http.Redirect(w, r, target.String(), code)
}
