// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// compressMinSize skips responses too small to benefit, like single icons.
const compressMinSize = 1024

var gzipWrapper = mustGzipWrapper()

func mustGzipWrapper() func(http.Handler) http.HandlerFunc {
	wrapper, err := gzhttp.NewWrapper(
		gzhttp.MinSize(compressMinSize),
		gzhttp.ContentTypes([]string{"text/html", "image/svg+xml", "application/json", "text/plain"}),
	)
	if err != nil {
		panic(err)
	}

	return wrapper
}

// Compress gzip encodes responses for clients that accept it.
func Compress(w http.ResponseWriter, r *http.Request, next http.Handler) {
	gzipWrapper(next).ServeHTTP(w, r)
}
