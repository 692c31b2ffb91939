// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/hopps/uikit/config"
	"codeberg.org/hopps/uikit/server/middleware"
	"codeberg.org/hopps/uikit/server/middleware/limiter"
	"codeberg.org/hopps/uikit/server/middleware/set_request_context"
)

// RegisterMiddleware installs the middleware chain. lim may be nil when rate
// limiting is disabled.
func (router *Router) RegisterMiddleware(lim *limiter.Limiter) {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.NormalizeURL)                // icon names and trailing slashes
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)          // all pages need this

	if config.Global.Response.Compress {
		router.Use(middleware.Compress)
	}

	if lim != nil {
		router.Use(lim.Evaluate)
	}
}
