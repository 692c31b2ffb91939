// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/hopps/uikit/config"
	"codeberg.org/hopps/uikit/server/routes"
)

// DefineRoutes registers every route served by h.
func (router *Router) DefineRoutes(h *routes.Handlers) {
	// /{$} matches only the root path.
	router.HandleError("GET /{$}", h.IndexPage)

	router.HandleError("GET /icons/{name}", h.IconSVG)
	router.HandleError("POST /radio/{group}", h.RadioChange)
	router.HandleError("GET /healthz", h.Healthz)

	if config.Global.Development.InDevelopment {
		router.HandleError("GET /dev/components", h.ComponentsPage)
		registerDebugRoutes(router)
	}

	// Everything else gets the themed 404 page.
	router.HandleError("/", func(w http.ResponseWriter, r *http.Request) error {
		http.NotFound(w, r)

		return nil
	})
}

var (
	flightRecorder     = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})
	flightRecorderOnce sync.Once
)

func registerDebugRoutes(router *Router) {
	flightRecorderOnce.Do(func() {
		if err := flightRecorder.Start(); err != nil {
			log.Warn().Err(err).Msg("Flight recorder unavailable")
		}
	})

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = flightRecorder.WriteTo(w)
	})
}
