// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"net/http"

	"codeberg.org/hopps/uikit/config"
	"codeberg.org/hopps/uikit/core/rendercache"
	"codeberg.org/hopps/uikit/ui/icon"
)

type healthStatus struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	IconsDeclared int               `json:"iconsDeclared"`
	IconsResolved int               `json:"iconsResolved"`
	RenderCache   rendercache.Stats `json:"renderCache"`
}

// Healthz reports liveness with icon and render cache statistics.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) error {
	status := healthStatus{
		Status:        "ok",
		Version:       config.BuildVersion,
		IconsDeclared: len(icon.Names()),
		IconsResolved: len(h.icons.Resolved()),
		RenderCache:   h.cache.Stats(),
	}

	w.Header().Set("Content-Type", "application/json")

	return json.NewEncoder(w).Encode(status)
}
