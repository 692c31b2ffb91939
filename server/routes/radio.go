// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"context"
	"net/http"

	"codeberg.org/hopps/uikit/core/cookie"
)

// RadioChange stores the value posted by a preference group.
//
// htmx clients are asked to refresh the page since theme, density and
// language all affect the whole document.
func (h *Handlers) RadioChange(w http.ResponseWriter, r *http.Request) error {
	p, ok := h.preference(r.PathValue("group"))
	if !ok {
		http.NotFound(w, r)

		return nil
	}

	p.group.ChangeHandler(func(_ context.Context, value string) error {
		cookie.Set(w, r, p.cookie, value)
		w.Header().Set("HX-Refresh", "true")

		return nil
	}).ServeHTTP(w, r)

	return nil
}
