// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/hopps/uikit/server/request_context"
	"codeberg.org/hopps/uikit/ui/icon"
	"codeberg.org/hopps/uikit/views"
)

// ErrorPage renders the error recorded on the request context.
func (h *Handlers) ErrorPage(w http.ResponseWriter, r *http.Request) {
	rc := request_context.FromRequest(r)

	data := views.ErrorData{
		Layout:     h.layout(rc, http.StatusText(rc.StatusCode)),
		Error:      rc.RequestError,
		StatusCode: rc.StatusCode,
		Icon: h.icons.Component(icon.Request{
			Name: icon.ExclamationTriangle,
			Size: icon.SizeMD,
		}),
	}

	if err := views.Error(data).Render(r.Context(), w); err != nil {
		log.Err(err).
			Str("request_id", rc.RequestID).
			Msg("Failed to render the error page")
	}
}
