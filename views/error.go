// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"codeberg.org/hopps/uikit/i18n"
)

// ErrorData describes a failed request.
type ErrorData struct {
	Layout     LayoutData
	Error      error
	StatusCode int
	// Icon is shown next to the heading and may be nil.
	Icon templ.Component
}

// statusTitles are the translatable headings of the statuses the server produces.
var statusTitles = map[int]i18n.MsgKey{
	http.StatusBadRequest:          "Bad Request",
	http.StatusNotFound:            "Not Found",
	http.StatusMethodNotAllowed:    "Method Not Allowed",
	http.StatusTooManyRequests:     "Too Many Requests",
	http.StatusInternalServerError: "Internal Server Error",
}

func statusTitle(ctx context.Context, code int) string {
	if title, ok := statusTitles[code]; ok {
		return title.Tr(ctx)
	}

	return http.StatusText(code)
}

func errorMessage(ctx context.Context, data ErrorData) string {
	var userErr *i18n.UserError
	if errors.As(data.Error, &userErr) {
		return userErr.Error()
	}

	if data.StatusCode == http.StatusNotFound {
		return i18n.Tr(ctx, "The page you are looking for does not exist.")
	}

	return i18n.Tr(ctx, "Something went wrong while handling your request.")
}
