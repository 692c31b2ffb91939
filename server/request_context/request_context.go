// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package request_context provides per-request state for HTTP handlers.

This package is separate because Go disallows a cyclic import graph.
*/
package request_context

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"codeberg.org/hopps/uikit/core/cookie"
	"codeberg.org/hopps/uikit/core/idgen"
	"codeberg.org/hopps/uikit/i18n"
)

// RequestContext carries request-scoped data through the middleware chain.
type RequestContext struct {
	// RequestID is an identifier for tracing requests.
	RequestID string

	// RequestError is set by middleware.CatchError when a handler fails,
	// which replaces the response with an error page.
	RequestError error

	// HTTP status code to be sent in the response. Defaults to 200 OK.
	StatusCode int

	// T is the negotiated display language.
	T language.Tag

	// Stored preferences, possibly empty.
	Theme   string
	Density string
}

type requestContextKeyType struct{}

var requestContextKey = requestContextKeyType{}

// WithRequestContext attaches a fresh RequestContext and the display language
// for r to ctx.
func WithRequestContext(ctx context.Context, r *http.Request) context.Context {
	ctx = i18n.WithRequest(ctx, r)

	rc := RequestContext{
		RequestID:  idgen.Make(),
		StatusCode: http.StatusOK,
		T:          i18n.TagFrom(ctx),
		Theme:      cookie.Get(r, cookie.ThemeCookie),
		Density:    cookie.Get(r, cookie.DensityCookie),
	}

	return context.WithValue(ctx, requestContextKey, &rc)
}

// FromContext extracts the RequestContext from ctx, always returning
// a valid pointer.
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestContextKey).(*RequestContext); ok {
		return rc
	}

	return &RequestContext{StatusCode: http.StatusOK}
}

// FromRequest is FromContext(r.Context()).
func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}
