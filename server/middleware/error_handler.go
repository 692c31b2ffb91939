// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"net/http/httptest"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog/log"

	"codeberg.org/hopps/uikit/config"
	"codeberg.org/hopps/uikit/core/audit"
	"codeberg.org/hopps/uikit/server/request_context"
)

// Middleware handles r and decides whether to call next.
type Middleware func(w http.ResponseWriter, r *http.Request, next http.Handler)

// Wrap binds m to next.
func Wrap(m Middleware, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m(w, r, next)
	}
}

// WithServerTiming attaches a timing collector to the request context. The
// spans of CatchError and the icon renderer become Server-Timing metrics.
func WithServerTiming(w http.ResponseWriter, r *http.Request, next http.Handler) {
	servertiming.Middleware(next, nil).ServeHTTP(w, r)
}

// HandlerWithError is an http.HandlerFunc that reports failure.
type HandlerWithError func(w http.ResponseWriter, r *http.Request) error

// ErrorPage writes the error page for the RequestContext of r.
// The status line has already been written when it is called.
type ErrorPage func(w http.ResponseWriter, r *http.Request)

// CatchError buffers the output of handler and decides on the final response.
//
//   - An error returned without an error status (< 400) is an internal error:
//     the buffered output is discarded and errorPage renders a 500.
//   - A 404 written by the handler is replaced by errorPage as well.
//   - Anything else is copied through unchanged.
//
// The request is then logged through an audit span unless
// config.Global.ShouldSkipServerLogging excludes its path.
func CatchError(errorPage ErrorPage, handler HandlerWithError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Kind:      audit.KindRequest,
			RequestID: ctx.RequestID,
			Method:    r.Method,
			URL:       r.URL.String(),
		}

		_ = span.Begin(r.Context())
		defer span.End()

		recorder := httptest.NewRecorder()

		ctx.RequestError = handler(recorder, r)

		counter := &countingWriter{ResponseWriter: w}

		switch {
		case (ctx.RequestError != nil && recorder.Code < http.StatusBadRequest) || recorder.Code == http.StatusNotFound:
			if recorder.Code == http.StatusNotFound {
				ctx.StatusCode = http.StatusNotFound
			} else {
				ctx.StatusCode = http.StatusInternalServerError
			}

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
			counter.WriteHeader(ctx.StatusCode)
			errorPage(counter, r)

		default:
			ctx.StatusCode = recorder.Code

			maps.Copy(w.Header(), recorder.Header())
			counter.WriteHeader(recorder.Code)

			if _, err := recorder.Body.WriteTo(counter); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.StatusCode = ctx.StatusCode
		span.Size = counter.n
		span.Error = ctx.RequestError

		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}

// countingWriter counts body bytes for the request log.
type countingWriter struct {
	http.ResponseWriter
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.ResponseWriter.Write(p)
	c.n += n

	return n, err
}
