// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/hopps/uikit/assets"
	"codeberg.org/hopps/uikit/core/rendercache"
	"codeberg.org/hopps/uikit/server/middleware"
	"codeberg.org/hopps/uikit/server/middleware/limiter"
	"codeberg.org/hopps/uikit/server/routes"
	"codeberg.org/hopps/uikit/ui/icon"
)

func newTestRouter(t *testing.T, lim *limiter.Limiter) *Router {
	t.Helper()

	catalog, err := icon.LoadCatalog(context.Background(), assets.FS, assets.IconsDir)
	require.NoError(t, err)

	cache, err := rendercache.New(8, false)
	require.NoError(t, err)

	h, err := routes.New(icon.NewResolver(catalog, zerolog.Nop()), cache, routes.Options{IconMaxAge: time.Minute})
	require.NoError(t, err)

	router := NewRouter(h.ErrorPage)
	router.DefineRoutes(h)
	router.RegisterMiddleware(lim)

	return router
}

func serve(router *Router, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func TestRouterServesPages(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	tests := []struct {
		target      string
		status      int
		contentType string
		location    string
	}{
		{target: "/", status: http.StatusOK, contentType: "text/html; charset=utf-8"},
		{target: "/icons/Bell", status: http.StatusOK, contentType: "image/svg+xml"},
		{target: "/icons/BellIcon.svg?size=lg", status: http.StatusMovedPermanently, location: "/icons/Bell?size=lg"},
		{target: "/healthz", status: http.StatusOK, contentType: "application/json"},
		{target: "/healthz/", status: http.StatusPermanentRedirect, location: "/healthz"},
		{target: "/icons/Nope", status: http.StatusNotFound, contentType: "text/html; charset=utf-8"},
		{target: "/no/such/page", status: http.StatusNotFound, contentType: "text/html; charset=utf-8"},
		{target: "/dev/components", status: http.StatusNotFound, contentType: "text/html; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()

			rr := serve(router, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.status, rr.Code)
			assert.NotEmpty(t, rr.Header().Get("Uikit-Version"))

			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, rr.Header().Get("Content-Type"))
			}

			if tt.location != "" {
				assert.Equal(t, tt.location, rr.Header().Get("Location"))
			}
		})
	}
}

func TestRouterNotFoundPageShowsUserError(t *testing.T) {
	t.Parallel()

	rr := serve(newTestRouter(t, nil), httptest.NewRequest(http.MethodGet, "/icons/Nope", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, "404 Not Found", doc.Find("h1").Text())
	assert.Contains(t, doc.Find("main").Text(), "Icon Nope not found")
}

func TestRouterServerTiming(t *testing.T) {
	t.Parallel()

	rr := serve(newTestRouter(t, nil), httptest.NewRequest(http.MethodGet, "/icons/Gear", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Server-Timing"), "http$GET$")
}

func TestRouterRadioPlainForm(t *testing.T) {
	t.Parallel()

	form := url.Values{"density": {"compact"}}
	req := httptest.NewRequest(http.MethodPost, "http://example.com/radio/density", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "http://example.com/?lang=de")

	rr := serve(newTestRouter(t, nil), req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?lang=de", rr.Header().Get("Location"))
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "uikit-density=compact")
}

func TestRouterLimiter(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, limiter.New(1, 1))

	assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/icons/Bell", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, httptest.NewRequest(http.MethodGet, "/icons/Bell", nil)).Code)

	// Health checks are never limited.
	assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
}

func TestRouterRunsMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	var order []string

	record := func(name string) middleware.Middleware {
		return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
			order = append(order, name)
			next.ServeHTTP(w, r)
		}
	}

	router := NewRouter(func(http.ResponseWriter, *http.Request) {})
	router.Use(record("a"))
	router.Use(record("b"))
	router.HandleFunc("GET /x", func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	})

	serve(router, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}
