// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"context"
	"errors"
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
	"github.com/tidwall/gjson"

	"codeberg.org/hopps/uikit/assets"
	"codeberg.org/hopps/uikit/core/cookie"
	"codeberg.org/hopps/uikit/core/rendercache"
	"codeberg.org/hopps/uikit/i18n"
	"codeberg.org/hopps/uikit/server/request_context"
	"codeberg.org/hopps/uikit/ui/icon"
)

func newHandlers(t *testing.T) *Handlers {
	t.Helper()

	catalog, err := icon.LoadCatalog(context.Background(), assets.FS, assets.IconsDir)
	require.NoError(t, err)

	cache, err := rendercache.New(16, true)
	require.NoError(t, err)

	h, err := New(icon.NewResolver(catalog, zerolog.Nop()), cache, Options{IconMaxAge: time.Hour})
	require.NoError(t, err)

	return h
}

func newRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	return req.WithContext(request_context.WithRequestContext(req.Context(), req))
}

func parse(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)

	return doc
}

func TestNewRequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := New(nil, nil, Options{})
	require.ErrorIs(t, err, errNilDependency)
}

func TestIconSVG(t *testing.T) {
	t.Parallel()

	h := newHandlers(t)

	req := newRequest(http.MethodGet, "/icons/Bell?size=md&class=text-red", "")
	req.SetPathValue("name", "Bell")

	rr := httptest.NewRecorder()
	require.NoError(t, h.IconSVG(rr, req))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))

	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)

	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, "<svg"))
	assert.Contains(t, body, `width="24"`)
	assert.Contains(t, body, `class="text-red"`)
	assert.Contains(t, body, `xmlns="http://www.w3.org/2000/svg"`)

	// A revalidation hits the render cache and answers 304.
	req = newRequest(http.MethodGet, "/icons/Bell?size=md&class=text-red", "")
	req.SetPathValue("name", "Bell")
	req.Header.Set("If-None-Match", `W/"other", `+etag)

	rr = httptest.NewRecorder()
	require.NoError(t, h.IconSVG(rr, req))

	assert.Equal(t, http.StatusNotModified, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, rendercache.Stats{Entries: 1, Hits: 1, Misses: 1}, h.cache.Stats())
}

func TestIconSVGFromBundle(t *testing.T) {
	t.Parallel()

	h := newHandlers(t)

	req := newRequest(http.MethodGet, "/icons/ChevronDown", "")
	req.SetPathValue("name", "ChevronDown")

	rr := httptest.NewRecorder()
	require.NoError(t, h.IconSVG(rr, req))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `width="15"`)
}

func TestIconSVGUnknown(t *testing.T) {
	t.Parallel()

	h := newHandlers(t)

	for _, name := range []string{"Nope", "bell", "BellIcon"} {
		req := newRequest(http.MethodGet, "/icons/"+name, "")
		req.SetPathValue("name", name)

		rr := httptest.NewRecorder()
		err := h.IconSVG(rr, req)

		var userErr *i18n.UserError
		require.ErrorAs(t, err, &userErr, name)
		assert.Equal(t, "Icon "+name+" not found", userErr.Error())
		assert.Equal(t, http.StatusNotFound, rr.Code)
	}
}

func TestETagMatches(t *testing.T) {
	t.Parallel()

	assert.True(t, etagMatches(`"a"`, `"a"`))
	assert.True(t, etagMatches(`W/"a"`, `"a"`))
	assert.True(t, etagMatches(`"b", "a"`, `"a"`))
	assert.True(t, etagMatches(`*`, `"a"`))
	assert.False(t, etagMatches(``, `"a"`))
	assert.False(t, etagMatches(`"b"`, `"a"`))
}

func TestRadioChange(t *testing.T) {
	t.Parallel()

	h := newHandlers(t)

	req := newRequest(http.MethodPost, "/radio/theme", url.Values{"theme": {"dark"}}.Encode())
	req.SetPathValue("group", "theme")
	req.Header.Set("HX-Request", "true")

	rr := httptest.NewRecorder()
	require.NoError(t, h.RadioChange(rr, req))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "true", rr.Header().Get("HX-Refresh"))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, string(cookie.ThemeCookie), cookies[0].Name)
	assert.Equal(t, "dark", cookies[0].Value)
}

func TestRadioChangeRejects(t *testing.T) {
	t.Parallel()

	h := newHandlers(t)

	tests := []struct {
		name  string
		group string
		form  url.Values
		want  int
	}{
		{name: "unknown group", group: "font", form: url.Values{"font": {"serif"}}, want: http.StatusNotFound},
		{name: "unknown value", group: "density", form: url.Values{"density": {"huge"}}, want: http.StatusBadRequest},
		{name: "wrong field", group: "density", form: url.Values{"theme": {"dark"}}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := newRequest(http.MethodPost, "/radio/"+tt.group, tt.form.Encode())
			req.SetPathValue("group", tt.group)

			rr := httptest.NewRecorder()
			require.NoError(t, h.RadioChange(rr, req))

			assert.Equal(t, tt.want, rr.Code)
			assert.Empty(t, rr.Result().Cookies())
		})
	}
}

func TestIndexPage(t *testing.T) {
	t.Parallel()

	h := newHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: string(cookie.ThemeCookie), Value: "dark"})
	req = req.WithContext(request_context.WithRequestContext(req.Context(), req))

	rr := httptest.NewRecorder()
	require.NoError(t, h.IndexPage(rr, req))

	doc := parse(t, rr)

	assert.Equal(t, "dark", doc.Find("html").AttrOr("data-theme", ""))
	assert.Equal(t, len(h.icons.Resolved()), doc.Find("a.tile svg").Length())
	assert.Equal(t, "/icons/Bell", doc.Find(`a.tile[title="Bell"]`).AttrOr("href", ""))

	forms := doc.Find("form")
	require.Equal(t, 3, forms.Length())
	assert.Equal(t, "/radio/theme", forms.First().AttrOr("action", ""))
	assert.Equal(t, "dark", doc.Find(`input[name="theme"][checked]`).AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find(`input[name="density"][checked]`).Length())
	assert.Equal(t, "en", doc.Find(`input[name="lang"][checked]`).AttrOr("value", ""))
	assert.Equal(t, "English", strings.TrimSpace(doc.Find(`input[name="lang"]`).Parent().Text()))
}

func TestComponentsPage(t *testing.T) {
	t.Parallel()

	h := newHandlers(t)

	rr := httptest.NewRecorder()
	require.NoError(t, h.ComponentsPage(rr, newRequest(http.MethodGet, "/dev/components", "")))

	doc := parse(t, rr)
	rows := doc.Find("tbody tr")

	require.Equal(t, len(icon.Names())+1, rows.Length())
	assert.Equal(t, len(matrixSizes), rows.First().Find("td svg").Length())
	assert.Equal(t, "Missing", rows.Last().Find("th").Text())
	assert.Equal(t, 0, rows.Last().Find("svg").Length())

	widths := rows.First().Find("svg").Map(func(_ int, s *goquery.Selection) string {
		return s.AttrOr("width", "")
	})
	assert.Equal(t, []string{"15", "8", "24", "36", "48"}, widths)

	assert.Equal(t, 3, doc.Find(`[role="radiogroup"]`).Length())
	assert.Equal(t, 2, doc.Find(`input[disabled]`).Length())
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := newHandlers(t)

	rr := httptest.NewRecorder()
	require.NoError(t, h.Healthz(rr, newRequest(http.MethodGet, "/healthz", "")))

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.Equal(t, "ok", gjson.Get(body, "status").String())
	assert.Equal(t, int64(len(icon.Names())), gjson.Get(body, "iconsDeclared").Int())
	assert.Equal(t, int64(len(icon.Names())), gjson.Get(body, "iconsResolved").Int())
	assert.True(t, gjson.Get(body, "renderCache.hits").Exists())
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	h := newHandlers(t)

	req := newRequest(http.MethodGet, "/broken", "")
	rc := request_context.FromRequest(req)
	rc.StatusCode = http.StatusInternalServerError
	rc.RequestError = errors.New("secret internals")

	rr := httptest.NewRecorder()
	h.ErrorPage(rr, req)

	doc := parse(t, rr)
	assert.Equal(t, "500 Internal Server Error", doc.Find("h1").Text())
	assert.Equal(t, 1, doc.Find("main svg").Length())
	assert.NotContains(t, doc.Text(), "secret internals")
}
