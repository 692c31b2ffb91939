// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package radio

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var abOptions = []Option{
	{Label: "A", Value: "a"},
	{Label: "B", Value: "b"},
}

func mustGroup(t *testing.T, cfg Config) *Group {
	t.Helper()

	g, err := New(cfg)
	require.NoError(t, err)

	return g
}

func render(t *testing.T, g *Group, selected string) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, g.Component(selected).Render(context.Background(), &buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	return doc
}

func TestNewValidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "missing name",
			cfg:     Config{Options: abOptions},
			wantErr: ErrMissingName,
		},
		{
			name:    "no options",
			cfg:     Config{Name: "g"},
			wantErr: ErrNoOptions,
		},
		{
			name:    "empty value",
			cfg:     Config{Name: "g", Options: []Option{{Label: "A", Value: ""}}},
			wantErr: ErrEmptyValue,
		},
		{
			name: "duplicate value",
			cfg: Config{Name: "g", Options: []Option{
				{Label: "A", Value: "a"},
				{Label: "Also A", Value: "a"},
			}},
			wantErr: ErrDuplicateValue,
		},
		{
			name:    "bad layout",
			cfg:     Config{Name: "g", Options: abOptions, Layout: "diagonal"},
			wantErr: ErrInvalidLayout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g, err := New(tt.cfg)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, g)
		})
	}
}

func TestNewCopiesOptions(t *testing.T) {
	t.Parallel()

	opts := []Option{{Label: "A", Value: "a"}}
	g := mustGroup(t, Config{Name: "g", Options: opts})

	opts[0].Value = "changed"

	assert.True(t, g.Has("a"))
	assert.False(t, g.Has("changed"))
	assert.Equal(t, Vertical, g.Layout())
	assert.Equal(t, "g", g.Name())
}

func TestParseLayout(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Layout{"": Vertical, "vertical": Vertical, "horizontal": Horizontal} {
		got, err := ParseLayout(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLayout("Horizontal")
	require.ErrorIs(t, err, ErrInvalidLayout)
}

func TestHorizontalRendersRowInOrder(t *testing.T) {
	t.Parallel()

	g := mustGroup(t, Config{Name: "choice", Options: abOptions, Layout: Horizontal})
	doc := render(t, g, "")

	row := doc.Find(`[role="radiogroup"] > div.flex-row`)
	require.Equal(t, 1, row.Length())

	labels := row.Children().Filter("label")
	require.Equal(t, 2, labels.Length())
	assert.Equal(t, "A", strings.TrimSpace(labels.Eq(0).Text()))
	assert.Equal(t, "B", strings.TrimSpace(labels.Eq(1).Text()))
	assert.Equal(t, "a", labels.Eq(0).Find("input").AttrOr("value", ""))
	assert.Equal(t, "b", labels.Eq(1).Find("input").AttrOr("value", ""))
}

func TestDefaultLayoutIsVertical(t *testing.T) {
	t.Parallel()

	g := mustGroup(t, Config{Name: "choice", Options: abOptions})
	doc := render(t, g, "")

	assert.Equal(t, 0, doc.Find(".flex-row").Length())
	assert.Equal(t, 1, doc.Find(`[role="radiogroup"] > div.flex-col`).Length())
	assert.Equal(t, 2, doc.Find("label.items-center").Length())
}

func TestSelectedIsOnlyReflected(t *testing.T) {
	t.Parallel()

	g := mustGroup(t, Config{Name: "choice", Options: abOptions})

	doc := render(t, g, "b")
	checked := doc.Find("input[checked]")
	require.Equal(t, 1, checked.Length())
	assert.Equal(t, "b", checked.AttrOr("value", ""))

	assert.Equal(t, 0, render(t, g, "").Find("input[checked]").Length())
	assert.Equal(t, 0, render(t, g, "zzz").Find("input[checked]").Length())
}

func TestPassThroughAttributes(t *testing.T) {
	t.Parallel()

	g := mustGroup(t, Config{
		Name:      "theme",
		Options:   abOptions,
		Class:     "my-4",
		Disabled:  true,
		AriaLabel: "Theme",
		Style:     "max-width: 20rem",
		ChangeURL: "/radio/theme",
	})
	doc := render(t, g, "a")

	group := doc.Find(`[role="radiogroup"]`)
	assert.Equal(t, "my-4", group.AttrOr("class", ""))
	assert.Equal(t, "Theme", group.AttrOr("aria-label", ""))
	assert.Equal(t, "true", group.AttrOr("aria-disabled", ""))
	assert.Equal(t, "max-width: 20rem", group.AttrOr("style", ""))
	assert.Equal(t, "/radio/theme", group.AttrOr("hx-post", ""))
	assert.Equal(t, "change", group.AttrOr("hx-trigger", ""))

	inputs := doc.Find(`input[type="radio"]`)
	require.Equal(t, 2, inputs.Length())
	inputs.Each(func(_ int, s *goquery.Selection) {
		_, disabled := s.Attr("disabled")
		assert.True(t, disabled)
		assert.Equal(t, "theme", s.AttrOr("name", ""))
	})
	assert.Equal(t, "theme-a", inputs.First().AttrOr("id", ""))
}

func TestLabelsAreEscapedAndTranslated(t *testing.T) {
	t.Parallel()

	g := mustGroup(t, Config{
		Name:    "g",
		Options: []Option{{Label: "<b>Bold</b>", Value: "x"}},
		Translate: func(_ context.Context, msgid string) string {
			return "T:" + msgid
		},
	})

	var buf bytes.Buffer
	require.NoError(t, g.Component("").Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "T:&lt;b&gt;Bold&lt;/b&gt;")
	assert.NotContains(t, buf.String(), "<b>")
}

func postChange(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/radio/choice", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func TestChangeHandlerCallsOnChangeOnce(t *testing.T) {
	t.Parallel()

	g := mustGroup(t, Config{Name: "choice", Options: abOptions})

	var calls []string

	h := g.ChangeHandler(func(_ context.Context, value string) error {
		calls = append(calls, value)

		return nil
	})

	rr := postChange(t, h, url.Values{"choice": {"b"}})
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, []string{"b"}, calls)

	// The group itself keeps no selection.
	assert.Equal(t, 0, render(t, g, "").Find("input[checked]").Length())
}

func TestChangeHandlerRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	g := mustGroup(t, Config{Name: "choice", Options: abOptions})

	called := false
	h := g.ChangeHandler(func(context.Context, string) error {
		called = true

		return nil
	})

	for _, form := range []url.Values{{"choice": {"c"}}, {"other": {"a"}}, {}} {
		rr := postChange(t, h, form)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	}

	assert.False(t, called)
}

func TestChangeHandlerMethodAndCallbackErrors(t *testing.T) {
	t.Parallel()

	g := mustGroup(t, Config{Name: "choice", Options: abOptions})

	h := g.ChangeHandler(func(context.Context, string) error {
		return errors.New("store unavailable")
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/radio/choice", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))

	rr = postChange(t, h, url.Values{"choice": {"a"}})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestChangeHandlerRedirectsPlainForms(t *testing.T) {
	t.Parallel()

	g := mustGroup(t, Config{Name: "choice", Options: abOptions})
	h := g.ChangeHandler(func(context.Context, string) error { return nil })

	tests := []struct {
		referer string
		want    string
	}{
		{referer: "", want: "/"},
		{referer: "http://example.com/dev/components?lang=de", want: "/dev/components?lang=de"},
		{referer: "http://elsewhere.test/phish", want: "/"},
		{referer: "/relative", want: "/relative"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "http://example.com/radio/choice", strings.NewReader("choice=a"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		if tt.referer != "" {
			req.Header.Set("Referer", tt.referer)
		}

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code, tt.referer)
		assert.Equal(t, tt.want, rr.Header().Get("Location"), tt.referer)
	}
}

func TestReadChange(t *testing.T) {
	t.Parallel()

	g := mustGroup(t, Config{Name: "choice", Options: abOptions})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("choice=a"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	value, err := g.ReadChange(req)
	require.NoError(t, err)
	assert.Equal(t, "a", value)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("choice=nope"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err = g.ReadChange(req)
	require.ErrorIs(t, err, ErrUnknownValue)
}
