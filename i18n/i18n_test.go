// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// Tests here replace package state through Setup and must not run in parallel.

const dePo = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Language: de\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"

msgid "Notifications"
msgstr "Benachrichtigungen"

msgctxt "layout"
msgid "Horizontal"
msgstr "Waagerecht"

msgid "{{.Count}} icon"
msgid_plural "{{.Count}} icons"
msgstr[0] "{{.Count}} Symbol"
msgstr[1] "{{.Count}} Symbole"
`

func setupFixture(t *testing.T, strict bool) {
	t.Helper()

	fsys := fstest.MapFS{
		"po/de.po":         {Data: []byte(dePo)},
		"po/uikit.pot":     {Data: []byte(`msgid ""` + "\n" + `msgstr ""` + "\n")},
		"po/not a tag!.po": {Data: []byte("")},
	}

	require.NoError(t, Setup(fsys, Options{StrictMissingKeys: strict}))
}

func de() context.Context {
	return WithTag(context.Background(), language.German)
}

func TestSetupLanguages(t *testing.T) {
	setupFixture(t, false)

	assert.Equal(t, []language.Tag{language.English, language.German}, Languages())
	require.Error(t, Setup(fstest.MapFS{}, Options{Dir: "missing"}))
}

func TestTr(t *testing.T) {
	setupFixture(t, false)

	assert.Equal(t, "Benachrichtigungen", Tr(de(), "Notifications"))
	assert.Equal(t, "Notifications", Tr(context.Background(), "Notifications"))
	assert.Equal(t, "Untranslated", Tr(de(), "Untranslated"))
	assert.Equal(t, "Benachrichtigungen", Func(de(), "Notifications"))
	assert.Equal(t, "Benachrichtigungen", MsgKey("Notifications").Tr(de()))
}

func TestTrC(t *testing.T) {
	setupFixture(t, false)

	assert.Equal(t, "Waagerecht", TrC(de(), "layout", "Horizontal"))
	assert.Equal(t, "Horizontal", Tr(de(), "Horizontal"))
}

func TestTrN(t *testing.T) {
	setupFixture(t, false)

	assert.Equal(t, "1 Symbol", TrN(de(), "{{.Count}} icon", "{{.Count}} icons", 1, "Count", 1))
	assert.Equal(t, "3 Symbole", TrN(de(), "{{.Count}} icon", "{{.Count}} icons", 3, "Count", 3))
	assert.Equal(t, "3 icons", TrN(context.Background(), "{{.Count}} icon", "{{.Count}} icons", 3, "Count", 3))
}

func TestStrictMissingKeys(t *testing.T) {
	setupFixture(t, true)

	assert.Equal(t, "⟦Untranslated⟧", Tr(de(), "Untranslated"))
	assert.Equal(t, "Benachrichtigungen", Tr(de(), "Notifications"))

	setupFixture(t, false)
	assert.Equal(t, "Untranslated", Tr(de(), "Untranslated"))
}

func TestFormattingErrors(t *testing.T) {
	setupFixture(t, false)

	assert.Equal(t, "Icon {{.Name}} not found", Tr(context.Background(), "Icon {{.Name}} not found"))
	assert.Equal(t, "Icon Bell not found", Tr(context.Background(), "Icon {{.Name}} not found", "Name", "Bell"))
	assert.Panics(t, func() { Tr(context.Background(), "x", "odd") })
}

func TestUserError(t *testing.T) {
	setupFixture(t, false)

	err := NewUserError(de(), "Notifications")
	assert.EqualError(t, err, "Benachrichtigungen")
}

func TestMsgKeyRenderEscapes(t *testing.T) {
	setupFixture(t, false)

	var sb strings.Builder
	require.NoError(t, MsgKey("<b>").Render(context.Background(), &sb))
	assert.Equal(t, "&lt;b&gt;", sb.String())
}

func TestFromRequest(t *testing.T) {
	setupFixture(t, false)

	tests := []struct {
		name   string
		target string
		cookie string
		accept string
		want   string
	}{
		{name: "query wins", target: "/?lang=de", cookie: "en", want: "de"},
		{name: "cookie", target: "/", cookie: "de", accept: "en", want: "de"},
		{name: "accept language", target: "/", accept: "de-DE,de;q=0.9", want: "de"},
		{name: "auto ignores cookie", target: "/?lang=auto", cookie: "de", accept: "en", want: "en"},
		{name: "unsupported falls back", target: "/?lang=ja", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: LangCookie, Value: tt.cookie})
			}

			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}

			assert.Equal(t, tt.want, strippedTagString(FromRequest(r)))
		})
	}

	assert.Equal(t, language.English, TagFrom(nil)) //nolint:staticcheck // nil context is documented
	assert.Equal(t, language.English, FromRequest(nil))
}

func TestLocaleKey(t *testing.T) {
	assert.Equal(t, "de", LocaleKey(language.MustParse("de-u-rg-chzzzz")))
	assert.Equal(t, "pt-BR", LocaleKey(language.MustParse("pt-BR-u-co-phonebk")))
}
