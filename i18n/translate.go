// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"text/template"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// templateCache caches compiled templates per unique template text.
var templateCache sync.Map // text -> *template.Template

// Vars holds named placeholder values.
type Vars map[string]any

// UserError is an error whose message is already translated and safe to show.
type UserError struct {
	msg string
}

// NewUserError translates msgid with kv and wraps it as an error.
func NewUserError(ctx context.Context, msgid string, kv ...any) *UserError {
	return &UserError{msg: Tr(ctx, msgid, kv...)}
}

func (e *UserError) Error() string {
	return e.msg
}

// Tr returns the translation of msgid for the locale in ctx, formatted with kv.
func Tr(ctx context.Context, msgid string, kv ...any) string {
	return translate(ctx, "", msgid, "", 0, false, v(kv...))
}

// TrC is Tr with a disambiguating context, like gettext's pgettext.
func TrC(ctx context.Context, contextKey, msgid string, kv ...any) string {
	return translate(ctx, contextKey, msgid, "", 0, false, v(kv...))
}

// TrN picks the singular or plural form for n. Untranslated messages use
// singular only when n == 1.
func TrN(ctx context.Context, singular, plural string, n int, kv ...any) string {
	return translate(ctx, "", singular, plural, n, true, v(kv...))
}

// Func adapts Tr to the func(ctx, msgid) string shape used by components.
func Func(ctx context.Context, msgid string) string {
	return Tr(ctx, msgid)
}

func translate(
	ctx context.Context,
	contextKey, singular, plural string,
	n int,
	pluralMode bool,
	vars Vars,
) string {
	cat := current.Load()
	loc, matched := resolveLocale(cat, TagFrom(ctx))

	base := singular
	if pluralMode && n != 1 {
		base = plural
	}

	text, found := lookup(loc, contextKey, singular, plural, n, pluralMode)
	if !found {
		text = base

		if cat != nil && cat.strict {
			logMissingOnce(strippedTagString(matched), buildLogKey(contextKey, singular))

			text = "⟦" + base + "⟧"
		}
	}

	return render(matched, text, vars, cat != nil && cat.strict)
}

func lookup(loc *gotext.Locale, contextKey, singular, plural string, n int, pluralMode bool) (string, bool) {
	if loc == nil {
		return "", false
	}

	switch {
	case pluralMode && contextKey != "":
		if loc.IsTranslatedNDC(poDomain, singular, n, contextKey) {
			return loc.GetNDC(poDomain, singular, plural, n, contextKey), true
		}
	case pluralMode:
		if loc.IsTranslatedND(poDomain, singular, n) {
			return loc.GetND(poDomain, singular, plural, n), true
		}
	case contextKey != "":
		if loc.IsTranslatedDC(poDomain, singular, contextKey) {
			return loc.GetDC(poDomain, singular, contextKey), true
		}
	default:
		if loc.IsTranslatedD(poDomain, singular) {
			return loc.GetD(poDomain, singular), true
		}
	}

	return "", false
}

// render executes s as a text/template when it contains placeholders.
func render(locale language.Tag, s string, data Vars, strict bool) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	var tmpl *template.Template
	if t, ok := templateCache.Load(s); ok {
		tmpl = t.(*template.Template)
	} else {
		var err error

		tmpl, err = template.New("msg").Option("missingkey=error").Parse(s)
		if err != nil {
			return formatFailed(locale, s, err, strict)
		}

		templateCache.Store(s, tmpl)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(data)); err != nil {
		return formatFailed(locale, s, err, strict)
	}

	return buf.String()
}

func formatFailed(locale language.Tag, s string, err error, strict bool) string {
	Logger.Error().
		Err(err).
		Str("locale", locale.String()).
		Str("text", s).
		Msg("Failed to format translation")

	if strict {
		return "⟦" + s + "⟧"
	}

	return s
}

// resolveLocale matches t against the loaded locales.
func resolveLocale(cat *catalogue, t language.Tag) (*gotext.Locale, language.Tag) {
	if cat == nil {
		return nil, baseTag
	}

	matched, _ := language.MatchStrings(cat.matcher, t.String())
	// Match results may carry a -u-rg extension; locales are keyed without it.
	return cat.locales[strippedTagString(matched)], matched
}

// v builds Vars from alternating key, value pairs. Panics on programmer error.
func v(kv ...any) Vars {
	if len(kv)%2 != 0 {
		panic("i18n: odd number of arguments, want key, value pairs")
	}

	m := make(Vars, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("i18n: key must be string")
		}

		m[k] = kv[i+1]
	}

	return m
}
