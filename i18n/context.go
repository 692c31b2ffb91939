// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

const (
	// LangParam is the query parameter carrying a preferred BCP 47 tag.
	LangParam = "lang"
	// LangCookie is the cookie carrying a preferred BCP 47 tag.
	LangCookie = "uikit-lang"
)

// WithTag returns a context carrying t.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the tag stored in ctx, or the BaseLocale tag.
// ctx may be nil.
func TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if t, _ := ctx.Value(tagKey).(language.Tag); t != (language.Tag{}) {
			return t
		}
	}

	return baseTag
}

// FromRequest picks the best supported tag for r from, in order, the
// LangParam query parameter, the LangCookie cookie and Accept-Language.
//
// LangParam "auto" ignores the cookie. Before Setup it returns the BaseLocale tag.
func FromRequest(r *http.Request) language.Tag {
	cat := current.Load()
	if r == nil || cat == nil {
		return baseTag
	}

	q := r.URL.Query().Get(LangParam)
	auto := strings.EqualFold(q, "auto")

	preferred := make([]string, 0, 3)
	if q != "" && !auto {
		preferred = append(preferred, q)
	}

	if !auto {
		if c, err := r.Cookie(LangCookie); err == nil && c.Value != "" {
			preferred = append(preferred, c.Value)
		}
	}

	if al := r.Header.Get("Accept-Language"); al != "" {
		preferred = append(preferred, al)
	}

	tag, _ := language.MatchStrings(cat.matcher, preferred...)

	return tag
}

// WithRequest is WithTag(ctx, FromRequest(r)).
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return WithTag(ctx, FromRequest(r))
}
