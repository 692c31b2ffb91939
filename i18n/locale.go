// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import "golang.org/x/text/language"

// BaseLocale is the locale of the msgids themselves.
const BaseLocale = "en"

var baseTag = language.Make(BaseLocale)

// Languages returns the supported language tags, BaseLocale first and the
// rest sorted by tag string. It returns only BaseLocale before Setup.
func Languages() []language.Tag {
	cat := current.Load()
	if cat == nil {
		return []language.Tag{baseTag}
	}

	return append([]language.Tag(nil), cat.tags...)
}

// LocaleKey returns the string of t without variants or extensions.
//
// For a tag from FromRequest it equals the String of one of Languages.
func LocaleKey(t language.Tag) string {
	return strippedTagString(t)
}
