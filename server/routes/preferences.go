// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"context"
	"net/http"

	"golang.org/x/text/language/display"

	"codeberg.org/hopps/uikit/core/cookie"
	"codeberg.org/hopps/uikit/i18n"
	"codeberg.org/hopps/uikit/server/request_context"
	"codeberg.org/hopps/uikit/ui/radio"
)

// preference is a radio group whose value lives in a cookie.
type preference struct {
	title  i18n.MsgKey
	cookie cookie.CookieName
	group  *radio.Group
	// current returns the selected value for r.
	current func(r *http.Request) string
}

const (
	themeTitle    i18n.MsgKey = "Theme"
	densityTitle  i18n.MsgKey = "Density"
	languageTitle i18n.MsgKey = "Language"
)

func newPreferences() ([]*preference, error) {
	theme, err := radio.New(radio.Config{
		Name: "theme",
		Options: []radio.Option{
			{Label: "Light", Value: "light"},
			{Label: "Dark", Value: "dark"},
			{Label: "System", Value: "system"},
		},
		Layout:    radio.Horizontal,
		AriaLabel: string(themeTitle),
		ChangeURL: "/radio/theme",
		Translate: i18n.Func,
	})
	if err != nil {
		return nil, err
	}

	density, err := radio.New(radio.Config{
		Name: "density",
		Options: []radio.Option{
			{Label: "Comfortable", Value: "comfortable"},
			{Label: "Compact", Value: "compact"},
		},
		AriaLabel: string(densityTitle),
		ChangeURL: "/radio/density",
		Translate: i18n.Func,
	})
	if err != nil {
		return nil, err
	}

	tags := i18n.Languages()
	langOptions := make([]radio.Option, 0, len(tags))

	for _, tag := range tags {
		langOptions = append(langOptions, radio.Option{
			Label: display.Self.Name(tag),
			Value: tag.String(),
		})
	}

	lang, err := radio.New(radio.Config{
		Name:      "lang",
		Options:   langOptions,
		Layout:    radio.Horizontal,
		AriaLabel: string(languageTitle),
		ChangeURL: "/radio/lang",
		// Language names are shown in their own language.
		Translate: func(ctx context.Context, msgid string) string {
			if msgid == string(languageTitle) {
				return languageTitle.Tr(ctx)
			}

			return msgid
		},
	})
	if err != nil {
		return nil, err
	}

	return []*preference{
		{
			title:  themeTitle,
			cookie: cookie.ThemeCookie,
			group:  theme,
			current: func(r *http.Request) string {
				return request_context.FromRequest(r).Theme
			},
		},
		{
			title:  densityTitle,
			cookie: cookie.DensityCookie,
			group:  density,
			current: func(r *http.Request) string {
				return request_context.FromRequest(r).Density
			},
		},
		{
			title:  languageTitle,
			cookie: cookie.LangCookie,
			group:  lang,
			current: func(r *http.Request) string {
				return i18n.LocaleKey(request_context.FromRequest(r).T)
			},
		},
	}, nil
}

func (h *Handlers) preference(name string) (*preference, bool) {
	for _, p := range h.preferences {
		if p.group.Name() == name {
			return p, true
		}
	}

	return nil, false
}
