// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package routes holds the HTTP handlers of the component server.
package routes

import (
	"errors"
	"fmt"
	"time"

	"codeberg.org/hopps/uikit/core/rendercache"
	"codeberg.org/hopps/uikit/server/request_context"
	"codeberg.org/hopps/uikit/ui/icon"
	"codeberg.org/hopps/uikit/views"
)

var errNilDependency = errors.New("routes: resolver and render cache are required")

// Options tune the handlers.
type Options struct {
	// IconMaxAge is the Cache-Control max-age of standalone icons.
	IconMaxAge time.Duration
	// Dev adds the component matrix to the navigation.
	Dev bool
}

// Handlers serves pages, icons and preference changes.
//
// It is immutable after New and safe for concurrent use.
type Handlers struct {
	icons       *icon.Resolver
	cache       *rendercache.Cache
	opts        Options
	preferences []*preference
}

// New builds the handlers and their preference groups.
//
// The language group lists i18n.Languages, so i18n.Setup must run first.
func New(icons *icon.Resolver, cache *rendercache.Cache, opts Options) (*Handlers, error) {
	if icons == nil || cache == nil {
		return nil, errNilDependency
	}

	prefs, err := newPreferences()
	if err != nil {
		return nil, fmt.Errorf("building preference groups: %w", err)
	}

	return &Handlers{
		icons:       icons,
		cache:       cache,
		opts:        opts,
		preferences: prefs,
	}, nil
}

func (h *Handlers) layout(rc *request_context.RequestContext, title string) views.LayoutData {
	return views.LayoutData{
		Title:   title,
		Lang:    rc.T.String(),
		Theme:   rc.Theme,
		Density: rc.Density,
		Dev:     h.opts.Dev,
	}
}
