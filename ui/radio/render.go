// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package radio

import (
	"context"

	"github.com/a-h/templ"
)

// Component renders the group with selected checked.
//
// selected is only reflected in the markup; an empty or unknown value checks nothing.
func (g *Group) Component(selected string) templ.Component {
	return g.markup(selected)
}

// passThrough holds the caller's class and style and, with a ChangeURL,
// the htmx attributes that post every change.
func (g *Group) passThrough() templ.Attributes {
	attrs := templ.Attributes{}

	if g.cfg.Class != "" {
		attrs["class"] = g.cfg.Class
	}

	if g.cfg.Style != "" {
		attrs["style"] = g.cfg.Style
	}

	if g.cfg.ChangeURL != "" {
		attrs["hx-post"] = g.cfg.ChangeURL
		attrs["hx-trigger"] = "change"
		attrs["hx-include"] = "this"
		attrs["hx-swap"] = "none"
	}

	return attrs
}

func (g *Group) label(ctx context.Context, s string) string {
	if s == "" || g.cfg.Translate == nil {
		return s
	}

	return g.cfg.Translate(ctx, s)
}
