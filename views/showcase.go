// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"

	"github.com/a-h/templ"

	"codeberg.org/hopps/uikit/i18n"
)

// IconTile is one entry of the icon gallery.
type IconTile struct {
	Name string
	Icon templ.Component
	// Href links to the standalone SVG.
	Href string
}

// Preference is a radio group bound to a stored preference.
type Preference struct {
	Title string
	// Action is the form target used when scripting is unavailable.
	Action string
	Group  templ.Component
}

// ShowcaseData is the content of the index page.
type ShowcaseData struct {
	Layout      LayoutData
	Icons       []IconTile
	Preferences []Preference
}

func iconCount(ctx context.Context, n int) string {
	return i18n.TrN(ctx, "{{.Count}} icon", "{{.Count}} icons", n, "Count", n)
}

func (tile IconTile) attrs() templ.Attributes {
	return templ.Attributes{"href": tile.Href, "title": tile.Name}
}
