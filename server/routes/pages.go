// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"context"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"codeberg.org/hopps/uikit/i18n"
	"codeberg.org/hopps/uikit/server/request_context"
	"codeberg.org/hopps/uikit/ui/icon"
	"codeberg.org/hopps/uikit/ui/radio"
	"codeberg.org/hopps/uikit/views"
)

// IndexPage renders the icon gallery and the preference groups.
func (h *Handlers) IndexPage(w http.ResponseWriter, r *http.Request) error {
	rc := request_context.FromRequest(r)
	ctx := r.Context()

	resolved := h.icons.Resolved()
	tiles := make([]views.IconTile, 0, len(resolved))

	for _, name := range resolved {
		tiles = append(tiles, views.IconTile{
			Name: string(name),
			Href: "/icons/" + string(name),
			Icon: h.icons.Component(icon.Request{
				Name:  name,
				Size:  icon.SizeMD,
				Attrs: icon.Attrs{Title: string(name)},
			}),
		})
	}

	prefs := make([]views.Preference, 0, len(h.preferences))
	for _, p := range h.preferences {
		prefs = append(prefs, views.Preference{
			Title:  p.title.Tr(ctx),
			Action: "/radio/" + p.group.Name(),
			Group:  p.group.Component(p.current(r)),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	return views.Showcase(views.ShowcaseData{
		Layout:      h.layout(rc, i18n.Tr(ctx, "Component showcase")),
		Icons:       tiles,
		Preferences: prefs,
	}).Render(ctx, w)
}

// matrixSizes are the columns of the component matrix. The zero Size is the default.
var matrixSizes = []icon.Size{{}, icon.SizeSM, icon.SizeMD, icon.SizeLG, icon.Pixels(48)}

// missingIcon is not a declared Name and demonstrates the empty rendering.
const missingIcon icon.Name = "Missing"

// ComponentsPage renders every icon at every size and the radio group variants.
func (h *Handlers) ComponentsPage(w http.ResponseWriter, r *http.Request) error {
	rc := request_context.FromRequest(r)
	ctx := r.Context()

	sizes := make([]string, 0, len(matrixSizes))
	for _, size := range matrixSizes {
		width, _ := size.Dimensions()
		label := size.String()

		if label == "" {
			label = i18n.Tr(ctx, "default")
		}

		sizes = append(sizes, label+" ("+strconv.Itoa(width)+"px)")
	}

	rows := make([]views.IconRow, 0, len(icon.Names())+1)
	for _, name := range append(icon.Names(), missingIcon) {
		cells := make([]templ.Component, 0, len(matrixSizes))
		for _, size := range matrixSizes {
			cells = append(cells, h.icons.Component(icon.Request{Name: name, Size: size}))
		}

		rows = append(rows, views.IconRow{Name: string(name), Cells: cells})
	}

	radios, err := radioExamples(ctx)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	return views.Components(views.ComponentsData{
		Layout: h.layout(rc, i18n.Tr(ctx, "Components")),
		Sizes:  sizes,
		Icons:  rows,
		Radios: radios,
	}).Render(ctx, w)
}

func radioExamples(ctx context.Context) ([]views.Example, error) {
	options := []radio.Option{
		{Label: "Horizontal", Value: "horizontal"},
		{Label: "Vertical", Value: "vertical"},
	}

	variants := []struct {
		title    i18n.MsgKey
		layout   radio.Layout
		disabled bool
	}{
		{title: "Horizontal", layout: radio.Horizontal},
		{title: "Vertical", layout: radio.Vertical},
		{title: "Disabled", layout: radio.Horizontal, disabled: true},
	}

	out := make([]views.Example, 0, len(variants))

	for i, v := range variants {
		g, err := radio.New(radio.Config{
			Name:      "example-" + strconv.Itoa(i),
			Options:   options,
			Layout:    v.layout,
			Disabled:  v.disabled,
			Class:     "gap-2",
			Translate: i18n.Func,
		})
		if err != nil {
			return nil, err
		}

		out = append(out, views.Example{Title: v.title.Tr(ctx), Component: g.Component(options[0].Value)})
	}

	return out, nil
}
