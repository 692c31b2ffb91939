// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icon

import (
	"github.com/a-h/templ"
	"github.com/rs/zerolog"
)

// Attrs is the fixed set of attributes forwarded to a rendered icon.
type Attrs struct {
	// ID sets the id attribute.
	ID string
	// AriaLabel makes the icon an accessible image. Without it the icon is aria-hidden.
	AriaLabel string
	// Title adds a <title> child, shown as a tooltip by most browsers.
	Title string
	// Style sets the inline style attribute.
	Style string
}

// Request describes one icon to render.
type Request struct {
	Name  Name
	Size  Size
	Class string
	Attrs Attrs
}

// Resolver maps logical names to catalog glyphs.
//
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	glyphs map[Name]Glyph
	logger zerolog.Logger
}

// NewResolver resolves every declared Name against catalog.
//
// Names without a catalog entry are logged once here and render nothing later.
func NewResolver(catalog *Catalog, logger zerolog.Logger) *Resolver {
	r := &Resolver{
		glyphs: make(map[Name]Glyph, len(names)),
		logger: logger,
	}

	var missing []string

	for _, name := range names {
		glyph, ok := catalog.Glyph(name.Key())
		if !ok {
			missing = append(missing, string(name))

			continue
		}

		r.glyphs[name] = glyph
	}

	if len(missing) > 0 {
		logger.Warn().
			Strs("icons", missing).
			Int("resolved", len(r.glyphs)).
			Msg("Icons missing from catalog")
	}

	return r
}

// Resolve returns the icon for req, or nil when req.Name has no glyph.
//
// A nil result is logged once per call and is not an error.
func (r *Resolver) Resolve(req Request) *Rendered {
	glyph, ok := r.glyphs[req.Name]
	if !ok {
		r.logger.Error().
			Str("icon", string(req.Name)).
			Msgf("Icon %q not found", string(req.Name))

		return nil
	}

	width, height := req.Size.Dimensions()

	return &Rendered{
		Name:   req.Name,
		Width:  width,
		Height: height,
		Class:  req.Class,
		Attrs:  req.Attrs,
		Glyph:  glyph,
	}
}

// Component is Resolve for templates: an unresolved icon renders nothing.
func (r *Resolver) Component(req Request) templ.Component {
	if rendered := r.Resolve(req); rendered != nil {
		return rendered
	}

	return templ.NopComponent
}

// Lookup parses raw into a declared Name. Matching is exact.
func (r *Resolver) Lookup(raw string) (Name, bool) {
	name := Name(raw)

	return name, name.Known()
}

// Has reports whether name resolved against the catalog.
func (r *Resolver) Has(name Name) bool {
	_, ok := r.glyphs[name]

	return ok
}

// Resolved returns the names that have a glyph, in declaration order.
func (r *Resolver) Resolved() []Name {
	out := make([]Name, 0, len(r.glyphs))

	for _, name := range names {
		if _, ok := r.glyphs[name]; ok {
			out = append(out, name)
		}
	}

	return out
}
