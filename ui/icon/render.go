// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icon

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Rendered is a resolved icon ready to be written as inline SVG.
//
// It implements templ.Component. A nil *Rendered renders nothing.
type Rendered struct {
	Name   Name
	Width  int
	Height int
	Class  string
	Attrs  Attrs
	Glyph  Glyph
}

// Render writes the icon as an <svg> element.
func (r *Rendered) Render(ctx context.Context, w io.Writer) error {
	if r == nil {
		return nil
	}

	return r.svg().Render(ctx, w)
}

// String returns the <svg> markup.
func (r *Rendered) String() string {
	if r == nil {
		return ""
	}

	var b strings.Builder

	b.Grow(len(r.Glyph.Body) + 256)

	if err := r.svg().Render(context.Background(), &b); err != nil {
		return ""
	}

	return b.String()
}

// optionalAttrs are the attributes written only when set.
func (r *Rendered) optionalAttrs() templ.Attributes {
	attrs := templ.Attributes{}

	for key, value := range map[string]string{
		"viewBox": r.Glyph.ViewBox,
		"fill":    r.Glyph.Fill,
		"class":   r.Class,
		"id":      r.Attrs.ID,
		"style":   r.Attrs.Style,
	} {
		if value != "" {
			attrs[key] = value
		}
	}

	return attrs
}
