// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n translates UI text using GNU gettext .po catalogues.

Use the original English UI text as the msgid; do not invent keys.

	i18n.Tr(ctx, "Notifications")
	i18n.TrC(ctx, "layout", "Horizontal") // disambiguation via context
	i18n.TrN(ctx, "{{.Count}} icon", "{{.Count}} icons", n, "Count", n)

# Missing translations

By default, missing translations return the msgid unchanged. With strict
mode enabled, missing lookups are logged once per locale+key and the
returned text is visibly wrapped as "⟦...⟧".

# Formatting

Placeholders are processed by text/template. Provide substitutions as
alternating key-value pairs:

	i18n.Tr(ctx, "Icon {{.Name}} not found", "Name", name)
*/
package i18n
