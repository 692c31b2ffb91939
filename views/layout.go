// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import "github.com/a-h/templ"

// stylesheet provides the utility classes the components emit.
const stylesheet = `
:root{color-scheme:light dark;font-family:system-ui,sans-serif}
[data-theme=light]{color-scheme:light}
[data-theme=dark]{color-scheme:dark}
body{margin:0 auto;max-width:60rem;padding:1rem}
[data-density=compact] body{padding:.25rem}
nav{display:flex;gap:1rem;align-items:center;margin-bottom:1rem}
.flex{display:flex}.flex-row{flex-direction:row}.flex-col{flex-direction:column}
.items-center{align-items:center}.gap-2{gap:.5rem}.gap-4{gap:1rem}.flex-wrap{flex-wrap:wrap}
.tile{display:flex;flex-direction:column;align-items:center;gap:.25rem;width:7rem;font-size:.75rem;text-decoration:none;color:inherit}
table{border-collapse:collapse}td,th{padding:.25rem .5rem;text-align:center}
`

// LayoutData carries what every page needs.
type LayoutData struct {
	Title   string
	Lang    string
	Theme   string
	Density string
	Dev     bool
}

// inlineStylesheet is the <style> element of the layout head.
func inlineStylesheet() templ.Component {
	return templ.Raw("<style>" + stylesheet + "</style>")
}
