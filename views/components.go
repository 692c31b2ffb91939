// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import "github.com/a-h/templ"

// IconRow is one icon rendered once per column of ComponentsData.Sizes.
type IconRow struct {
	Name  string
	Cells []templ.Component
}

// Example is a labelled component rendering.
type Example struct {
	Title     string
	Component templ.Component
}

// ComponentsData is the content of the development component matrix.
type ComponentsData struct {
	Layout LayoutData
	// Sizes are the column headings of the icon matrix.
	Sizes  []string
	Icons  []IconRow
	Radios []Example
}

