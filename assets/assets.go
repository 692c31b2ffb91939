// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package assets embeds the icon catalog and the gettext catalogues.
package assets

import "embed"

// IconsDir is the icon catalog directory within FS.
const IconsDir = "icons"

// PoDir is the gettext catalogue directory within FS.
const PoDir = "po"

// FS holds the icon catalog and the translations.
//
//go:embed icons po
var FS embed.FS
