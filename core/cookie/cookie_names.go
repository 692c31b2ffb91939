// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package cookie stores user preferences in cookies.
*/
package cookie

import "codeberg.org/hopps/uikit/i18n"

type CookieName string

// Preference cookies.
//
// NOTE: We don't use the `__Host-` prefix so that preferences also stick on
// plain-HTTP LAN deployments.
const (
	ThemeCookie   CookieName = "uikit-theme"
	DensityCookie CookieName = "uikit-density"
	LangCookie    CookieName = i18n.LangCookie
)

// AllCookieNames lists every cookie the server sets.
var AllCookieNames = []CookieName{
	ThemeCookie,
	DensityCookie,
	LangCookie,
}
