// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cookie

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SameSite=Lax keeps preferences on top-level navigations from other sites.
const CookieSameSite = http.SameSiteLaxMode

// Preferences expire a year after they were last set.
const cookieMaxAge = 365 * 24 * time.Hour

// Clear a cookie by setting its expiration date to this.
var cookieExpireDelete = time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC)

func create(name CookieName, value string, expires time.Time, isSecure bool) http.Cookie {
	return http.Cookie{
		Name:     string(name),
		Value:    value,
		Path:     "/",
		Expires:  expires,
		Secure:   isSecure,
		HttpOnly: true,
		SameSite: CookieSameSite,
	}
}

// Get returns the unescaped value of cookie name, or "".
func Get(r *http.Request, name CookieName) string {
	c, err := r.Cookie(string(name))
	if err != nil {
		return ""
	}

	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}

	return value
}

// Set stores value in cookie name. An empty value clears the cookie.
func Set(w http.ResponseWriter, r *http.Request, name CookieName, value string) {
	if value == "" {
		Clear(w, r, name)

		return
	}

	c := create(name, url.QueryEscape(value), time.Now().Add(cookieMaxAge), IsConnectionSecure(r))
	http.SetCookie(w, &c)
}

// Clear expires cookie name.
func Clear(w http.ResponseWriter, r *http.Request, name CookieName) {
	c := create(name, "", cookieExpireDelete, IsConnectionSecure(r))
	http.SetCookie(w, &c)
}

// ClearAll expires every cookie in AllCookieNames.
func ClearAll(w http.ResponseWriter, r *http.Request) {
	for _, name := range AllCookieNames {
		Clear(w, r, name)
	}
}

// IsConnectionSecure reports whether the client reached us over HTTPS.
//
// X-Forwarded-Proto is trusted only from private or loopback peers and over
// the unix socket, so a reverse proxy with a public address is treated as insecure.
func IsConnectionSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	return fromLocalProxy(r.RemoteAddr) && r.Header.Get("X-Forwarded-Proto") == "https"
}

// fromLocalProxy reports whether remoteAddr is a unix socket peer or a
// private or loopback IP. Unnamed unix socket clients report "@" or nothing.
func fromLocalProxy(remoteAddr string) bool {
	if remoteAddr == "" || remoteAddr == "@" || strings.HasPrefix(remoteAddr, "/") {
		return true
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return false
	}

	ip := net.ParseIP(host)

	return ip != nil && (ip.IsPrivate() || ip.IsLoopback())
}
