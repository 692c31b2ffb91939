// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides the HTTP middleware chain of the component server.

Each Middleware receives the next handler explicitly; the router runs them in
registration order, outermost first.
*/
package middleware
