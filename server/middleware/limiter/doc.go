// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package limiter rate limits requests per client network using token buckets.
package limiter
