// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package views renders the pages of the component server.
//
// Pages take ready-made child components so that they stay free of lookups.
package views
