// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package idgen makes short identifiers for requests and content.
package idgen

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"time"
)

const contentTagBytes = 12

// Make makes a short ID with a 6 byte timestamp and 3 bytes of entropy.
func Make() string {
	entropy := [3]byte{'a', 'a', 'a'}

	_, _ = rand.Read(entropy[:])

	return maketime(time.Now()) + base64.RawURLEncoding.EncodeToString(entropy[:])
}

func maketime(t time.Time) string {
	return t.Format("150405")
}

// ContentTag returns a strong ETag for data, quotes included.
//
// Equal inputs always yield equal tags.
func ContentTag(data []byte) string {
	sum := sha256.Sum256(data)

	return `"` + base64.RawURLEncoding.EncodeToString(sum[:contentTagBytes]) + `"`
}
