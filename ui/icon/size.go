// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icon

import "strconv"

// defaultDimension is used for the zero Size and anything unrecognised.
const defaultDimension = 15

// Size selects the rendered width and height of an icon.
//
// The zero value is the default size.
type Size struct {
	token  string
	pixels int
}

// Keyword sizes.
var (
	SizeSM = Size{token: "sm"}
	SizeMD = Size{token: "md"}
	SizeLG = Size{token: "lg"}
)

// keywordDimensions maps size keywords to their square dimension in pixels.
var keywordDimensions = map[string]int{
	"sm": 8,
	"md": 24,
	"lg": 36,
}

// Pixels returns a Size of n×n pixels.
//
// Non-positive values fall back to the default size.
func Pixels(n int) Size {
	return Size{pixels: n}
}

// ParseSize parses a keyword ("sm", "md", "lg") or a decimal pixel count.
//
// It never fails: anything else yields the default size.
func ParseSize(raw string) Size {
	if _, ok := keywordDimensions[raw]; ok {
		return Size{token: raw}
	}

	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return Pixels(n)
	}

	return Size{}
}

// Dimensions returns the width and height for s.
func (s Size) Dimensions() (width, height int) {
	if s.pixels > 0 {
		return s.pixels, s.pixels
	}

	if d, ok := keywordDimensions[s.token]; ok {
		return d, d
	}

	return defaultDimension, defaultDimension
}

// String returns the keyword, the pixel count, or "" for the default size.
func (s Size) String() string {
	if s.pixels > 0 {
		return strconv.Itoa(s.pixels)
	}

	if _, ok := keywordDimensions[s.token]; ok {
		return s.token
	}

	return ""
}
