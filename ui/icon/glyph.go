// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icon

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

var (
	errNotSVG          = errors.New("no <svg> root element")
	errUnterminatedSVG = errors.New("unterminated <svg> element")
)

// defaultViewBox matches the 15×15 grid the catalog is drawn on.
const defaultViewBox = "0 0 15 15"

// Glyph is a parsed catalog entry.
type Glyph struct {
	// Key is the catalog key, for example "CheckIcon".
	Key string
	// ViewBox is the root element's viewBox.
	ViewBox string
	// Fill is the root element's fill attribute, if any.
	Fill string
	// Body is the raw markup between <svg> and </svg>.
	Body string
}

// parseGlyph extracts the root <svg> attributes and inner markup from data.
func parseGlyph(key string, data []byte) (Glyph, error) {
	z := html.NewTokenizer(bytes.NewReader(data))
	z.AllowCDATA(true)

	glyph := Glyph{Key: key, ViewBox: defaultViewBox}

	// Find the root element.
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return Glyph{}, tokenizerErr(key, z.Err(), errNotSVG)
		}

		if tt != html.StartTagToken {
			continue
		}

		name, hasAttr := z.TagName()
		if string(name) != "svg" {
			continue
		}

		// The tokenizer lowercases attribute names, so viewBox arrives as viewbox.
		for hasAttr {
			var k, v []byte

			k, v, hasAttr = z.TagAttr()
			switch string(k) {
			case "viewbox":
				glyph.ViewBox = string(v)
			case "fill":
				glyph.Fill = string(v)
			}
		}

		break
	}

	var body strings.Builder

	depth := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return Glyph{}, tokenizerErr(key, z.Err(), errUnterminatedSVG)
		}

		// Copy before TagName, which lowercases the token in place.
		// Element names such as linearGradient are case-sensitive in standalone SVG.
		raw := string(z.Raw())

		switch tt {
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "svg" {
				depth++
			}

		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "svg" {
				if depth == 0 {
					glyph.Body = strings.TrimSpace(body.String())

					return glyph, nil
				}

				depth--
			}

		default:
		}

		body.WriteString(raw)
	}
}

func tokenizerErr(key string, err, eofErr error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("icon %s: %w", key, eofErr)
	}

	return fmt.Errorf("icon %s: %w", key, err)
}
