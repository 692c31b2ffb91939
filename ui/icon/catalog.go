// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// BundleFile is the optional JSON bundle inside a catalog directory.
//
// It holds a single object mapping catalog keys to SVG markup.
const BundleFile = "bundle.json"

var (
	errInvalidBundle      = errors.New("invalid icon bundle")
	errNonStringBundleKey = errors.New("icon bundle value is not a string")
)

// Catalog is an immutable set of glyphs keyed by catalog key.
type Catalog struct {
	glyphs map[string]Glyph
}

// NewCatalog builds a Catalog from already parsed glyphs.
//
// Later glyphs replace earlier ones with the same key.
func NewCatalog(glyphs ...Glyph) *Catalog {
	c := &Catalog{glyphs: make(map[string]Glyph, len(glyphs))}
	for _, g := range glyphs {
		c.glyphs[g.Key] = g
	}

	return c
}

// LoadCatalog reads every “.svg” file in dir, plus dir/[BundleFile] when present.
//
// The file name without its extension is the catalog key. Files take precedence
// over bundle entries with the same key. Any unreadable or malformed entry fails
// the whole load.
func LoadCatalog(ctx context.Context, fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading icons directory %q: %w", dir, err)
	}

	files := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".svg") {
			continue
		}

		files = append(files, entry.Name())
	}

	glyphs := make([]Glyph, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			// The embedded filesystem requires forward slashes on all systems.
			fullPath := path.Join(dir, name)

			content, err := fs.ReadFile(fsys, fullPath)
			if err != nil {
				return fmt.Errorf("reading icon %q: %w", fullPath, err)
			}

			glyph, err := parseGlyph(strings.TrimSuffix(name, ".svg"), content)
			if err != nil {
				return err
			}

			glyphs[i] = glyph

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundled, err := loadBundle(fsys, path.Join(dir, BundleFile))
	if err != nil {
		return nil, err
	}

	// Bundle first so files override it.
	return NewCatalog(append(bundled, glyphs...)...), nil
}

// loadBundle parses the JSON bundle at p. A missing bundle yields no glyphs.
func loadBundle(fsys fs.FS, p string) ([]Glyph, error) {
	data, err := fs.ReadFile(fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading icon bundle %q: %w", p, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s", errInvalidBundle, p)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: %s: top level must be an object", errInvalidBundle, p)
	}

	var (
		glyphs   []Glyph
		parseErr error
	)

	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			parseErr = fmt.Errorf("%w: %s", errNonStringBundleKey, key.String())

			return false
		}

		glyph, err := parseGlyph(key.String(), []byte(value.String()))
		if err != nil {
			parseErr = err

			return false
		}

		glyphs = append(glyphs, glyph)

		return true
	})

	if parseErr != nil {
		return nil, fmt.Errorf("reading icon bundle %q: %w", p, parseErr)
	}

	return glyphs, nil
}

// Glyph returns the glyph stored under key.
func (c *Catalog) Glyph(key string) (Glyph, bool) {
	g, ok := c.glyphs[key]

	return g, ok
}

// Keys returns all catalog keys, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.glyphs))
	for k := range c.glyphs {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Len returns the number of glyphs in the catalog.
func (c *Catalog) Len() int {
	return len(c.glyphs)
}
