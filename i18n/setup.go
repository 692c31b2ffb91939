// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// poDomain is the gettext domain loaded for each locale.
const poDomain = "uikit"

// catalogue is the loaded translation state. It is replaced wholesale by Setup.
type catalogue struct {
	locales map[string]*gotext.Locale
	tags    []language.Tag
	matcher language.Matcher
	strict  bool
}

var current atomic.Pointer[catalogue]

// Options configures Setup.
type Options struct {
	// Dir is the directory within the file system holding <locale>.po files.
	Dir string
	// StrictMissingKeys logs and wraps lookups that have no translation.
	StrictMissingKeys bool
}

// Setup loads every <locale>.po file in opts.Dir of fsys and builds a language matcher.
//
// Locale file names may use hyphens or underscores ("pt-BR.po", "pt_BR.po").
// The template "<domain>.pot" is ignored. BaseLocale is always supported and
// is the fallback for matching. Calling Setup again replaces the previous state.
func Setup(fsys fs.FS, opts Options) error {
	dir := opts.Dir
	if dir == "" {
		dir = "po"
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read po directory: %w", err)
	}

	next := &catalogue{
		locales: make(map[string]*gotext.Locale),
		strict:  opts.StrictMissingKeys,
	}

	var loaded []language.Tag

	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || path.Ext(fileName) != ".po" {
			continue
		}

		t, err := language.Parse(strings.ReplaceAll(strings.TrimSuffix(fileName, ".po"), "_", "-"))
		if err != nil {
			Logger.Warn().Err(err).Str("file", fileName).Msg("Skipping invalid locale file")

			continue
		}

		canonical := t.String()

		po := gotext.NewPoFS(fsys)
		po.ParseFile(path.Join(dir, fileName))

		loc := gotext.NewLocale("", canonical)
		loc.AddTranslator(poDomain, po)

		next.locales[canonical] = loc
		loaded = append(loaded, t)

		Logger.Info().
			Str("locale", canonical).
			Str("domain", poDomain).
			Msg("Loaded locale")
	}

	slices.SortFunc(loaded, func(a, b language.Tag) int {
		return strings.Compare(a.String(), b.String())
	})

	// baseTag goes first so it is the matcher's default.
	next.tags = append([]language.Tag{baseTag}, slices.DeleteFunc(loaded, func(t language.Tag) bool {
		return t == baseTag
	})...)
	next.matcher = language.NewMatcher(next.tags)

	current.Store(next)

	return nil
}
