// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command i18n_extract scans the module for translatable strings and writes
// the gettext template.
package main

import (
	"flag"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	"codeberg.org/hopps/uikit/core/audit"
)

// defaultLabelFields are struct fields holding msgids that components
// translate when rendering.
const defaultLabelFields = "codeberg.org/hopps/uikit/ui/radio.Option.Label,codeberg.org/hopps/uikit/ui/radio.Config.AriaLabel"

func main() {
	outPath := flag.String("o", "assets/po/uikit.pot", "output file")
	fields := flag.String("fields", defaultLabelFields, "comma-separated pkgpath.Type.Field label fields")
	flag.Parse()

	audit.SetDefaultLogger()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get working directory")
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax}, "./...")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load packages")
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal().Msg("Failed to load packages due to errors")
	}

	refs := extractRefs(pkgs, findProjectRoot(wd), findI18nPkgPaths(pkgs), parseFields(*fields))

	var b strings.Builder
	writePOT(&b, potHeader(detectVersion(), time.Now().UTC().Format("2006-01-02 15:04+0000")), refs)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	if err := os.WriteFile(*outPath, []byte(b.String()), 0o644); err != nil { //nolint:gosec // the template is public
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write output file")
	}

	log.Info().
		Int("messages", len(refs)).
		Str("path", *outPath).
		Msg("Wrote translation template")
}

func parseFields(raw string) map[string]struct{} {
	out := make(map[string]struct{})

	for f := range strings.SplitSeq(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out[f] = struct{}{}
		}
	}

	return out
}

// detectVersion resolves a version string using git describe, or "dev".
func detectVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		return "dev"
	}

	return strings.TrimSpace(string(out))
}

// findProjectRoot prefers the git toplevel, then the nearest go.mod, then wd.
func findProjectRoot(wd string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = wd

	if out, err := cmd.Output(); err == nil {
		if root := strings.TrimSpace(string(out)); root != "" {
			return filepath.Clean(root)
		}
	}

	for dir := filepath.Clean(wd); ; dir = filepath.Dir(dir) {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}

		if filepath.Dir(dir) == dir {
			return wd
		}
	}
}
