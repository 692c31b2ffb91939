// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// writePOT renders refs as a gettext template, sorted by context, msgid and plural.
func writePOT(b *strings.Builder, header string, refs map[key][]ref) {
	b.WriteString(header)

	keys := slices.SortedFunc(maps.Keys(refs), func(a, b key) int {
		return cmp.Or(
			cmp.Compare(a.ctx, b.ctx),
			cmp.Compare(a.id, b.id),
			cmp.Compare(a.plural, b.plural),
		)
	})

	for i, k := range keys {
		rs := slices.Clone(refs[k])
		slices.SortFunc(rs, func(a, b ref) int {
			return cmp.Or(cmp.Compare(a.file, b.file), cmp.Compare(a.line, b.line))
		})

		b.WriteString("#:")

		for _, r := range slices.Compact(rs) {
			fmt.Fprintf(b, " %s:%d", r.file, r.line)
		}

		b.WriteByte('\n')

		if k.ctx != "" {
			fmt.Fprintf(b, "msgctxt %q\n", k.ctx)
		}

		fmt.Fprintf(b, "msgid %q\n", k.id)

		if k.plural != "" {
			fmt.Fprintf(b, "msgid_plural %q\n", k.plural)
			b.WriteString("msgstr[0] \"\"\nmsgstr[1] \"\"\n")
		} else {
			b.WriteString("msgstr \"\"\n")
		}

		if i < len(keys)-1 {
			b.WriteByte('\n')
		}
	}
}

// potHeader is the header entry of the template.
func potHeader(version, created string) string {
	var b strings.Builder

	b.WriteString("msgid \"\"\nmsgstr \"\"\n")
	fmt.Fprintf(&b, "\"Project-Id-Version: uikit %s\\n\"\n", version)
	fmt.Fprintf(&b, "\"POT-Creation-Date: %s\\n\"\n", created)
	b.WriteString(`"Language: en\n"` + "\n")
	b.WriteString(`"MIME-Version: 1.0\n"` + "\n")
	b.WriteString(`"Content-Type: text/plain; charset=UTF-8\n"` + "\n")
	b.WriteString(`"Content-Transfer-Encoding: 8bit\n"` + "\n")
	b.WriteString(`"Plural-Forms: nplurals=2; plural=(n != 1);\n"` + "\n\n")

	return b.String()
}
