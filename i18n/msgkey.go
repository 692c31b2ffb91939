// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// MsgKey is a msgid that renders itself translated.
type MsgKey string

var _ templ.Component = MsgKey("")

// Tr translates the msgid for the locale in ctx.
func (s MsgKey) Tr(ctx context.Context) string {
	return Tr(ctx, string(s))
}

// Render writes the escaped translation.
func (s MsgKey) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, templ.EscapeString(s.Tr(ctx)))

	return err
}
