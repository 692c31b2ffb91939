// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package sample exercises every form the extractor recognises.
package sample

import (
	"context"

	"codeberg.org/hopps/uikit/i18n"
	"codeberg.org/hopps/uikit/ui/radio"
)

const title i18n.MsgKey = "Title"

var statuses = map[int]i18n.MsgKey{404: "Not Found"}

var options = []radio.Option{{Label: "Light", Value: "light"}}

func texts(ctx context.Context, dynamic string) []string {
	return []string{
		i18n.Tr(ctx, "Hello"),
		i18n.TrC(ctx, "layout", "Horizontal"),
		i18n.TrN(ctx, "{{.Count}} icon", "{{.Count}} icons", 2, "Count", 2),
		i18n.NewUserError(ctx, "Oops").Error(),
		i18n.Tr(ctx, "Hello"),
		i18n.Tr(ctx, dynamic),
		title.Tr(ctx),
		statuses[404].Tr(ctx),
		options[0].Value,
	}
}
