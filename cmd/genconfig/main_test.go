// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEnv(t *testing.T) {
	t.Parallel()

	out := renderEnv(exampleConfig())

	assert.True(t, strings.HasPrefix(out, "# uikit configuration"))
	assert.Contains(t, out, "## Basic\n")
	assert.Contains(t, out, "UIKIT_HOST=\"localhost\"\n")
	assert.Contains(t, out, "UIKIT_PORT=\"8383\"\n")
	assert.Contains(t, out, "# UIKIT_UNIXSOCKET=\n")
	assert.Contains(t, out, "# UIKIT_ICONS_RENDER_CACHE_SIZE=256\n")
	assert.Contains(t, out, "# UIKIT_CACHE_CONTROL_ICON_MAX_AGE=720h0m0s\n")
	assert.Contains(t, out, "# UIKIT_LOG_OUTPUTS=/dev/stderr\n")
	assert.NotContains(t, out, "## Build")
	assert.NotContains(t, out, "## Instance")
}

func TestRenderYAML(t *testing.T) {
	t.Parallel()

	out, err := renderYAML(exampleConfig())
	require.NoError(t, err)

	assert.Contains(t, out, "\nbasic:\n")
	assert.Contains(t, out, "  # host: localhost\n")
	assert.Contains(t, out, "  # iconMaxAge: 720h0m0s\n")
	assert.Contains(t, out, "\nicons:\n")
	assert.NotContains(t, out, "\nbuild:")

	// Every nested value is commented out.
	for line := range strings.SplitSeq(out, "\n") {
		if strings.HasPrefix(line, " ") {
			assert.True(t, strings.HasPrefix(strings.TrimLeft(line, " "), "#"), line)
		}
	}
}
