// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"codeberg.org/hopps/uikit/core/audit"
	"codeberg.org/hopps/uikit/core/idgen"
	"codeberg.org/hopps/uikit/i18n"
	"codeberg.org/hopps/uikit/server/request_context"
	"codeberg.org/hopps/uikit/ui/icon"
)

var errIconUnresolved = errors.New("icon resolved to nothing")

// IconSVG serves a standalone SVG for the logical name in the path.
//
// The query parameters size and class are forwarded to the icon. Rendered
// bytes are cached and carry a content ETag.
func (h *Handlers) IconSVG(w http.ResponseWriter, r *http.Request) error {
	raw := r.PathValue("name")

	name, ok := h.icons.Lookup(raw)
	if !ok || !h.icons.Has(name) {
		w.WriteHeader(http.StatusNotFound)

		return i18n.NewUserError(r.Context(), "Icon {{.Name}} not found", "Name", raw)
	}

	query := r.URL.Query()
	req := icon.Request{
		Name:  name,
		Size:  icon.ParseSize(query.Get("size")),
		Class: query.Get("class"),
	}

	body, err := h.cache.GetOrRender(iconCacheKey(req), func() ([]byte, error) {
		span := audit.Span{
			Kind:      audit.KindRender,
			RequestID: request_context.FromRequest(r).RequestID,
			URL:       string(req.Name),
		}
		_ = span.Begin(r.Context())

		rendered := h.icons.Resolve(req)

		span.End()

		if rendered == nil {
			span.Error = errIconUnresolved
			span.Log()

			return nil, errIconUnresolved
		}

		out := []byte(rendered.String())
		span.Size = len(out)
		span.Log()

		return out, nil
	})
	if err != nil {
		return err
	}

	etag := idgen.ContentTag(body)

	headers := w.Header()
	headers.Set("Content-Type", "image/svg+xml")
	headers.Set("ETag", etag)
	headers.Set("Cache-Control", "public, max-age="+strconv.Itoa(int(h.opts.IconMaxAge.Seconds())))

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)

		return nil
	}

	_, err = w.Write(body)

	return err
}

func iconCacheKey(req icon.Request) string {
	return string(req.Name) + "|" + req.Size.String() + "|" + req.Class
}

// etagMatches implements the weak comparison of If-None-Match.
func etagMatches(header, etag string) bool {
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}

	return false
}
