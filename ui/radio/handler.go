// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package radio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrUnknownValue is returned by ReadChange for a value outside the options.
var ErrUnknownValue = errors.New("value is not an option of this radio group")

// ChangeFunc receives the newly selected value.
type ChangeFunc func(ctx context.Context, value string) error

// ReadChange returns the value submitted for the group's field in r.
func (g *Group) ReadChange(r *http.Request) (string, error) {
	if err := r.ParseForm(); err != nil {
		return "", fmt.Errorf("parsing form: %w", err)
	}

	value := r.PostFormValue(g.cfg.Name)
	if !g.Has(value) {
		return "", fmt.Errorf("%s=%q: %w", g.cfg.Name, value, ErrUnknownValue)
	}

	return value, nil
}

// ChangeHandler serves POSTs from the rendered group.
//
// Each valid submission calls onChange exactly once. htmx requests then get
// 204 No Content; plain form posts are redirected back to the same-origin
// Referer, or "/". Values outside the options answer 400 without calling
// onChange, and an error from onChange answers 500.
func (g *Group) ChangeHandler(onChange ChangeFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)

			return
		}

		value, err := g.ReadChange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		if err := onChange(r.Context(), value); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

			return
		}

		if r.Header.Get("HX-Request") == "" {
			http.Redirect(w, r, returnPath(r), http.StatusSeeOther)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// returnPath is the path of a same-host Referer, or "/".
func returnPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}

	back := url.URL{Path: ref.Path, RawQuery: ref.RawQuery}

	return back.String()
}
