// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		requestURL       string
		expectedStatus   int
		expectedLocation string
	}{
		{
			name:           "root is untouched",
			requestURL:     "/",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "canonical icon path is untouched",
			requestURL:     "/icons/Check?size=md",
			expectedStatus: http.StatusOK,
		},
		{
			name:             "trailing slash is removed",
			requestURL:       "/dev/components/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/dev/components",
		},
		{
			name:             "query survives trailing slash redirect",
			requestURL:       "/dev/components/?lang=de",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/dev/components?lang=de",
		},
		{
			name:             "svg extension is dropped",
			requestURL:       "/icons/Check.svg?size=lg",
			expectedStatus:   http.StatusMovedPermanently,
			expectedLocation: "/icons/Check?size=lg",
		},
		{
			name:             "catalog key becomes logical name",
			requestURL:       "/icons/CheckIcon",
			expectedStatus:   http.StatusMovedPermanently,
			expectedLocation: "/icons/Check",
		},
		{
			name:             "catalog file name becomes logical name",
			requestURL:       "/icons/MagnifyingGlassIcon.svg",
			expectedStatus:   http.StatusMovedPermanently,
			expectedLocation: "/icons/MagnifyingGlass",
		},
		{
			name:           "bare suffix is left alone",
			requestURL:     "/icons/Icon",
			expectedStatus: http.StatusOK,
		},
		{
			name:             "only slashes collapse to root",
			requestURL:       "///",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := Wrap(NormalizeURL, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.requestURL, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
		})
	}
}
