// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

//go:build integration

/*
To run these tests, specify `-tags=integration` when running `go test`.
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

const (
	// Server configuration constants.
	host      = "127.0.0.1:8282"
	authority = "http://127.0.0.1:8282"

	// Polling constants.
	retryCount  = 10
	dialTimeout = 250 * time.Millisecond
)

// httpTestCase defines a test case.
type httpTestCase struct {
	URL                string
	Method             string
	ExpectedStatusCode int

	// POST requests specific fields
	FormData map[string]string
}

// setDefault sets the default values for the test case.
func (c *httpTestCase) setDefault() {
	if c.ExpectedStatusCode == 0 {
		c.ExpectedStatusCode = http.StatusOK
	}
}

// TestMain starts the server and waits for it to be available before running tests.
func TestMain(m *testing.M) {
	os.Setenv("UIKIT_HOST", "127.0.0.1")
	os.Setenv("UIKIT_PORT", "8282")
	os.Setenv("UIKIT_CONFIGFILE", "/nonexistent/config.yaml")

	go func() {
		if err := run(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if !waitForServerReady() {
		log.Fatalf("Server did not start in time")
	}

	os.Exit(m.Run())
}

// waitForServerReady polls the server until it's available or the retries are exhausted.
func waitForServerReady() bool {
	for range retryCount {
		conn, err := net.DialTimeout("tcp", host, dialTimeout)
		if err == nil {
			_ = conn.Close()

			return true
		}

		time.Sleep(dialTimeout)
	}

	return false
}

func TestAllRoutes(t *testing.T) {
	t.Parallel()

	testCases := []httpTestCase{
		{URL: "/", Method: http.MethodGet},
		{URL: "/?lang=de", Method: http.MethodGet},
		{URL: "/icons/Bell", Method: http.MethodGet},
		{URL: "/icons/ArrowLeft?size=lg&class=text-muted", Method: http.MethodGet},
		{URL: "/icons/Nope", Method: http.MethodGet, ExpectedStatusCode: http.StatusNotFound},
		{URL: "/healthz", Method: http.MethodGet},
		{URL: "/no/such/page", Method: http.MethodGet, ExpectedStatusCode: http.StatusNotFound},
		{
			URL:                "/radio/theme",
			Method:             http.MethodPost,
			FormData:           map[string]string{"theme": "dark"},
			ExpectedStatusCode: http.StatusSeeOther,
		},
		{
			URL:                "/radio/theme",
			Method:             http.MethodPost,
			FormData:           map[string]string{"theme": "sepia"},
			ExpectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s %s", tc.Method, tc.URL), func(t *testing.T) {
			t.Parallel()
			tc.setDefault()

			resp := makeRequest(t, buildRequest(t, authority+tc.URL, tc.Method, tc.FormData))
			defer resp.Body.Close()

			if resp.StatusCode != tc.ExpectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.ExpectedStatusCode, resp.StatusCode)
			}
		})
	}
}

func buildRequest(t *testing.T, link, method string, formData map[string]string) *http.Request {
	t.Helper()

	form := url.Values{}
	for k, v := range formData {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(context.TODO(), method, link, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if formData != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	return req
}

// makeRequest executes req without following redirects.
func makeRequest(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	return resp
}
