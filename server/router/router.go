// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package router wires handlers and middleware onto an http.ServeMux.
package router

import (
	"net/http"

	"codeberg.org/hopps/uikit/server/middleware"
)

// Router is an http.ServeMux behind a middleware chain.
type Router struct {
	*http.ServeMux

	middlewares []middleware.Middleware
	errorPage   middleware.ErrorPage
}

// NewRouter returns a Router whose fallible handlers report errors through errorPage.
func NewRouter(errorPage middleware.ErrorPage) *Router {
	return &Router{
		ServeMux:  http.NewServeMux(),
		errorPage: errorPage,
	}
}

// Use appends m to the chain. The first middleware added runs first.
func (router *Router) Use(m middleware.Middleware) {
	router.middlewares = append(router.middlewares, m)
}

// HandleError registers a fallible handler wrapped in middleware.CatchError.
func (router *Router) HandleError(pattern string, handler middleware.HandlerWithError) {
	router.HandleFunc(pattern, middleware.CatchError(router.errorPage, handler))
}

// serve runs router.middlewares[i] and every one after it, then the mux.
func (router *Router) serve(i int, w http.ResponseWriter, r *http.Request) {
	if i == len(router.middlewares) {
		router.ServeMux.ServeHTTP(w, r)

		return
	}

	router.middlewares[i](w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		router.serve(i+1, w, r)
	}))
}

func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	router.serve(0, w, r)
}
