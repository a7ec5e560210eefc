// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

// Package api exposes the authorization facade over HTTP using the Chi
// router. All endpoints are read-only questions about the current
// grant, group, and hierarchy data; administration happens through the
// stores.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/athenaeum-dev/athenaeum/internal/auth"
	"github.com/athenaeum-dev/athenaeum/internal/authz"
	"github.com/athenaeum-dev/athenaeum/internal/config"
)

// Router assembles the HTTP surface.
type Router struct {
	handler *Handler
	cfg     config.ServerConfig
}

// NewRouter creates a router over the authorization facade. tokens may
// be nil, in which case every request is treated as anonymous.
func NewRouter(svc *authz.Service, groups authz.GroupStore, tokens *auth.TokenManager, cfg config.ServerConfig) *Router {
	return &Router{
		handler: &Handler{svc: svc, groups: groups, tokens: tokens},
		cfg:     cfg,
	}
}

// Setup builds the handler tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogging)
	r.Use(httpMetrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/healthz", router.handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/authz", func(r chi.Router) {
		if router.cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(router.cfg.RateLimitReqs, router.cfg.RateLimitWindow))
		}
		r.Use(router.handler.principalMiddleware)

		r.Get("/features", router.handler.ListFeatures)
		r.Get("/features/{name}", router.handler.GetFeature)

		r.Get("/authorizations/search/object", router.handler.SearchObjectAuthorizations)
		r.Get("/authorizations/{id}", router.handler.GetAuthorization)

		r.Get("/search/authorized-containers", router.handler.SearchAuthorizedContainers)

		r.Post("/groups/{id}/manageable", router.handler.GroupManageable)
	})

	return r
}
