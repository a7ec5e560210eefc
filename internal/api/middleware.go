// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/athenaeum-dev/athenaeum/internal/logging"
	"github.com/athenaeum-dev/athenaeum/internal/models"
)

type contextKey string

// principalContextKey carries the authenticated *models.Principal, or
// nil for anonymous requests.
const principalContextKey contextKey = "principal"

// PrincipalFromContext returns the request principal. nil means the
// anonymous principal, which is a valid subject for every decision.
func PrincipalFromContext(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalContextKey).(*models.Principal)
	return p
}

// principalMiddleware resolves the Authorization header into a
// principal. A missing header is the anonymous principal, not an
// error; a present but invalid bearer token is rejected so that a
// caller with an expired session sees 401 rather than silently
// degraded anonymous answers.
func (h *Handler) principalMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || h.tokens == nil {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			respondError(w, http.StatusUnauthorized, "INVALID_AUTH_HEADER", "authorization header must be a bearer token", nil)
			return
		}

		p, err := h.tokens.ValidateToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "bearer token rejected", err)
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogging emits one structured log line per request.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
