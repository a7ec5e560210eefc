// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/athenaeum-dev/athenaeum/internal/authz"
	"github.com/athenaeum-dev/athenaeum/internal/logging"
)

// apiResponse is the uniform response envelope.
type apiResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	body, err := json.Marshal(&apiResponse{Status: "ok", Data: data})
	if err != nil {
		logging.Error().Err(err).Msg("marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("write response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", code).Err(err).Msg("api error")
	}

	w.Header().Set("Content-Type", "application/json")
	body, marshalErr := json.Marshal(&apiResponse{
		Status: "error",
		Error:  &apiError{Code: code, Message: message},
	})
	if marshalErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// respondAuthzError maps facade errors onto HTTP statuses: lookup
// failures are 404, grammar failures 400, everything else 500.
func respondAuthzError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authz.ErrFeatureNotFound):
		respondError(w, http.StatusNotFound, "FEATURE_NOT_FOUND", "feature not registered", nil)
	case errors.Is(err, authz.ErrObjectNotFound):
		respondError(w, http.StatusNotFound, "OBJECT_NOT_FOUND", "object not found", nil)
	case errors.Is(err, authz.ErrGroupNotFound):
		respondError(w, http.StatusNotFound, "GROUP_NOT_FOUND", "group not found", nil)
	case errors.Is(err, authz.ErrAuthorizationNotFound):
		respondError(w, http.StatusNotFound, "AUTHORIZATION_NOT_FOUND", "authorization does not hold", nil)
	case errors.Is(err, authz.ErrInvalidAuthorizationID):
		respondError(w, http.StatusBadRequest, "INVALID_AUTHORIZATION_ID", "malformed authorization id", nil)
	case errors.Is(err, authz.ErrUnsupportedType):
		respondError(w, http.StatusBadRequest, "UNSUPPORTED_TYPE", "object type not supported here", nil)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "evaluation failed", err)
	}
}
