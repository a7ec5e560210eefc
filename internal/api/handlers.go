// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/athenaeum-dev/athenaeum/internal/auth"
	"github.com/athenaeum-dev/athenaeum/internal/authz"
	"github.com/athenaeum-dev/athenaeum/internal/models"
)

var validate = validator.New()

// Handler serves the authorization endpoints.
type Handler struct {
	svc    *authz.Service
	groups authz.GroupStore
	tokens *auth.TokenManager
}

type featureDTO struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ResourceTypes []string `json:"resourceTypes"`
}

type authorizationDTO struct {
	ID         string `json:"id"`
	Principal  string `json:"principal"`
	Feature    string `json:"feature"`
	ObjectType string `json:"objectType"`
	ObjectID   string `json:"objectId"`
	ObjectName string `json:"objectName,omitempty"`
}

func featureToDTO(f authz.Feature) featureDTO {
	types := f.SupportedTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return featureDTO{Name: f.Name(), Description: f.Description(), ResourceTypes: names}
}

func authorizationToDTO(a authz.Authorization) authorizationDTO {
	principal := authz.AnonymousPrincipalPart
	if a.Principal != nil {
		principal = a.Principal.ID
	}
	return authorizationDTO{
		ID:         a.ID,
		Principal:  principal,
		Feature:    a.Feature.Name(),
		ObjectType: string(a.Object.ObjectType()),
		ObjectID:   a.Object.ObjectID(),
		ObjectName: a.Object.ObjectName(),
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ListFeatures returns every registered feature.
func (h *Handler) ListFeatures(w http.ResponseWriter, r *http.Request) {
	features := h.svc.Registry().All()
	out := make([]featureDTO, len(features))
	for i, f := range features {
		out[i] = featureToDTO(f)
	}
	respondJSON(w, http.StatusOK, out)
}

// GetFeature returns one feature by name.
func (h *Handler) GetFeature(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.Registry().Find(chi.URLParam(r, "name"))
	if err != nil {
		respondAuthzError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, featureToDTO(f))
}

// GetAuthorization resolves a synthetic authorization identifier. The
// decision is recomputed on every call; a negative answer is 404.
func (h *Handler) GetAuthorization(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.FindAuthorization(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondAuthzError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, authorizationToDTO(*a))
}

// objectSearchQuery are the query parameters of the per-object
// authorization search.
type objectSearchQuery struct {
	Type    string `validate:"required"`
	ID      string `validate:"required"`
	Feature string
}

// SearchObjectAuthorizations lists the caller's positive authorizations
// on one object, optionally restricted to a single feature.
func (h *Handler) SearchObjectAuthorizations(w http.ResponseWriter, r *http.Request) {
	q := objectSearchQuery{
		Type:    r.URL.Query().Get("type"),
		ID:      r.URL.Query().Get("id"),
		Feature: r.URL.Query().Get("feature"),
	}
	if err := validate.Struct(q); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_QUERY", "type and id query parameters are required", nil)
		return
	}
	t, err := models.ParseObjectType(q.Type)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_TYPE", "unknown object type", nil)
		return
	}

	p := PrincipalFromContext(r.Context())
	granted, err := h.svc.AuthorizationsForObject(r.Context(), p, t, q.ID, q.Feature)
	if err != nil {
		respondAuthzError(w, err)
		return
	}

	out := make([]authorizationDTO, len(granted))
	for i, a := range granted {
		out[i] = authorizationToDTO(a)
	}
	respondJSON(w, http.StatusOK, out)
}

// containerSearchQuery are the query parameters of the
// authorized-containers search.
type containerSearchQuery struct {
	Type  string `validate:"required"`
	Query string
}

// SearchAuthorizedContainers lists the communities or collections the
// caller administers, filtered by a name substring.
func (h *Handler) SearchAuthorizedContainers(w http.ResponseWriter, r *http.Request) {
	q := containerSearchQuery{
		Type:  r.URL.Query().Get("type"),
		Query: r.URL.Query().Get("query"),
	}
	if err := validate.Struct(q); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_QUERY", "type query parameter is required", nil)
		return
	}
	t, err := models.ParseObjectType(q.Type)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_TYPE", "unknown object type", nil)
		return
	}

	p := PrincipalFromContext(r.Context())
	seq, err := h.svc.FindAuthorizedContainers(r.Context(), p, t, q.Query)
	if err != nil {
		respondAuthzError(w, err)
		return
	}

	type containerDTO struct {
		Type string `json:"type"`
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	out := []containerDTO{}
	for obj, walkErr := range seq {
		if walkErr != nil {
			respondAuthzError(w, walkErr)
			return
		}
		out = append(out, containerDTO{
			Type: string(obj.ObjectType()),
			ID:   obj.ObjectID(),
			Name: obj.ObjectName(),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// GroupManageable answers whether the caller may manage the group.
func (h *Handler) GroupManageable(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GroupByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondAuthzError(w, err)
		return
	}

	p := PrincipalFromContext(r.Context())
	manageable, err := h.svc.Engine().CanManageGroup(r.Context(), p, group)
	if err != nil {
		respondAuthzError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"manageable": manageable})
}
