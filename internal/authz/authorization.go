// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"fmt"
	"strings"

	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// AnonymousPrincipalPart is the principal segment of an authorization
// ID issued for the anonymous principal.
const AnonymousPrincipalPart = "anonymous"

// Authorization is one positive feature decision, addressable by a
// synthetic identifier. Authorizations are never stored: every lookup
// recomputes the decision against current data.
type Authorization struct {
	ID        string               `json:"id"`
	Principal *models.Principal    `json:"-"`
	Feature   Feature              `json:"-"`
	Object    models.ManagedObject `json:"-"`
}

// AuthorizationID encodes the synthetic identifier
// "principal_feature_type.id". The principal segment is the sentinel
// "anonymous" for the anonymous principal. The encoding is reversible
// because principal IDs are UUIDs and feature names never contain an
// underscore.
func AuthorizationID(p *models.Principal, featureName string, obj models.ManagedObject) string {
	principalPart := AnonymousPrincipalPart
	if p != nil {
		principalPart = p.ID
	}
	return principalPart + "_" + featureName + "_" + models.ObjectKey(obj)
}

// ParsedAuthorizationID is the decoded form of a synthetic
// authorization identifier. An empty PrincipalID means the anonymous
// principal.
type ParsedAuthorizationID struct {
	PrincipalID string
	FeatureName string
	ObjectType  models.ObjectType
	ObjectID    string
}

// Principal returns the decoded principal, nil for anonymous.
func (p ParsedAuthorizationID) Principal() *models.Principal {
	if p.PrincipalID == "" {
		return nil
	}
	return &models.Principal{ID: p.PrincipalID}
}

// ParseAuthorizationID decodes a synthetic authorization identifier.
// It validates grammar only; whether the named feature and object exist
// is the caller's concern.
func ParseAuthorizationID(id string) (ParsedAuthorizationID, error) {
	parts := strings.SplitN(id, "_", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return ParsedAuthorizationID{}, fmt.Errorf("%q: %w", id, ErrInvalidAuthorizationID)
	}

	typePart, objectID, ok := strings.Cut(parts[2], ".")
	if !ok || objectID == "" {
		return ParsedAuthorizationID{}, fmt.Errorf("%q: missing object reference: %w", id, ErrInvalidAuthorizationID)
	}
	objectType, err := models.ParseObjectType(typePart)
	if err != nil {
		return ParsedAuthorizationID{}, fmt.Errorf("%q: %v: %w", id, err, ErrInvalidAuthorizationID)
	}

	parsed := ParsedAuthorizationID{
		FeatureName: parts[1],
		ObjectType:  objectType,
		ObjectID:    objectID,
	}
	if parts[0] != AnonymousPrincipalPart {
		parsed.PrincipalID = parts[0]
	}
	return parsed, nil
}
