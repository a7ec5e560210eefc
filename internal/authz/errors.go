// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import "errors"

// Engine and facade errors.
var (
	// ErrFeatureNotFound is returned when a feature name is not
	// registered. A lookup failure, not a security signal.
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrObjectNotFound is returned when an object reference does not
	// resolve in the hierarchy store.
	ErrObjectNotFound = errors.New("object not found")

	// ErrGroupNotFound is returned when a group reference does not
	// resolve in the group store.
	ErrGroupNotFound = errors.New("group not found")

	// ErrUnsupportedType is returned by feature registration when a
	// feature declares no valid object types. At decision time an
	// inapplicable type is reported as "not authorized", never as an
	// error.
	ErrUnsupportedType = errors.New("feature does not apply to object type")

	// ErrDuplicateFeature is returned when registering a feature whose
	// name is already taken.
	ErrDuplicateFeature = errors.New("feature already registered")

	// ErrInvalidAuthorizationID is returned when a synthetic
	// authorization identifier does not match the documented grammar.
	ErrInvalidAuthorizationID = errors.New("malformed authorization id")

	// ErrAuthorizationNotFound is returned by authorization-ID lookup
	// when the recomputed decision is negative.
	ErrAuthorizationNotFound = errors.New("authorization not found")
)
