// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package models

// Principal is an authenticated identity evaluated for authorization.
//
// The anonymous principal is represented by a nil *Principal throughout
// the engine: anonymity is a first-class state, not an error. Anonymous
// is implicitly a member of the Anonymous group, and so is every
// authenticated principal.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// PrincipalKey returns the identifier used to key per-principal state.
// The anonymous principal maps to the empty string.
func PrincipalKey(p *Principal) string {
	if p == nil {
		return ""
	}
	return p.ID
}
