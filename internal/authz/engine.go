// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"errors"
)

// Engine evaluates authorization decisions against externally supplied
// group, grant, and hierarchy data. It is safe for concurrent use: all
// per-decision scratch state lives in an evaluation value created at
// each public entry point.
type Engine struct {
	groups    GroupStore
	grants    GrantStore
	hierarchy HierarchyStore
	switches  Switches
}

// NewEngine creates an authorization engine.
func NewEngine(groups GroupStore, grants GrantStore, hierarchy HierarchyStore, switches Switches) (*Engine, error) {
	if groups == nil {
		return nil, errors.New("group store is required")
	}
	if grants == nil {
		return nil, errors.New("grant store is required")
	}
	if hierarchy == nil {
		return nil, errors.New("hierarchy store is required")
	}
	return &Engine{
		groups:    groups,
		grants:    grants,
		hierarchy: hierarchy,
		switches:  switches,
	}, nil
}

// Switches returns the cascade configuration matrix.
func (e *Engine) Switches() Switches {
	return e.switches
}

// evaluation is the request-scoped scratch state of one authorization
// decision. It memoizes group closures so one decision performs each
// store traversal at most once. It is never shared across requests:
// sharing would leak stale authorizations between principals.
type evaluation struct {
	closures map[string]GroupSet
}

func newEvaluation() *evaluation {
	return &evaluation{closures: make(map[string]GroupSet)}
}
