// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package models

import (
	"fmt"
	"time"
)

// Action is the operation a grant authorizes on an object.
type Action string

const (
	ActionRead   Action = "READ"
	ActionWrite  Action = "WRITE"
	ActionAdd    Action = "ADD"
	ActionRemove Action = "REMOVE"
	ActionDelete Action = "DELETE"

	// ActionAdmin subsumes every other action on the granted object.
	ActionAdmin Action = "ADMIN"
)

// Actions lists every valid action tag.
var Actions = []Action{
	ActionRead, ActionWrite, ActionAdd, ActionRemove, ActionDelete, ActionAdmin,
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// ParseAction converts a string into an Action.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown action %q", s)
	}
	return a, nil
}

// Grant is a resource policy: one subject (a principal or a group,
// exactly one of the two), one action, one target object, optionally
// bounded to a validity window. The engine only ever reads grants;
// creation and removal belong to the administrative layer.
type Grant struct {
	ID          string     `json:"id"`
	ObjectType  ObjectType `json:"object_type"`
	ObjectID    string     `json:"object_id"`
	Action      Action     `json:"action"`
	PrincipalID string     `json:"principal_id,omitempty"`
	GroupID     string     `json:"group_id,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// ActiveAt reports whether the grant's validity window covers now.
// A grant with no window is always active.
func (g Grant) ActiveAt(now time.Time) bool {
	if g.StartDate != nil && now.Before(*g.StartDate) {
		return false
	}
	if g.EndDate != nil && now.After(*g.EndDate) {
		return false
	}
	return true
}

// Validate checks grant well-formedness: a valid target, a valid
// action, and exactly one subject.
func (g Grant) Validate() error {
	if !g.ObjectType.Valid() {
		return fmt.Errorf("grant %s: unknown object type %q", g.ID, g.ObjectType)
	}
	if g.ObjectID == "" {
		return fmt.Errorf("grant %s: missing object id", g.ID)
	}
	if !g.Action.Valid() {
		return fmt.Errorf("grant %s: unknown action %q", g.ID, g.Action)
	}
	hasPrincipal := g.PrincipalID != ""
	hasGroup := g.GroupID != ""
	if hasPrincipal == hasGroup {
		return fmt.Errorf("grant %s: exactly one of principal or group subject required", g.ID)
	}
	return nil
}
