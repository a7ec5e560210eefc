// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"context"
	"fmt"

	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// HasAction reports whether the principal may perform the action on the
// object: site administrators may do anything; otherwise some active
// grant on the object must match the principal directly or through the
// group closure, for the action itself or for ADMIN (which subsumes
// every action on the granted object).
func (e *Engine) HasAction(ctx context.Context, p *models.Principal, obj models.ManagedObject, action models.Action) (bool, error) {
	return e.hasAction(ctx, newEvaluation(), p, obj, action)
}

func (e *Engine) hasAction(ctx context.Context, ev *evaluation, p *models.Principal, obj models.ManagedObject, action models.Action) (bool, error) {
	closure, err := e.closure(ctx, ev, p)
	if err != nil {
		return false, err
	}
	if closure.ContainsName(models.GroupAdministrator) {
		return true, nil
	}
	return e.hasGrantedAction(ctx, p, closure, obj, action)
}

// hasGrantedAction checks active grants only, without the site-admin
// bypass. The cascade resolver uses it to test admin standing at
// individual hierarchy layers where the bypass has already been
// applied once.
func (e *Engine) hasGrantedAction(ctx context.Context, p *models.Principal, closure GroupSet, obj models.ManagedObject, action models.Action) (bool, error) {
	grants, err := e.grants.ActiveGrants(ctx, obj)
	if err != nil {
		RecordStoreError("grant")
		return false, fmt.Errorf("active grants of %s: %w", models.ObjectKey(obj), err)
	}

	for _, grant := range grants {
		if grant.Action != action && grant.Action != models.ActionAdmin {
			continue
		}
		if grant.PrincipalID != "" && p != nil && grant.PrincipalID == p.ID {
			return true, nil
		}
		if grant.GroupID != "" && closure.Contains(grant.GroupID) {
			return true, nil
		}
	}
	return false, nil
}
