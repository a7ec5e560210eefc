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

// IsAdmin reports whether the principal holds the blanket administrator
// capability on the object: site administrator, direct ADMIN grant,
// bound admin group membership, or administrator standing on a
// container ancestor. The blanket capability has no dedicated switch,
// so a direct ADMIN grant makes IsAdmin true regardless of cascade
// configuration.
func (e *Engine) IsAdmin(ctx context.Context, p *models.Principal, obj models.ManagedObject) (bool, error) {
	return e.hasCapability(ctx, newEvaluation(), p, obj, CapAdmin)
}

// HasCapability reports whether the principal holds the named
// inheritable capability on the object. The decision is the OR of
// independent paths evaluated nearest layer first, each gated by the
// cascade switch for its (source layer, capability) pair.
func (e *Engine) HasCapability(ctx context.Context, p *models.Principal, obj models.ManagedObject, cap Capability) (bool, error) {
	return e.hasCapability(ctx, newEvaluation(), p, obj, cap)
}

func (e *Engine) hasCapability(ctx context.Context, ev *evaluation, p *models.Principal, obj models.ManagedObject, cap Capability) (bool, error) {
	closure, err := e.closure(ctx, ev, p)
	if err != nil {
		return false, err
	}
	if closure.ContainsName(models.GroupAdministrator) {
		return true, nil
	}

	ancestors, err := e.Ancestors(ctx, obj)
	if err != nil {
		return false, err
	}

	// The object's own layer first, then ancestors nearest first.
	layers := make([]models.ManagedObject, 0, len(ancestors)+1)
	layers = append(layers, obj)
	for i := len(ancestors) - 1; i >= 0; i-- {
		layers = append(layers, ancestors[i])
	}

	for _, layer := range layers {
		standing, err := e.adminStandingAt(ctx, p, closure, layer)
		if err != nil {
			return false, err
		}
		if !standing {
			continue
		}
		if e.switches.Enabled(cascadeSwitch(layer.ObjectType(), obj.ObjectType(), cap)) {
			return true, nil
		}
	}
	return false, nil
}

// adminStandingAt reports whether the principal is an administrator of
// this single layer on its own account: a direct ADMIN grant on the
// layer, or membership in the layer's bound administrator group. The
// site-admin bypass and ancestor cascading are the caller's concern.
func (e *Engine) adminStandingAt(ctx context.Context, p *models.Principal, closure GroupSet, layer models.ManagedObject) (bool, error) {
	granted, err := e.hasGrantedAction(ctx, p, closure, layer, models.ActionAdmin)
	if err != nil {
		return false, err
	}
	if granted {
		return true, nil
	}

	switch layer.ObjectType() {
	case models.TypeCommunity, models.TypeCollection:
		adminGroup, err := e.hierarchy.AdminGroupOf(ctx, layer)
		if err != nil {
			RecordStoreError("hierarchy")
			return false, fmt.Errorf("admin group of %s: %w", models.ObjectKey(layer), err)
		}
		if adminGroup != nil && closure.Contains(adminGroup.ID) {
			return true, nil
		}
	}
	return false, nil
}
