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

// CanManageGroup reports whether the principal may edit the group's
// membership. Rules, first match wins:
//
//  1. The well-known Anonymous and Administrator groups are managed by
//     site administrators only.
//  2. A community's bound admin group is managed by site
//     administrators, holders of a direct ADMIN grant on the community,
//     and community administrators of the community or an ancestor
//     community when community-admin.admin-group is enabled.
//  3. A collection's bound admin, submitter, or workflow group is
//     managed by site administrators, the collection's own
//     administrators (self-management), and administrators of an
//     ancestor community when the matching
//     community-admin.collection.* switch is enabled.
//  4. Free-standing groups are managed by site administrators only.
//
// Denial is "not authorized", never an error.
func (e *Engine) CanManageGroup(ctx context.Context, p *models.Principal, group *models.Group) (bool, error) {
	ev := newEvaluation()

	if group.Builtin() {
		return e.isSiteAdmin(ctx, ev, p)
	}

	binding, err := e.hierarchy.BindingOf(ctx, group)
	if err != nil {
		RecordStoreError("hierarchy")
		return false, fmt.Errorf("binding of group %s: %w", group.ID, err)
	}
	if binding == nil {
		return e.isSiteAdmin(ctx, ev, p)
	}
	return e.canManageBound(ctx, ev, p, binding.Object, binding.Role)
}

// CanManageAdminGroup reports whether the principal may manage the
// admin group bound to the community or collection, whether or not one
// is currently bound (the same answer governs creating the group).
func (e *Engine) CanManageAdminGroup(ctx context.Context, p *models.Principal, obj models.ManagedObject) (bool, error) {
	return e.canManageBound(ctx, newEvaluation(), p, obj, models.BoundAdmin)
}

// CanManageSubmitters reports whether the principal may manage the
// collection's submitter group.
func (e *Engine) CanManageSubmitters(ctx context.Context, p *models.Principal, col *models.Collection) (bool, error) {
	return e.canManageBound(ctx, newEvaluation(), p, col, models.BoundSubmitter)
}

// CanManageWorkflowGroups reports whether the principal may manage the
// collection's workflow-step groups.
func (e *Engine) CanManageWorkflowGroups(ctx context.Context, p *models.Principal, col *models.Collection) (bool, error) {
	return e.canManageBound(ctx, newEvaluation(), p, col, models.BoundWorkflow)
}

func (e *Engine) canManageBound(ctx context.Context, ev *evaluation, p *models.Principal, obj models.ManagedObject, role models.BoundRole) (bool, error) {
	closure, err := e.closure(ctx, ev, p)
	if err != nil {
		return false, err
	}
	if closure.ContainsName(models.GroupAdministrator) {
		return true, nil
	}

	switch obj.ObjectType() {
	case models.TypeCommunity:
		if role != models.BoundAdmin {
			return false, nil
		}
		return e.canManageCommunityAdminGroup(ctx, p, closure, obj)
	case models.TypeCollection:
		return e.canManageCollectionGroup(ctx, p, closure, obj, role)
	default:
		return false, nil
	}
}

// canManageCommunityAdminGroup applies rule 2. A direct ADMIN grant on
// the community always suffices; admin standing derived from admin
// group membership (own or an ancestor community's) is additionally
// gated by community-admin.admin-group, so disabling that switch stops
// community admins from editing the very group their standing comes
// from.
func (e *Engine) canManageCommunityAdminGroup(ctx context.Context, p *models.Principal, closure GroupSet, community models.ManagedObject) (bool, error) {
	granted, err := e.hasGrantedAction(ctx, p, closure, community, models.ActionAdmin)
	if err != nil {
		return false, err
	}
	if granted {
		return true, nil
	}

	if !e.switches.Enabled(SwitchCommunityAdminAdminGroup) {
		return false, nil
	}

	layers, err := e.communityLayers(ctx, community)
	if err != nil {
		return false, err
	}
	for _, layer := range layers {
		standing, err := e.adminStandingAt(ctx, p, closure, layer)
		if err != nil {
			return false, err
		}
		if standing {
			return true, nil
		}
	}
	return false, nil
}

// canManageCollectionGroup applies rule 3: the collection's own
// administrators manage all three bound group kinds unconditionally,
// and community admins above the collection are gated per group kind.
func (e *Engine) canManageCollectionGroup(ctx context.Context, p *models.Principal, closure GroupSet, col models.ManagedObject, role models.BoundRole) (bool, error) {
	standing, err := e.adminStandingAt(ctx, p, closure, col)
	if err != nil {
		return false, err
	}
	if standing {
		return true, nil
	}

	var gate string
	switch role {
	case models.BoundAdmin:
		gate = SwitchCommunityAdminCollectionAdminGroup
	case models.BoundSubmitter:
		gate = SwitchCommunityAdminCollectionSubmitters
	case models.BoundWorkflow:
		gate = SwitchCommunityAdminCollectionWorkflows
	default:
		return false, nil
	}
	if !e.switches.Enabled(gate) {
		return false, nil
	}

	ancestors, err := e.Ancestors(ctx, col)
	if err != nil {
		return false, err
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if ancestors[i].ObjectType() != models.TypeCommunity {
			continue
		}
		standing, err := e.adminStandingAt(ctx, p, closure, ancestors[i])
		if err != nil {
			return false, err
		}
		if standing {
			return true, nil
		}
	}
	return false, nil
}

// communityLayers returns the community itself followed by its ancestor
// communities, nearest first.
func (e *Engine) communityLayers(ctx context.Context, community models.ManagedObject) ([]models.ManagedObject, error) {
	ancestors, err := e.Ancestors(ctx, community)
	if err != nil {
		return nil, err
	}

	layers := []models.ManagedObject{community}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if ancestors[i].ObjectType() == models.TypeCommunity {
			layers = append(layers, ancestors[i])
		}
	}
	return layers, nil
}
