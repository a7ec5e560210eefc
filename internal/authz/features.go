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

// Built-in feature names.
const (
	FeatureAdministrator       = "administrator"
	FeatureCanManagePolicies   = "canManagePolicies"
	FeatureCanManageAdminGroup = "canManageAdminGroup"
	FeatureCanManageSubmitters = "canManageSubmitters"
	FeatureCanManageWorkflows  = "canManageWorkflowGroups"
	FeatureCanManageBundles    = "canManageBitstreamBundles"
	FeatureCanDeleteBitstreams = "canDeleteBitstreams"
	FeatureCanManageGroup      = "canManageGroup"
	FeatureCanWithdrawItem     = "canWithdrawItem"
	FeatureCanReinstateItem    = "canReinstateItem"
	FeatureCanRead             = "canRead"
)

// RegisterBuiltinFeatures registers the platform's standard feature set
// into the registry.
func RegisterBuiltinFeatures(r *Registry) error {
	builtins := []Feature{
		NewFeature(
			FeatureAdministrator,
			"The user is an administrator of the object, directly or by cascade",
			models.ContentTypes,
			func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
				return e.IsAdmin(ctx, p, obj)
			},
		),
		NewFeature(
			FeatureCanManagePolicies,
			"The user can add, edit, and remove resource policies on the object",
			[]models.ObjectType{models.TypeCommunity, models.TypeCollection, models.TypeItem},
			func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
				return e.HasCapability(ctx, p, obj, CapManagePolicies)
			},
		),
		NewFeature(
			FeatureCanManageAdminGroup,
			"The user can create and edit the container's administrator group",
			[]models.ObjectType{models.TypeCommunity, models.TypeCollection},
			func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
				return e.CanManageAdminGroup(ctx, p, obj)
			},
		),
		NewFeature(
			FeatureCanManageSubmitters,
			"The user can create and edit the collection's submitter group",
			[]models.ObjectType{models.TypeCollection},
			func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
				col, ok := obj.(*models.Collection)
				if !ok {
					return false, fmt.Errorf("%s: expected collection, got %T", FeatureCanManageSubmitters, obj)
				}
				return e.CanManageSubmitters(ctx, p, col)
			},
		),
		NewFeature(
			FeatureCanManageWorkflows,
			"The user can create and edit the collection's workflow step groups",
			[]models.ObjectType{models.TypeCollection},
			func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
				col, ok := obj.(*models.Collection)
				if !ok {
					return false, fmt.Errorf("%s: expected collection, got %T", FeatureCanManageWorkflows, obj)
				}
				return e.CanManageWorkflowGroups(ctx, p, col)
			},
		),
		NewFeature(
			FeatureCanManageBundles,
			"The user can add bundles and bitstreams to the item",
			[]models.ObjectType{models.TypeItem},
			func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
				return e.HasCapability(ctx, p, obj, CapCreateBitstream)
			},
		),
		NewFeature(
			FeatureCanDeleteBitstreams,
			"The user can remove bitstreams from the item",
			[]models.ObjectType{models.TypeItem},
			func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
				return e.HasCapability(ctx, p, obj, CapDeleteBitstream)
			},
		),
		NewFeature(
			FeatureCanManageGroup,
			"The user can edit the group's membership",
			[]models.ObjectType{models.TypeGroup},
			func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
				group, ok := obj.(*models.Group)
				if !ok {
					return false, fmt.Errorf("%s: expected group, got %T", FeatureCanManageGroup, obj)
				}
				return e.CanManageGroup(ctx, p, group)
			},
		),
		NewFeature(
			FeatureCanWithdrawItem,
			"The user can withdraw the item from the repository",
			[]models.ObjectType{models.TypeItem},
			func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
				item, ok := obj.(*models.Item)
				if !ok {
					return false, fmt.Errorf("%s: expected item, got %T", FeatureCanWithdrawItem, obj)
				}
				if item.Withdrawn {
					return false, nil
				}
				return e.IsAdmin(ctx, p, item)
			},
		),
		NewFeature(
			FeatureCanReinstateItem,
			"The user can reinstate a withdrawn item",
			[]models.ObjectType{models.TypeItem},
			func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
				item, ok := obj.(*models.Item)
				if !ok {
					return false, fmt.Errorf("%s: expected item, got %T", FeatureCanReinstateItem, obj)
				}
				if !item.Withdrawn {
					return false, nil
				}
				return e.IsAdmin(ctx, p, item)
			},
		),
		NewFeature(
			FeatureCanRead,
			"The user can read the object",
			models.ContentTypes,
			func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
				return e.HasAction(ctx, p, obj, models.ActionRead)
			},
		),
	}

	for _, f := range builtins {
		if err := r.Register(f); err != nil {
			return err
		}
	}
	return nil
}
