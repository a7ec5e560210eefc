// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"context"

	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// GroupStore supplies group membership data. The engine reads direct
// edges only; transitive resolution is its own job.
type GroupStore interface {
	// GroupByID resolves a group by identifier.
	// Returns ErrGroupNotFound if absent.
	GroupByID(ctx context.Context, id string) (*models.Group, error)

	// GroupByName resolves a group by its unique name. Used for the
	// well-known Anonymous and Administrator groups.
	// Returns ErrGroupNotFound if absent.
	GroupByName(ctx context.Context, name string) (*models.Group, error)

	// DirectMembers lists the principals directly in the group,
	// excluding members of subgroups.
	DirectMembers(ctx context.Context, groupID string) ([]*models.Principal, error)

	// DirectParents lists the groups the given group is directly a
	// subgroup of.
	DirectParents(ctx context.Context, groupID string) ([]*models.Group, error)

	// DirectGroups lists the groups the principal is directly a member
	// of, excluding parent groups and the implicit Anonymous membership.
	DirectGroups(ctx context.Context, principalID string) ([]*models.Group, error)
}

// GrantStore supplies the resource policies attached to an object,
// already filtered to those whose validity window covers now.
type GrantStore interface {
	ActiveGrants(ctx context.Context, obj models.ManagedObject) ([]models.Grant, error)
}

// HierarchyStore supplies the containment hierarchy and the group
// bindings of container objects.
type HierarchyStore interface {
	// Site returns the singleton hierarchy root.
	Site(ctx context.Context) (*models.Site, error)

	// ParentOf returns the object's parent, or nil for the site.
	// A logo bitstream's parent is the community or collection that
	// owns it directly.
	ParentOf(ctx context.Context, obj models.ManagedObject) (models.ManagedObject, error)

	// Children lists the object's direct children in a stable order.
	Children(ctx context.Context, obj models.ManagedObject) ([]models.ManagedObject, error)

	// ObjectByTypeAndID resolves an object reference.
	// Returns ErrObjectNotFound if absent.
	ObjectByTypeAndID(ctx context.Context, t models.ObjectType, id string) (models.ManagedObject, error)

	// AdminGroupOf returns the bound administrator group of a community
	// or collection, or nil if none is bound.
	AdminGroupOf(ctx context.Context, obj models.ManagedObject) (*models.Group, error)

	// SubmitterGroupOf returns the bound submitter group of a
	// collection, or nil.
	SubmitterGroupOf(ctx context.Context, col *models.Collection) (*models.Group, error)

	// WorkflowGroupsOf lists the workflow-step groups of a collection.
	WorkflowGroupsOf(ctx context.Context, col *models.Collection) ([]*models.Group, error)

	// BindingOf reports which container object the group is bound to
	// and in which role, or nil for a free-standing group.
	BindingOf(ctx context.Context, group *models.Group) (*models.GroupBinding, error)
}
