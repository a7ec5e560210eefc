// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package models

// Well-known group names. Both groups always exist.
const (
	// GroupAnonymous is the universal group: every principal, including
	// the anonymous one, is a member.
	GroupAnonymous = "Anonymous"

	// GroupAdministrator is the site-wide administrator group.
	// Membership implies authorization for every object and action.
	GroupAdministrator = "Administrator"
)

// Group is a named set of principals. Membership and subgroup edges are
// store data; groups may nest and the graph is not guaranteed acyclic.
//
// Group satisfies ManagedObject so group-targeted features (such as
// canManageGroup) go through the same facade as content objects.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (g *Group) ObjectID() string       { return g.ID }
func (g *Group) ObjectType() ObjectType { return TypeGroup }
func (g *Group) ObjectName() string     { return g.Name }

// Builtin reports whether g is one of the two well-known groups, which
// only site administrators may manage.
func (g *Group) Builtin() bool {
	return g.Name == GroupAnonymous || g.Name == GroupAdministrator
}

// BoundRole identifies the role a group plays for the container object
// it is bound to.
type BoundRole string

const (
	BoundAdmin     BoundRole = "admin"
	BoundSubmitter BoundRole = "submitter"
	BoundWorkflow  BoundRole = "workflow"
)

// GroupBinding records that a group is the admin, submitter, or
// workflow group of a container object. Free-standing groups have no
// binding.
type GroupBinding struct {
	Object ManagedObject
	Role   BoundRole
}
