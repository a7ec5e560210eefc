// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"context"
	"fmt"
	"sort"

	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// GroupSet is the transitive closure of a principal's group
// memberships, keyed by group ID.
type GroupSet map[string]*models.Group

// Contains reports whether the set holds the group with the given ID.
func (s GroupSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// ContainsName reports whether the set holds a group with the given
// name.
func (s GroupSet) ContainsName(name string) bool {
	for _, g := range s {
		if g.Name == name {
			return true
		}
	}
	return false
}

// Names returns the sorted group names in the set.
func (s GroupSet) Names() []string {
	names := make([]string, 0, len(s))
	for _, g := range s {
		names = append(names, g.Name)
	}
	sort.Strings(names)
	return names
}

// Closure computes the transitive set of groups the principal
// effectively belongs to: the direct memberships, every parent group
// reachable from them, and always the universal Anonymous group. The
// anonymous principal's closure is exactly {Anonymous}.
//
// Traversal keeps a visited set keyed by group ID, so it terminates
// even if the subgroup graph contains a cycle; a cycle is silently
// flattened into the closure, never reported as an error.
func (e *Engine) Closure(ctx context.Context, p *models.Principal) (GroupSet, error) {
	return e.closure(ctx, newEvaluation(), p)
}

func (e *Engine) closure(ctx context.Context, ev *evaluation, p *models.Principal) (GroupSet, error) {
	key := models.PrincipalKey(p)
	if set, ok := ev.closures[key]; ok {
		RecordClosureMemo(true)
		return set, nil
	}
	RecordClosureMemo(false)

	anonymous, err := e.groups.GroupByName(ctx, models.GroupAnonymous)
	if err != nil {
		RecordStoreError("group")
		return nil, fmt.Errorf("resolve anonymous group: %w", err)
	}

	set := GroupSet{anonymous.ID: anonymous}

	if p != nil {
		direct, err := e.groups.DirectGroups(ctx, p.ID)
		if err != nil {
			RecordStoreError("group")
			return nil, fmt.Errorf("direct groups of principal %s: %w", p.ID, err)
		}

		visited := map[string]bool{anonymous.ID: true}
		queue := append([]*models.Group(nil), direct...)
		for len(queue) > 0 {
			g := queue[0]
			queue = queue[1:]
			if visited[g.ID] {
				continue
			}
			visited[g.ID] = true
			set[g.ID] = g

			parents, err := e.groups.DirectParents(ctx, g.ID)
			if err != nil {
				RecordStoreError("group")
				return nil, fmt.Errorf("parents of group %s: %w", g.ID, err)
			}
			queue = append(queue, parents...)
		}
	}

	ev.closures[key] = set
	RecordClosureSize(len(set))
	return set, nil
}

// IsSiteAdmin reports whether the principal's closure contains the
// Administrator group.
func (e *Engine) IsSiteAdmin(ctx context.Context, p *models.Principal) (bool, error) {
	return e.isSiteAdmin(ctx, newEvaluation(), p)
}

func (e *Engine) isSiteAdmin(ctx context.Context, ev *evaluation, p *models.Principal) (bool, error) {
	closure, err := e.closure(ctx, ev, p)
	if err != nil {
		return false, err
	}
	return closure.ContainsName(models.GroupAdministrator), nil
}
