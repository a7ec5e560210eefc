// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

// Package memory provides a mutex-protected in-memory implementation
// of the authorization store contracts. It backs the dev-mode server
// and tests; nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/athenaeum-dev/athenaeum/internal/authz"
	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// Store implements authz.GroupStore, authz.GrantStore, and
// authz.HierarchyStore over plain maps. All methods are safe for
// concurrent use.
type Store struct {
	mu sync.RWMutex

	site *models.Site

	groupsByID   map[string]*models.Group
	groupsByName map[string]*models.Group
	members      map[string][]string // group ID -> principal IDs
	memberOf     map[string][]string // principal ID -> group IDs
	subgroups    map[string][]string // group ID -> child group IDs
	parentGroups map[string][]string // group ID -> parent group IDs

	objects  map[string]models.ManagedObject // object key -> object
	parentOf map[string]string               // child key -> parent key
	children map[string][]string             // parent key -> child keys, insertion order

	grants map[string][]models.Grant // object key -> grants

	adminGroups     map[string]string   // object key -> group ID
	submitterGroups map[string]string   // collection key -> group ID
	workflowGroups  map[string][]string // collection key -> group IDs
	bindings        map[string]*models.GroupBinding
}

// New creates a store bootstrapped with the site root and the
// well-known Anonymous and Administrator groups.
func New() *Store {
	s := &Store{
		groupsByID:      make(map[string]*models.Group),
		groupsByName:    make(map[string]*models.Group),
		members:         make(map[string][]string),
		memberOf:        make(map[string][]string),
		subgroups:       make(map[string][]string),
		parentGroups:    make(map[string][]string),
		objects:         make(map[string]models.ManagedObject),
		parentOf:        make(map[string]string),
		children:        make(map[string][]string),
		grants:          make(map[string][]models.Grant),
		adminGroups:     make(map[string]string),
		submitterGroups: make(map[string]string),
		workflowGroups:  make(map[string][]string),
		bindings:        make(map[string]*models.GroupBinding),
	}
	s.site = &models.Site{ID: models.NewID(), Name: "Athenaeum"}
	s.objects[models.ObjectKey(s.site)] = s.site
	s.mustPutGroup(&models.Group{ID: models.NewID(), Name: models.GroupAnonymous})
	s.mustPutGroup(&models.Group{ID: models.NewID(), Name: models.GroupAdministrator})
	return s
}

func (s *Store) mustPutGroup(g *models.Group) {
	s.groupsByID[g.ID] = g
	s.groupsByName[g.Name] = g
}

// Write API.

// PutGroup adds or replaces a group. Group names are unique.
func (s *Store) PutGroup(g *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.groupsByName[g.Name]; ok && existing.ID != g.ID {
		return fmt.Errorf("group name %q already taken by %s", g.Name, existing.ID)
	}
	if old, ok := s.groupsByID[g.ID]; ok {
		delete(s.groupsByName, old.Name)
	}
	s.mustPutGroup(g)
	return nil
}

// AddMember makes the principal a direct member of the group.
func (s *Store) AddMember(principalID, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groupsByID[groupID]; !ok {
		return fmt.Errorf("add member: group %s: %w", groupID, authz.ErrGroupNotFound)
	}
	if !contains(s.members[groupID], principalID) {
		s.members[groupID] = append(s.members[groupID], principalID)
		s.memberOf[principalID] = append(s.memberOf[principalID], groupID)
	}
	return nil
}

// AddSubgroup makes child a direct subgroup of parent. Members of the
// child inherit the parent transitively through the closure resolver.
func (s *Store) AddSubgroup(parentID, childID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range []string{parentID, childID} {
		if _, ok := s.groupsByID[id]; !ok {
			return fmt.Errorf("add subgroup: group %s: %w", id, authz.ErrGroupNotFound)
		}
	}
	if !contains(s.subgroups[parentID], childID) {
		s.subgroups[parentID] = append(s.subgroups[parentID], childID)
		s.parentGroups[childID] = append(s.parentGroups[childID], parentID)
	}
	return nil
}

// PutObject places obj under parent in the containment tree. Passing
// the site as parent roots a top-level community.
func (s *Store) PutObject(obj, parent models.ManagedObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	parentKey := models.ObjectKey(parent)
	if _, ok := s.objects[parentKey]; !ok {
		return fmt.Errorf("put object: parent %s: %w", parentKey, authz.ErrObjectNotFound)
	}
	key := models.ObjectKey(obj)
	if _, ok := s.objects[key]; !ok {
		s.children[parentKey] = append(s.children[parentKey], key)
	}
	s.objects[key] = obj
	s.parentOf[key] = parentKey
	return nil
}

// PutGrant attaches a resource policy to its object.
func (s *Store) PutGrant(g models.Grant) error {
	if err := g.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(g.ObjectType) + "." + g.ObjectID
	s.grants[key] = append(s.grants[key], g)
	return nil
}

// RemoveGrant deletes a grant by ID.
func (s *Store) RemoveGrant(grantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, grants := range s.grants {
		for i, g := range grants {
			if g.ID == grantID {
				s.grants[key] = append(grants[:i], grants[i+1:]...)
				return
			}
		}
	}
}

// BindGroup binds the group to obj in the given role, replacing any
// previous binding for that (object, role) slot. Workflow groups
// accumulate instead of replacing.
func (s *Store) BindGroup(obj models.ManagedObject, g *models.Group, role models.BoundRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := models.ObjectKey(obj)
	switch role {
	case models.BoundAdmin:
		s.adminGroups[key] = g.ID
	case models.BoundSubmitter:
		s.submitterGroups[key] = g.ID
	case models.BoundWorkflow:
		if !contains(s.workflowGroups[key], g.ID) {
			s.workflowGroups[key] = append(s.workflowGroups[key], g.ID)
		}
	default:
		return fmt.Errorf("bind group: unknown role %q", role)
	}
	s.bindings[g.ID] = &models.GroupBinding{Object: obj, Role: role}
	return nil
}

// SiteRoot returns the bootstrapped site object for seeding.
func (s *Store) SiteRoot() *models.Site {
	return s.site
}

// authz.GroupStore.

func (s *Store) GroupByID(_ context.Context, id string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groupsByID[id]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", id, authz.ErrGroupNotFound)
	}
	return g, nil
}

func (s *Store) GroupByName(_ context.Context, name string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groupsByName[name]
	if !ok {
		return nil, fmt.Errorf("group %q: %w", name, authz.ErrGroupNotFound)
	}
	return g, nil
}

func (s *Store) DirectMembers(_ context.Context, groupID string) ([]*models.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.members[groupID]
	members := make([]*models.Principal, 0, len(ids))
	for _, id := range ids {
		members = append(members, &models.Principal{ID: id})
	}
	return members, nil
}

func (s *Store) DirectParents(_ context.Context, groupID string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupList(s.parentGroups[groupID]), nil
}

func (s *Store) DirectGroups(_ context.Context, principalID string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupList(s.memberOf[principalID]), nil
}

func (s *Store) groupList(ids []string) []*models.Group {
	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		if g, ok := s.groupsByID[id]; ok {
			groups = append(groups, g)
		}
	}
	return groups
}

// authz.GrantStore.

func (s *Store) ActiveGrants(_ context.Context, obj models.ManagedObject) ([]models.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	var active []models.Grant
	for _, g := range s.grants[models.ObjectKey(obj)] {
		if g.ActiveAt(now) {
			active = append(active, g)
		}
	}
	return active, nil
}

// authz.HierarchyStore.

func (s *Store) Site(_ context.Context) (*models.Site, error) {
	return s.site, nil
}

func (s *Store) ParentOf(_ context.Context, obj models.ManagedObject) (models.ManagedObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	parentKey, ok := s.parentOf[models.ObjectKey(obj)]
	if !ok {
		return nil, nil
	}
	return s.objects[parentKey], nil
}

func (s *Store) Children(_ context.Context, obj models.ManagedObject) ([]models.ManagedObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := s.children[models.ObjectKey(obj)]
	children := make([]models.ManagedObject, 0, len(keys))
	for _, key := range keys {
		if child, ok := s.objects[key]; ok {
			children = append(children, child)
		}
	}
	return children, nil
}

func (s *Store) ObjectByTypeAndID(_ context.Context, t models.ObjectType, id string) (models.ManagedObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[string(t)+"."+id]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", t, id, authz.ErrObjectNotFound)
	}
	return obj, nil
}

func (s *Store) AdminGroupOf(_ context.Context, obj models.ManagedObject) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.adminGroups[models.ObjectKey(obj)]
	if !ok {
		return nil, nil
	}
	return s.groupsByID[id], nil
}

func (s *Store) SubmitterGroupOf(_ context.Context, col *models.Collection) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.submitterGroups[models.ObjectKey(col)]
	if !ok {
		return nil, nil
	}
	return s.groupsByID[id], nil
}

func (s *Store) WorkflowGroupsOf(_ context.Context, col *models.Collection) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupList(s.workflowGroups[models.ObjectKey(col)]), nil
}

func (s *Store) BindingOf(_ context.Context, group *models.Group) (*models.GroupBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bindings[group.ID], nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
