// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// fakeStore is an in-memory implementation of all three collaborator
// contracts, mutated through helpers that keep the indexes consistent.
type fakeStore struct {
	mu sync.RWMutex

	groupsByID   map[string]*models.Group
	groupsByName map[string]*models.Group
	memberOf     map[string][]string // principal ID -> direct group IDs
	parentGroups map[string][]string // group ID -> direct parent group IDs

	site     *models.Site
	objects  map[string]models.ManagedObject // object key -> object
	parentOf map[string]string               // child object key -> parent object key

	grants map[string][]models.Grant // object key -> grants

	adminGroups     map[string]string   // object key -> group ID
	submitterGroups map[string]string   // collection key -> group ID
	workflowGroups  map[string][]string // collection key -> group IDs
	bindings        map[string]*models.GroupBinding
}

func newFakeStore() *fakeStore {
	s := &fakeStore{
		groupsByID:      make(map[string]*models.Group),
		groupsByName:    make(map[string]*models.Group),
		memberOf:        make(map[string][]string),
		parentGroups:    make(map[string][]string),
		site:            &models.Site{ID: "site-1", Name: "Athenaeum"},
		objects:         make(map[string]models.ManagedObject),
		parentOf:        make(map[string]string),
		grants:          make(map[string][]models.Grant),
		adminGroups:     make(map[string]string),
		submitterGroups: make(map[string]string),
		workflowGroups:  make(map[string][]string),
		bindings:        make(map[string]*models.GroupBinding),
	}
	s.objects[models.ObjectKey(s.site)] = s.site
	s.addGroup(&models.Group{ID: "g-anonymous", Name: models.GroupAnonymous})
	s.addGroup(&models.Group{ID: "g-administrator", Name: models.GroupAdministrator})
	return s
}

func (s *fakeStore) addGroup(g *models.Group) *models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupsByID[g.ID] = g
	s.groupsByName[g.Name] = g
	return g
}

func (s *fakeStore) addMember(principalID, groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberOf[principalID] = append(s.memberOf[principalID], groupID)
}

func (s *fakeStore) addParentGroup(childID, parentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parentGroups[childID] = append(s.parentGroups[childID], parentID)
}

// addObject places obj under parent in the containment tree.
func (s *fakeStore) addObject(obj, parent models.ManagedObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[models.ObjectKey(obj)] = obj
	s.parentOf[models.ObjectKey(obj)] = models.ObjectKey(parent)
}

func (s *fakeStore) addGrant(g models.Grant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(g.ObjectType) + "." + g.ObjectID
	s.grants[key] = append(s.grants[key], g)
}

func (s *fakeStore) bindAdminGroup(obj models.ManagedObject, g *models.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adminGroups[models.ObjectKey(obj)] = g.ID
	s.bindings[g.ID] = &models.GroupBinding{Object: obj, Role: models.BoundAdmin}
}

func (s *fakeStore) bindSubmitterGroup(col *models.Collection, g *models.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitterGroups[models.ObjectKey(col)] = g.ID
	s.bindings[g.ID] = &models.GroupBinding{Object: col, Role: models.BoundSubmitter}
}

func (s *fakeStore) bindWorkflowGroup(col *models.Collection, g *models.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := models.ObjectKey(col)
	s.workflowGroups[key] = append(s.workflowGroups[key], g.ID)
	s.bindings[g.ID] = &models.GroupBinding{Object: col, Role: models.BoundWorkflow}
}

// GroupStore.

func (s *fakeStore) GroupByID(_ context.Context, id string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groupsByID[id]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", id, ErrGroupNotFound)
	}
	return g, nil
}

func (s *fakeStore) GroupByName(_ context.Context, name string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groupsByName[name]
	if !ok {
		return nil, fmt.Errorf("group %q: %w", name, ErrGroupNotFound)
	}
	return g, nil
}

func (s *fakeStore) DirectMembers(_ context.Context, groupID string) ([]*models.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var members []*models.Principal
	for principalID, groupIDs := range s.memberOf {
		for _, id := range groupIDs {
			if id == groupID {
				members = append(members, &models.Principal{ID: principalID})
				break
			}
		}
	}
	return members, nil
}

func (s *fakeStore) DirectParents(_ context.Context, groupID string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupList(s.parentGroups[groupID]), nil
}

func (s *fakeStore) DirectGroups(_ context.Context, principalID string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupList(s.memberOf[principalID]), nil
}

func (s *fakeStore) groupList(ids []string) []*models.Group {
	var groups []*models.Group
	for _, id := range ids {
		if g, ok := s.groupsByID[id]; ok {
			groups = append(groups, g)
		}
	}
	return groups
}

// GrantStore.

func (s *fakeStore) ActiveGrants(_ context.Context, obj models.ManagedObject) ([]models.Grant, error) {
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

// HierarchyStore.

func (s *fakeStore) Site(_ context.Context) (*models.Site, error) {
	return s.site, nil
}

func (s *fakeStore) ParentOf(_ context.Context, obj models.ManagedObject) (models.ManagedObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	parentKey, ok := s.parentOf[models.ObjectKey(obj)]
	if !ok {
		return nil, nil
	}
	return s.objects[parentKey], nil
}

func (s *fakeStore) Children(_ context.Context, obj models.ManagedObject) ([]models.ManagedObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	parentKey := models.ObjectKey(obj)
	var keys []string
	for childKey, pk := range s.parentOf {
		if pk == parentKey {
			keys = append(keys, childKey)
		}
	}
	sort.Strings(keys)
	children := make([]models.ManagedObject, 0, len(keys))
	for _, key := range keys {
		children = append(children, s.objects[key])
	}
	return children, nil
}

func (s *fakeStore) ObjectByTypeAndID(_ context.Context, t models.ObjectType, id string) (models.ManagedObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[string(t)+"."+id]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", t, id, ErrObjectNotFound)
	}
	return obj, nil
}

func (s *fakeStore) AdminGroupOf(_ context.Context, obj models.ManagedObject) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.adminGroups[models.ObjectKey(obj)]
	if !ok {
		return nil, nil
	}
	return s.groupsByID[id], nil
}

func (s *fakeStore) SubmitterGroupOf(_ context.Context, col *models.Collection) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.submitterGroups[models.ObjectKey(col)]
	if !ok {
		return nil, nil
	}
	return s.groupsByID[id], nil
}

func (s *fakeStore) WorkflowGroupsOf(_ context.Context, col *models.Collection) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupList(s.workflowGroups[models.ObjectKey(col)]), nil
}

func (s *fakeStore) BindingOf(_ context.Context, group *models.Group) (*models.GroupBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bindings[group.ID], nil
}

// newTestEngine wires an engine over the fake store with the given
// switch configuration.
func newTestEngine(t *testing.T, store *fakeStore, switches Switches) *Engine {
	t.Helper()
	engine, err := NewEngine(store, store, store, switches)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

// grantFor builds an active grant on obj for either a principal or a
// group subject.
func grantFor(obj models.ManagedObject, action models.Action, principalID, groupID string) models.Grant {
	return models.Grant{
		ID:          models.NewID(),
		ObjectType:  obj.ObjectType(),
		ObjectID:    obj.ObjectID(),
		Action:      action,
		PrincipalID: principalID,
		GroupID:     groupID,
	}
}
