// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

// Package badgerstore provides a BadgerDB-backed implementation of the
// authorization store contracts with JSON-encoded records under typed
// key prefixes. It is the persistent production backend.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/athenaeum-dev/athenaeum/internal/logging"
	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// Key prefixes. Prefix scans rely on badger's key ordering, so listing
// keys (members of a group, children of a container) embed the listed
// element in the key and keep the value empty or small.
const (
	keySite = "site"

	groupKeyPrefix     = "group:id:"
	groupNameKeyPrefix = "group:name:"
	memberKeyPrefix    = "member:"  // member:<groupID>:<principalID>
	memberOfKeyPrefix  = "ofgroup:" // ofgroup:<principalID>:<groupID>
	parentGrpKeyPrefix = "gparent:" // gparent:<childID>:<parentID>

	objectKeyPrefix = "object:" // object:<type>.<id>
	parentKeyPrefix = "parent:" // parent:<childKey> -> parentKey
	childKeyPrefix  = "child:"  // child:<parentKey>:<childKey>

	grantKeyPrefix = "grant:" // grant:<objectKey>:<grantID>

	bindAdminKeyPrefix     = "bind:admin:"     // bind:admin:<objectKey>
	bindSubmitterKeyPrefix = "bind:submitter:" // bind:submitter:<objectKey>
	bindWorkflowKeyPrefix  = "bind:workflow:"  // bind:workflow:<objectKey>:<groupID>
	bindGroupKeyPrefix     = "bind:group:"     // bind:group:<groupID>
)

// Store implements authz.GroupStore, authz.GrantStore, and
// authz.HierarchyStore over a badger database.
type Store struct {
	db *badger.DB
}

// objectRecord is the polymorphic envelope persisted for hierarchy
// objects.
type objectRecord struct {
	Type models.ObjectType `json:"type"`
	Data json.RawMessage   `json:"data"`
}

// bindingRecord persists the reverse group binding.
type bindingRecord struct {
	ObjectKey string           `json:"object_key"`
	Role      models.BoundRole `json:"role"`
}

// Open opens (or creates) the database at path and bootstraps the site
// root and the well-known groups on first use.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.bootstrap(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewFromDB wraps an already opened database, bootstrapping if needed.
// Used by tests that manage the database lifecycle themselves.
func NewFromDB(db *badger.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.bootstrap(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) bootstrap() error {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keySite))
		return err
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("check site root: %w", err)
	}

	site := &models.Site{ID: models.NewID(), Name: "Athenaeum"}
	data, err := json.Marshal(site)
	if err != nil {
		return fmt.Errorf("marshal site: %w", err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySite), data)
	}); err != nil {
		return fmt.Errorf("write site root: %w", err)
	}

	for _, name := range []string{models.GroupAnonymous, models.GroupAdministrator} {
		if err := s.PutGroup(&models.Group{ID: models.NewID(), Name: name}); err != nil {
			return fmt.Errorf("bootstrap group %s: %w", name, err)
		}
	}
	return nil
}

// RunGC runs badger's value-log garbage collector every interval until
// the context is canceled. Intended to run as a supervised service.
func (s *Store) RunGC(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Repeat until a pass rewrites nothing.
			for {
				err := s.db.RunValueLogGC(0.5)
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					logging.Warn().Err(err).Msg("badger value-log GC failed")
					break
				}
			}
		}
	}
}

// Write API.

// PutGroup adds or replaces a group. Group names are unique.
func (s *Store) PutGroup(g *models.Group) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal group: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		nameKey := []byte(groupNameKeyPrefix + g.Name)
		if item, err := txn.Get(nameKey); err == nil {
			var existingID string
			if err := item.Value(func(val []byte) error {
				existingID = string(val)
				return nil
			}); err != nil {
				return err
			}
			if existingID != g.ID {
				return fmt.Errorf("group name %q already taken by %s", g.Name, existingID)
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set([]byte(groupKeyPrefix+g.ID), data); err != nil {
			return fmt.Errorf("set group: %w", err)
		}
		return txn.Set(nameKey, []byte(g.ID))
	})
}

// AddMember makes the principal a direct member of the group.
func (s *Store) AddMember(principalID, groupID string) error {
	if _, err := s.GroupByID(context.Background(), groupID); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(memberKeyPrefix+groupID+":"+principalID), nil); err != nil {
			return err
		}
		return txn.Set([]byte(memberOfKeyPrefix+principalID+":"+groupID), nil)
	})
}

// AddSubgroup makes child a direct subgroup of parent.
func (s *Store) AddSubgroup(parentID, childID string) error {
	for _, id := range []string{parentID, childID} {
		if _, err := s.GroupByID(context.Background(), id); err != nil {
			return err
		}
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(parentGrpKeyPrefix+childID+":"+parentID), nil)
	})
}

// PutObject places obj under parent in the containment tree.
func (s *Store) PutObject(obj, parent models.ManagedObject) error {
	parentKey := models.ObjectKey(parent)
	if parent.ObjectType() != models.TypeSite {
		if _, err := s.ObjectByTypeAndID(context.Background(), parent.ObjectType(), parent.ObjectID()); err != nil {
			return fmt.Errorf("put object: parent %s: %w", parentKey, err)
		}
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal object: %w", err)
	}
	record, err := json.Marshal(objectRecord{Type: obj.ObjectType(), Data: data})
	if err != nil {
		return fmt.Errorf("marshal object record: %w", err)
	}

	key := models.ObjectKey(obj)
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(objectKeyPrefix+key), record); err != nil {
			return fmt.Errorf("set object: %w", err)
		}
		if err := txn.Set([]byte(parentKeyPrefix+key), []byte(parentKey)); err != nil {
			return fmt.Errorf("set parent: %w", err)
		}
		return txn.Set([]byte(childKeyPrefix+parentKey+":"+key), nil)
	})
}

// PutGrant attaches a resource policy to its object.
func (s *Store) PutGrant(g models.Grant) error {
	if err := g.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal grant: %w", err)
	}
	key := string(g.ObjectType) + "." + g.ObjectID
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(grantKeyPrefix+key+":"+g.ID), data)
	})
}

// RemoveGrant deletes a grant from its object.
func (s *Store) RemoveGrant(g models.Grant) error {
	key := string(g.ObjectType) + "." + g.ObjectID
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(grantKeyPrefix + key + ":" + g.ID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// BindGroup binds the group to obj in the given role.
func (s *Store) BindGroup(obj models.ManagedObject, g *models.Group, role models.BoundRole) error {
	objKey := models.ObjectKey(obj)
	record, err := json.Marshal(bindingRecord{ObjectKey: objKey, Role: role})
	if err != nil {
		return fmt.Errorf("marshal binding: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		switch role {
		case models.BoundAdmin:
			if err := txn.Set([]byte(bindAdminKeyPrefix+objKey), []byte(g.ID)); err != nil {
				return err
			}
		case models.BoundSubmitter:
			if err := txn.Set([]byte(bindSubmitterKeyPrefix+objKey), []byte(g.ID)); err != nil {
				return err
			}
		case models.BoundWorkflow:
			if err := txn.Set([]byte(bindWorkflowKeyPrefix+objKey+":"+g.ID), nil); err != nil {
				return err
			}
		default:
			return fmt.Errorf("bind group: unknown role %q", role)
		}
		return txn.Set([]byte(bindGroupKeyPrefix+g.ID), record)
	})
}
