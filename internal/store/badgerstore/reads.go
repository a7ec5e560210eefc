// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/athenaeum-dev/athenaeum/internal/authz"
	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// authz.GroupStore.

func (s *Store) GroupByID(_ context.Context, id string) (*models.Group, error) {
	var g models.Group
	err := s.getJSON(groupKeyPrefix+id, &g)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("group %s: %w", id, authz.ErrGroupNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get group %s: %w", id, err)
	}
	return &g, nil
}

func (s *Store) GroupByName(ctx context.Context, name string) (*models.Group, error) {
	id, err := s.getString(groupNameKeyPrefix + name)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("group %q: %w", name, authz.ErrGroupNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get group name %q: %w", name, err)
	}
	return s.GroupByID(ctx, id)
}

func (s *Store) DirectMembers(_ context.Context, groupID string) ([]*models.Principal, error) {
	ids, err := s.scanSuffixes(memberKeyPrefix + groupID + ":")
	if err != nil {
		return nil, fmt.Errorf("scan members of %s: %w", groupID, err)
	}
	members := make([]*models.Principal, 0, len(ids))
	for _, id := range ids {
		members = append(members, &models.Principal{ID: id})
	}
	return members, nil
}

func (s *Store) DirectParents(ctx context.Context, groupID string) ([]*models.Group, error) {
	ids, err := s.scanSuffixes(parentGrpKeyPrefix + groupID + ":")
	if err != nil {
		return nil, fmt.Errorf("scan parents of %s: %w", groupID, err)
	}
	return s.groupList(ctx, ids)
}

func (s *Store) DirectGroups(ctx context.Context, principalID string) ([]*models.Group, error) {
	ids, err := s.scanSuffixes(memberOfKeyPrefix + principalID + ":")
	if err != nil {
		return nil, fmt.Errorf("scan groups of %s: %w", principalID, err)
	}
	return s.groupList(ctx, ids)
}

func (s *Store) groupList(ctx context.Context, ids []string) ([]*models.Group, error) {
	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		g, err := s.GroupByID(ctx, id)
		if err != nil {
			if errors.Is(err, authz.ErrGroupNotFound) {
				continue
			}
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// authz.GrantStore.

func (s *Store) ActiveGrants(_ context.Context, obj models.ManagedObject) ([]models.Grant, error) {
	now := time.Now()
	var active []models.Grant

	prefix := []byte(grantKeyPrefix + models.ObjectKey(obj) + ":")
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var g models.Grant
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &g)
			}); err != nil {
				return err
			}
			if g.ActiveAt(now) {
				active = append(active, g)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan grants of %s: %w", models.ObjectKey(obj), err)
	}
	return active, nil
}

// authz.HierarchyStore.

func (s *Store) Site(_ context.Context) (*models.Site, error) {
	var site models.Site
	if err := s.getJSON(keySite, &site); err != nil {
		return nil, fmt.Errorf("get site root: %w", err)
	}
	return &site, nil
}

func (s *Store) ParentOf(ctx context.Context, obj models.ManagedObject) (models.ManagedObject, error) {
	parentKey, err := s.getString(parentKeyPrefix + models.ObjectKey(obj))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get parent of %s: %w", models.ObjectKey(obj), err)
	}
	return s.objectByKey(ctx, parentKey)
}

func (s *Store) Children(ctx context.Context, obj models.ManagedObject) ([]models.ManagedObject, error) {
	keys, err := s.scanSuffixes(childKeyPrefix + models.ObjectKey(obj) + ":")
	if err != nil {
		return nil, fmt.Errorf("scan children of %s: %w", models.ObjectKey(obj), err)
	}
	children := make([]models.ManagedObject, 0, len(keys))
	for _, key := range keys {
		child, err := s.objectByKey(ctx, key)
		if err != nil {
			if errors.Is(err, authz.ErrObjectNotFound) {
				continue
			}
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (s *Store) ObjectByTypeAndID(ctx context.Context, t models.ObjectType, id string) (models.ManagedObject, error) {
	return s.objectByKey(ctx, string(t)+"."+id)
}

func (s *Store) objectByKey(_ context.Context, key string) (models.ManagedObject, error) {
	if key == keySite || strings.HasPrefix(key, string(models.TypeSite)+".") {
		site, err := s.Site(context.Background())
		if err != nil {
			return nil, err
		}
		return site, nil
	}

	var record objectRecord
	err := s.getJSON(objectKeyPrefix+key, &record)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%s: %w", key, authz.ErrObjectNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	return decodeObject(record)
}

func decodeObject(record objectRecord) (models.ManagedObject, error) {
	var obj models.ManagedObject
	switch record.Type {
	case models.TypeCommunity:
		obj = &models.Community{}
	case models.TypeCollection:
		obj = &models.Collection{}
	case models.TypeItem:
		obj = &models.Item{}
	case models.TypeBundle:
		obj = &models.Bundle{}
	case models.TypeBitstream:
		obj = &models.Bitstream{}
	default:
		return nil, fmt.Errorf("decode object: unknown type %q", record.Type)
	}
	if err := json.Unmarshal(record.Data, obj); err != nil {
		return nil, fmt.Errorf("decode %s object: %w", record.Type, err)
	}
	return obj, nil
}

func (s *Store) AdminGroupOf(ctx context.Context, obj models.ManagedObject) (*models.Group, error) {
	return s.boundGroup(ctx, bindAdminKeyPrefix+models.ObjectKey(obj))
}

func (s *Store) SubmitterGroupOf(ctx context.Context, col *models.Collection) (*models.Group, error) {
	return s.boundGroup(ctx, bindSubmitterKeyPrefix+models.ObjectKey(col))
}

func (s *Store) boundGroup(ctx context.Context, key string) (*models.Group, error) {
	id, err := s.getString(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get binding %s: %w", key, err)
	}
	return s.GroupByID(ctx, id)
}

func (s *Store) WorkflowGroupsOf(ctx context.Context, col *models.Collection) ([]*models.Group, error) {
	ids, err := s.scanSuffixes(bindWorkflowKeyPrefix + models.ObjectKey(col) + ":")
	if err != nil {
		return nil, fmt.Errorf("scan workflow groups of %s: %w", models.ObjectKey(col), err)
	}
	return s.groupList(ctx, ids)
}

func (s *Store) BindingOf(ctx context.Context, group *models.Group) (*models.GroupBinding, error) {
	var record bindingRecord
	err := s.getJSON(bindGroupKeyPrefix+group.ID, &record)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get binding of group %s: %w", group.ID, err)
	}

	obj, err := s.objectByKey(ctx, record.ObjectKey)
	if err != nil {
		return nil, err
	}
	return &models.GroupBinding{Object: obj, Role: record.Role}, nil
}

// Low-level helpers.

func (s *Store) getString(key string) (string, error) {
	var out string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = string(val)
			return nil
		})
	})
	return out, err
}

func (s *Store) getJSON(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// scanSuffixes lists the key suffixes under prefix in key order, which
// gives prefix listings a stable iteration order.
func (s *Store) scanSuffixes(prefix string) ([]string, error) {
	var out []string
	p := []byte(prefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			out = append(out, string(it.Item().Key()[len(p):]))
		}
		return nil
	})
	return out, err
}
