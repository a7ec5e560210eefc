// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package memory

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/athenaeum-dev/athenaeum/internal/logging"
	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// seedFile is the YAML fixture format. Objects must be listed
// parents-first; an omitted parent means the site root.
type seedFile struct {
	Groups []struct {
		ID   string `koanf:"id"`
		Name string `koanf:"name"`
	} `koanf:"groups"`

	Members []struct {
		Principal string `koanf:"principal"`
		Group     string `koanf:"group"`
	} `koanf:"members"`

	Subgroups []struct {
		Parent string `koanf:"parent"`
		Child  string `koanf:"child"`
	} `koanf:"subgroups"`

	Objects []struct {
		Type       string `koanf:"type"`
		ID         string `koanf:"id"`
		Name       string `koanf:"name"`
		ParentType string `koanf:"parent_type"`
		ParentID   string `koanf:"parent_id"`
		Withdrawn  bool   `koanf:"withdrawn"`
	} `koanf:"objects"`

	Grants []struct {
		ID         string `koanf:"id"`
		ObjectType string `koanf:"object_type"`
		ObjectID   string `koanf:"object_id"`
		Action     string `koanf:"action"`
		Principal  string `koanf:"principal"`
		Group      string `koanf:"group"`
	} `koanf:"grants"`

	Bindings []struct {
		ObjectType string `koanf:"object_type"`
		ObjectID   string `koanf:"object_id"`
		Group      string `koanf:"group"`
		Role       string `koanf:"role"`
	} `koanf:"bindings"`
}

// LoadSeed populates the store from a YAML fixture file. Intended for
// dev and demo setups on the volatile memory backend.
func (s *Store) LoadSeed(path string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load seed file %s: %w", path, err)
	}

	var seed seedFile
	if err := k.Unmarshal("", &seed); err != nil {
		return fmt.Errorf("unmarshal seed file %s: %w", path, err)
	}

	ctx := context.Background()

	for _, g := range seed.Groups {
		if err := s.PutGroup(&models.Group{ID: g.ID, Name: g.Name}); err != nil {
			return fmt.Errorf("seed group %s: %w", g.ID, err)
		}
	}
	for _, m := range seed.Members {
		if err := s.AddMember(m.Principal, m.Group); err != nil {
			return fmt.Errorf("seed member %s in %s: %w", m.Principal, m.Group, err)
		}
	}
	for _, sg := range seed.Subgroups {
		if err := s.AddSubgroup(sg.Parent, sg.Child); err != nil {
			return fmt.Errorf("seed subgroup %s under %s: %w", sg.Child, sg.Parent, err)
		}
	}

	for _, o := range seed.Objects {
		obj, err := buildObject(o.Type, o.ID, o.Name, o.Withdrawn)
		if err != nil {
			return fmt.Errorf("seed object %s.%s: %w", o.Type, o.ID, err)
		}
		parent, err := s.seedParent(ctx, o.ParentType, o.ParentID)
		if err != nil {
			return fmt.Errorf("seed object %s.%s: %w", o.Type, o.ID, err)
		}
		if err := s.PutObject(obj, parent); err != nil {
			return fmt.Errorf("seed object %s.%s: %w", o.Type, o.ID, err)
		}
	}

	for _, g := range seed.Grants {
		t, err := models.ParseObjectType(g.ObjectType)
		if err != nil {
			return fmt.Errorf("seed grant %s: %w", g.ID, err)
		}
		action, err := models.ParseAction(g.Action)
		if err != nil {
			return fmt.Errorf("seed grant %s: %w", g.ID, err)
		}
		grant := models.Grant{
			ID:          g.ID,
			ObjectType:  t,
			ObjectID:    g.ObjectID,
			Action:      action,
			PrincipalID: g.Principal,
			GroupID:     g.Group,
		}
		if grant.ID == "" {
			grant.ID = models.NewID()
		}
		if err := s.PutGrant(grant); err != nil {
			return fmt.Errorf("seed grant %s: %w", g.ID, err)
		}
	}

	for _, b := range seed.Bindings {
		t, err := models.ParseObjectType(b.ObjectType)
		if err != nil {
			return fmt.Errorf("seed binding for group %s: %w", b.Group, err)
		}
		obj, err := s.ObjectByTypeAndID(ctx, t, b.ObjectID)
		if err != nil {
			return fmt.Errorf("seed binding for group %s: %w", b.Group, err)
		}
		group, err := s.GroupByID(ctx, b.Group)
		if err != nil {
			return fmt.Errorf("seed binding for group %s: %w", b.Group, err)
		}
		role := models.BoundRole(b.Role)
		if err := s.BindGroup(obj, group, role); err != nil {
			return fmt.Errorf("seed binding for group %s: %w", b.Group, err)
		}
	}

	logging.Info().
		Str("path", path).
		Int("groups", len(seed.Groups)).
		Int("objects", len(seed.Objects)).
		Int("grants", len(seed.Grants)).
		Msg("Memory store seeded from fixture")
	return nil
}

func (s *Store) seedParent(ctx context.Context, parentType, parentID string) (models.ManagedObject, error) {
	if parentType == "" || parentType == string(models.TypeSite) {
		return s.SiteRoot(), nil
	}
	t, err := models.ParseObjectType(parentType)
	if err != nil {
		return nil, err
	}
	return s.ObjectByTypeAndID(ctx, t, parentID)
}

func buildObject(typeName, id, name string, withdrawn bool) (models.ManagedObject, error) {
	t, err := models.ParseObjectType(typeName)
	if err != nil {
		return nil, err
	}
	switch t {
	case models.TypeCommunity:
		return &models.Community{ID: id, Name: name}, nil
	case models.TypeCollection:
		return &models.Collection{ID: id, Name: name}, nil
	case models.TypeItem:
		return &models.Item{ID: id, Name: name, Withdrawn: withdrawn}, nil
	case models.TypeBundle:
		return &models.Bundle{ID: id, Name: name}, nil
	case models.TypeBitstream:
		return &models.Bitstream{ID: id, Name: name}, nil
	default:
		return nil, fmt.Errorf("object type %q cannot be seeded", typeName)
	}
}
