// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ObjectType is the stable type tag of a repository object. Feature
// applicability and synthetic authorization identifiers are keyed on it,
// so values must never contain "." or "_".
type ObjectType string

const (
	TypeSite       ObjectType = "site"
	TypeCommunity  ObjectType = "community"
	TypeCollection ObjectType = "collection"
	TypeItem       ObjectType = "item"
	TypeBundle     ObjectType = "bundle"
	TypeBitstream  ObjectType = "bitstream"
	TypeGroup      ObjectType = "group"
)

// ObjectTypes lists every valid type tag.
var ObjectTypes = []ObjectType{
	TypeSite, TypeCommunity, TypeCollection, TypeItem, TypeBundle, TypeBitstream, TypeGroup,
}

// ContentTypes lists the type tags of the containment hierarchy,
// excluding groups (which sit outside the site tree).
var ContentTypes = []ObjectType{
	TypeSite, TypeCommunity, TypeCollection, TypeItem, TypeBundle, TypeBitstream,
}

// Valid reports whether t is a known type tag.
func (t ObjectType) Valid() bool {
	for _, known := range ObjectTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseObjectType converts a string into an ObjectType.
func ParseObjectType(s string) (ObjectType, error) {
	t := ObjectType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown object type %q", s)
	}
	return t, nil
}

// ManagedObject is any object an authorization decision can target.
// The accessor names avoid clashing with the ID/Name fields of the
// concrete records.
type ManagedObject interface {
	ObjectID() string
	ObjectType() ObjectType
	ObjectName() string
}

// ObjectKey returns the "type.id" form of an object reference, used as
// the object part of synthetic authorization identifiers and as a map
// key throughout the stores.
func ObjectKey(obj ManagedObject) string {
	return string(obj.ObjectType()) + "." + obj.ObjectID()
}

// NewID returns a fresh object identifier.
func NewID() string {
	return uuid.New().String()
}

// Site is the singleton root of the containment hierarchy.
type Site struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Site) ObjectID() string       { return s.ID }
func (s *Site) ObjectType() ObjectType { return TypeSite }
func (s *Site) ObjectName() string     { return s.Name }

// Community is a container under the site or under another community.
type Community struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Community) ObjectID() string       { return c.ID }
func (c *Community) ObjectType() ObjectType { return TypeCommunity }
func (c *Community) ObjectName() string     { return c.Name }

// Collection is a container of items, owned by exactly one community.
type Collection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Collection) ObjectID() string       { return c.ID }
func (c *Collection) ObjectType() ObjectType { return TypeCollection }
func (c *Collection) ObjectName() string     { return c.Name }

// Item is an archival unit owned by exactly one collection.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Withdrawn bool   `json:"withdrawn"`
}

func (i *Item) ObjectID() string       { return i.ID }
func (i *Item) ObjectType() ObjectType { return TypeItem }
func (i *Item) ObjectName() string     { return i.Name }

// Bundle groups the bitstreams of an item.
type Bundle struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (b *Bundle) ObjectID() string       { return b.ID }
func (b *Bundle) ObjectType() ObjectType { return TypeBundle }
func (b *Bundle) ObjectName() string     { return b.Name }

// Bitstream is a stored file. Its parent is normally a bundle, but a
// bitstream used as a community or collection logo is owned directly by
// that container and has a one-level ancestor chain.
type Bitstream struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (b *Bitstream) ObjectID() string       { return b.ID }
func (b *Bitstream) ObjectType() ObjectType { return TypeBitstream }
func (b *Bitstream) ObjectName() string     { return b.Name }
