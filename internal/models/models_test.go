// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package models

import (
	"testing"
	"time"
)

func TestParseObjectType(t *testing.T) {
	t.Parallel()

	for _, known := range ObjectTypes {
		parsed, err := ParseObjectType(string(known))
		if err != nil {
			t.Errorf("ParseObjectType(%q) error = %v", known, err)
		}
		if parsed != known {
			t.Errorf("ParseObjectType(%q) = %q", known, parsed)
		}
	}

	if _, err := ParseObjectType("folder"); err == nil {
		t.Error("expected error for unknown object type")
	}
}

func TestObjectKey(t *testing.T) {
	t.Parallel()

	item := &Item{ID: "i1", Name: "Thesis"}
	if got := ObjectKey(item); got != "item.i1" {
		t.Errorf("ObjectKey = %q, want %q", got, "item.i1")
	}
}

func TestGrantActiveAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  bool
	}{
		{name: "no window", want: true},
		{name: "open window", start: &past, end: &future, want: true},
		{name: "not yet started", start: &future, want: false},
		{name: "already ended", end: &past, want: false},
		{name: "start only, started", start: &past, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := Grant{StartDate: tt.start, EndDate: tt.end}
			if got := g.ActiveAt(now); got != tt.want {
				t.Errorf("ActiveAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGrantValidate(t *testing.T) {
	t.Parallel()

	valid := Grant{ID: "g1", ObjectType: TypeItem, ObjectID: "i1", Action: ActionRead, GroupID: "grp"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Grant)
	}{
		{"missing subject", func(g *Grant) { g.GroupID = "" }},
		{"both subjects", func(g *Grant) { g.PrincipalID = "p1" }},
		{"bad action", func(g *Grant) { g.Action = "OWN" }},
		{"bad type", func(g *Grant) { g.ObjectType = "folder" }},
		{"missing object id", func(g *Grant) { g.ObjectID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := valid
			tt.mutate(&g)
			if err := g.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGroupBuiltin(t *testing.T) {
	t.Parallel()

	if !(&Group{Name: GroupAnonymous}).Builtin() {
		t.Error("Anonymous should be builtin")
	}
	if !(&Group{Name: GroupAdministrator}).Builtin() {
		t.Error("Administrator should be builtin")
	}
	if (&Group{Name: "Reviewers"}).Builtin() {
		t.Error("ordinary group should not be builtin")
	}
}
