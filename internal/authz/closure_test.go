// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"context"
	"testing"

	"github.com/athenaeum-dev/athenaeum/internal/models"
)

func TestClosureAnonymous(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	engine := newTestEngine(t, store, DefaultSwitches())

	set, err := engine.Closure(context.Background(), nil)
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	if len(set) != 1 || !set.ContainsName(models.GroupAnonymous) {
		t.Fatalf("anonymous closure = %v, want exactly {Anonymous}", set.Names())
	}
}

func TestClosureMemberWithoutGroups(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	engine := newTestEngine(t, store, DefaultSwitches())

	set, err := engine.Closure(context.Background(), &models.Principal{ID: "u1"})
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	if len(set) != 1 || !set.ContainsName(models.GroupAnonymous) {
		t.Fatalf("closure = %v, want exactly {Anonymous}", set.Names())
	}
}

func TestClosureNestedGroups(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	g1 := store.addGroup(&models.Group{ID: "g1", Name: "Staff"})
	g2 := store.addGroup(&models.Group{ID: "g2", Name: "Library"})
	g3 := store.addGroup(&models.Group{ID: "g3", Name: "University"})
	store.addMember("u1", g1.ID)
	store.addParentGroup(g1.ID, g2.ID)
	store.addParentGroup(g2.ID, g3.ID)

	engine := newTestEngine(t, store, DefaultSwitches())

	set, err := engine.Closure(context.Background(), &models.Principal{ID: "u1"})
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	for _, id := range []string{"g1", "g2", "g3"} {
		if !set.Contains(id) {
			t.Errorf("closure %v missing group %s", set.Names(), id)
		}
	}
	if !set.ContainsName(models.GroupAnonymous) {
		t.Errorf("closure %v missing Anonymous", set.Names())
	}
	if len(set) != 4 {
		t.Errorf("closure size = %d, want 4", len(set))
	}
}

func TestClosureCyclicGroups(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	g1 := store.addGroup(&models.Group{ID: "g1", Name: "A"})
	g2 := store.addGroup(&models.Group{ID: "g2", Name: "B"})
	store.addMember("u1", g1.ID)
	store.addParentGroup(g1.ID, g2.ID)
	store.addParentGroup(g2.ID, g1.ID)

	engine := newTestEngine(t, store, DefaultSwitches())

	set, err := engine.Closure(context.Background(), &models.Principal{ID: "u1"})
	if err != nil {
		t.Fatalf("Closure on cyclic graph: %v", err)
	}
	if !set.Contains("g1") || !set.Contains("g2") {
		t.Fatalf("cycle flattened into %v, want both g1 and g2", set.Names())
	}
}

func TestIsSiteAdmin(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addMember("admin", "g-administrator")
	engine := newTestEngine(t, store, DefaultSwitches())
	ctx := context.Background()

	admin, err := engine.IsSiteAdmin(ctx, &models.Principal{ID: "admin"})
	if err != nil {
		t.Fatalf("IsSiteAdmin: %v", err)
	}
	if !admin {
		t.Error("Administrator member not recognized as site admin")
	}

	regular, err := engine.IsSiteAdmin(ctx, &models.Principal{ID: "u1"})
	if err != nil {
		t.Fatalf("IsSiteAdmin: %v", err)
	}
	if regular {
		t.Error("regular principal reported as site admin")
	}
}
