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

func TestCanManageGroupBuiltin(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addMember("siteAdmin", "g-administrator")
	engine := newTestEngine(t, store, DefaultSwitches())
	ctx := context.Background()

	anonymous := store.groupsByName[models.GroupAnonymous]

	ok, err := engine.CanManageGroup(ctx, &models.Principal{ID: "siteAdmin"}, anonymous)
	if err != nil {
		t.Fatalf("CanManageGroup: %v", err)
	}
	if !ok {
		t.Error("site admin cannot manage the Anonymous group")
	}

	ok, err = engine.CanManageGroup(ctx, &models.Principal{ID: "u1"}, anonymous)
	if err != nil {
		t.Fatalf("CanManageGroup: %v", err)
	}
	if ok {
		t.Error("regular principal can manage the Anonymous group")
	}
}

func TestCanManageGroupFreeStanding(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	free := store.addGroup(&models.Group{ID: "g-free", Name: "Reviewers"})
	store.addMember("member", free.ID)
	store.addMember("siteAdmin", "g-administrator")
	engine := newTestEngine(t, store, DefaultSwitches())
	ctx := context.Background()

	ok, err := engine.CanManageGroup(ctx, &models.Principal{ID: "member"}, free)
	if err != nil {
		t.Fatalf("CanManageGroup: %v", err)
	}
	if ok {
		t.Error("group member can manage a free-standing group")
	}

	ok, err = engine.CanManageGroup(ctx, &models.Principal{ID: "siteAdmin"}, free)
	if err != nil {
		t.Fatalf("CanManageGroup: %v", err)
	}
	if !ok {
		t.Error("site admin cannot manage a free-standing group")
	}
}

func TestCanManageCommunityAdminGroup(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	c := &models.Community{ID: "c1", Name: "Sciences"}
	store.addObject(c, store.site)

	cAdmins := store.addGroup(&models.Group{ID: "g-c-admins", Name: "Sciences Admins"})
	store.bindAdminGroup(c, cAdmins)
	store.addMember("groupAdmin", cAdmins.ID)
	store.addGrant(grantFor(c, models.ActionAdmin, "grantHolder", ""))

	ctx := context.Background()

	t.Run("default switches", func(t *testing.T) {
		t.Parallel()
		engine := newTestEngine(t, store, DefaultSwitches())
		for _, id := range []string{"groupAdmin", "grantHolder"} {
			ok, err := engine.CanManageGroup(ctx, &models.Principal{ID: id}, cAdmins)
			if err != nil {
				t.Fatalf("CanManageGroup(%s): %v", id, err)
			}
			if !ok {
				t.Errorf("%s cannot manage the community admin group", id)
			}
		}
	})

	t.Run("admin-group switch off", func(t *testing.T) {
		t.Parallel()
		engine := newTestEngine(t, store, NewSwitches(map[string]bool{
			SwitchCommunityAdminAdminGroup: false,
		}))

		// Standing derived from admin group membership is gated off,
		// but a direct ADMIN grant on the community still counts.
		ok, err := engine.CanManageGroup(ctx, &models.Principal{ID: "groupAdmin"}, cAdmins)
		if err != nil {
			t.Fatalf("CanManageGroup: %v", err)
		}
		if ok {
			t.Error("admin group member manages own group with community-admin.admin-group off")
		}

		ok, err = engine.CanManageGroup(ctx, &models.Principal{ID: "grantHolder"}, cAdmins)
		if err != nil {
			t.Fatalf("CanManageGroup: %v", err)
		}
		if !ok {
			t.Error("direct ADMIN grant holder lost admin group manageability")
		}
	})
}

func TestCanManageCollectionGroups(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	c := &models.Community{ID: "c1", Name: "Sciences"}
	l := &models.Collection{ID: "l1", Name: "Preprints"}
	store.addObject(c, store.site)
	store.addObject(l, c)

	cAdmins := store.addGroup(&models.Group{ID: "g-c-admins", Name: "Sciences Admins"})
	store.bindAdminGroup(c, cAdmins)
	store.addMember("communityAdmin", cAdmins.ID)

	lAdmins := store.addGroup(&models.Group{ID: "g-l-admins", Name: "Preprints Admins"})
	store.bindAdminGroup(l, lAdmins)
	store.addMember("collectionAdmin", lAdmins.ID)

	submitters := store.addGroup(&models.Group{ID: "g-l-submitters", Name: "Preprints Submitters"})
	store.bindSubmitterGroup(l, submitters)

	workflow := store.addGroup(&models.Group{ID: "g-l-wf", Name: "Preprints Reviewers"})
	store.bindWorkflowGroup(l, workflow)

	ctx := context.Background()

	t.Run("collection admin manages own bound groups", func(t *testing.T) {
		t.Parallel()
		// The self path holds even when every community cascade is off.
		engine := newTestEngine(t, store, NewSwitches(map[string]bool{
			SwitchCommunityAdminCollectionAdminGroup: false,
			SwitchCommunityAdminCollectionSubmitters: false,
			SwitchCommunityAdminCollectionWorkflows:  false,
		}))
		p := &models.Principal{ID: "collectionAdmin"}
		for _, g := range []*models.Group{lAdmins, submitters, workflow} {
			ok, err := engine.CanManageGroup(ctx, p, g)
			if err != nil {
				t.Fatalf("CanManageGroup(%s): %v", g.Name, err)
			}
			if !ok {
				t.Errorf("collection admin cannot manage bound group %s", g.Name)
			}
		}
	})

	t.Run("community admin gated per group kind", func(t *testing.T) {
		t.Parallel()
		engine := newTestEngine(t, store, NewSwitches(map[string]bool{
			SwitchCommunityAdminCollectionAdminGroup: false,
		}))
		p := &models.Principal{ID: "communityAdmin"}

		// The disabled switch removes exactly one path: the collection's
		// admin group. Submitter and workflow groups keep their own
		// switches, which stay at the default.
		ok, err := engine.CanManageGroup(ctx, p, lAdmins)
		if err != nil {
			t.Fatalf("CanManageGroup: %v", err)
		}
		if ok {
			t.Error("community admin manages collection admin group with its switch off")
		}

		for _, g := range []*models.Group{submitters, workflow} {
			ok, err := engine.CanManageGroup(ctx, p, g)
			if err != nil {
				t.Fatalf("CanManageGroup(%s): %v", g.Name, err)
			}
			if !ok {
				t.Errorf("community admin lost %s to an unrelated switch", g.Name)
			}
		}

		// The community's own admin group is a different path again and
		// remains manageable.
		ok, err = engine.CanManageGroup(ctx, p, cAdmins)
		if err != nil {
			t.Fatalf("CanManageGroup: %v", err)
		}
		if !ok {
			t.Error("community admin lost own admin group to a collection switch")
		}
	})
}

func TestCanManageSubmittersAndWorkflows(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	c := &models.Community{ID: "c1", Name: "Sciences"}
	l := &models.Collection{ID: "l1", Name: "Preprints"}
	store.addObject(c, store.site)
	store.addObject(l, c)
	store.addGrant(grantFor(l, models.ActionAdmin, "collectionAdmin", ""))

	engine := newTestEngine(t, store, DefaultSwitches())
	ctx := context.Background()
	p := &models.Principal{ID: "collectionAdmin"}

	// The answers hold before any group is bound: they also govern
	// creating the groups.
	ok, err := engine.CanManageSubmitters(ctx, p, l)
	if err != nil {
		t.Fatalf("CanManageSubmitters: %v", err)
	}
	if !ok {
		t.Error("collection admin cannot create the submitter group")
	}

	ok, err = engine.CanManageWorkflowGroups(ctx, p, l)
	if err != nil {
		t.Fatalf("CanManageWorkflowGroups: %v", err)
	}
	if !ok {
		t.Error("collection admin cannot create workflow groups")
	}

	ok, err = engine.CanManageAdminGroup(ctx, p, l)
	if err != nil {
		t.Fatalf("CanManageAdminGroup: %v", err)
	}
	if !ok {
		t.Error("collection admin cannot create the admin group")
	}
}
