// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"errors"
	"testing"

	"github.com/athenaeum-dev/athenaeum/internal/models"
)

func TestAuthorizationID(t *testing.T) {
	t.Parallel()

	item := &models.Item{ID: "i1", Name: "Paper"}

	got := AuthorizationID(&models.Principal{ID: "u1"}, "canRead", item)
	if got != "u1_canRead_item.i1" {
		t.Errorf("AuthorizationID = %q", got)
	}

	got = AuthorizationID(nil, "canRead", item)
	if got != "anonymous_canRead_item.i1" {
		t.Errorf("anonymous AuthorizationID = %q", got)
	}
}

func TestParseAuthorizationID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		want    ParsedAuthorizationID
		wantErr bool
	}{
		{
			name: "principal",
			id:   "u1_canRead_item.i1",
			want: ParsedAuthorizationID{PrincipalID: "u1", FeatureName: "canRead", ObjectType: models.TypeItem, ObjectID: "i1"},
		},
		{
			name: "anonymous sentinel",
			id:   "anonymous_administrator_community.c1",
			want: ParsedAuthorizationID{FeatureName: "administrator", ObjectType: models.TypeCommunity, ObjectID: "c1"},
		},
		{name: "empty", id: "", wantErr: true},
		{name: "no separators", id: "canRead", wantErr: true},
		{name: "one separator", id: "u1_canRead", wantErr: true},
		{name: "missing object dot", id: "u1_canRead_item", wantErr: true},
		{name: "empty object id", id: "u1_canRead_item.", wantErr: true},
		{name: "unknown object type", id: "u1_canRead_dataset.i1", wantErr: true},
		{name: "empty feature", id: "u1__item.i1", wantErr: true},
		{name: "empty principal", id: "_canRead_item.i1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseAuthorizationID(tt.id)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAuthorizationID) {
					t.Fatalf("ParseAuthorizationID(%q) = %v, want ErrInvalidAuthorizationID", tt.id, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAuthorizationID(%q): %v", tt.id, err)
			}
			if got != tt.want {
				t.Errorf("ParseAuthorizationID(%q) = %+v, want %+v", tt.id, got, tt.want)
			}
		})
	}
}

func FuzzParseAuthorizationID(f *testing.F) {
	f.Add("u1_canRead_item.i1")
	f.Add("anonymous_administrator_community.c1")
	f.Add("__.")
	f.Add("a_b_c")

	f.Fuzz(func(t *testing.T, id string) {
		parsed, err := ParseAuthorizationID(id)
		if err != nil {
			return
		}
		// A successful parse must re-encode to the original identifier.
		principalPart := AnonymousPrincipalPart
		if parsed.PrincipalID != "" {
			principalPart = parsed.PrincipalID
		}
		rebuilt := principalPart + "_" + parsed.FeatureName + "_" + string(parsed.ObjectType) + "." + parsed.ObjectID
		if rebuilt != id {
			t.Errorf("roundtrip %q -> %+v -> %q", id, parsed, rebuilt)
		}
	})
}
