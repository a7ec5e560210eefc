// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import "github.com/athenaeum-dev/athenaeum/internal/models"

// Capability names one inheritable administrative power. Capabilities
// combine with a source layer to select the cascade switch that gates
// them.
type Capability string

const (
	// CapAdmin is the blanket administrator capability. It has no
	// dedicated switch: administrator standing always cascades down the
	// hierarchy unless a deployment explicitly configures otherwise.
	CapAdmin Capability = "admin"

	CapManagePolicies   Capability = "policies"
	CapManageAdminGroup Capability = "admin-group"
	CapManageSubmitters Capability = "submitters"
	CapManageWorkflows  Capability = "workflows"
	CapCreateBitstream  Capability = "create-bitstream"
	CapDeleteBitstream  Capability = "delete-bitstream"
)

// Cascade switch names. Each switch independently gates one
// (source layer, capability) pair, so that a single inherited power can
// be revoked without touching its siblings. All switches default to
// enabled.
const (
	SwitchCommunityAdminPolicies   = "community-admin.policies"
	SwitchCommunityAdminAdminGroup = "community-admin.admin-group"

	SwitchCommunityAdminCollectionPolicies   = "community-admin.collection.policies"
	SwitchCommunityAdminCollectionSubmitters = "community-admin.collection.submitters"
	SwitchCommunityAdminCollectionWorkflows  = "community-admin.collection.workflows"
	SwitchCommunityAdminCollectionAdminGroup = "community-admin.collection.admin-group"

	SwitchCommunityAdminItemPolicies        = "community-admin.item.policies"
	SwitchCommunityAdminItemCreateBitstream = "community-admin.item.create-bitstream"
	SwitchCommunityAdminItemDeleteBitstream = "community-admin.item.delete-bitstream"

	SwitchCollectionAdminPolicies   = "collection-admin.policies"
	SwitchCollectionAdminSubmitters = "collection-admin.submitters"
	SwitchCollectionAdminWorkflows  = "collection-admin.workflows"
	SwitchCollectionAdminAdminGroup = "collection-admin.admin-group"

	SwitchCollectionAdminItemPolicies        = "collection-admin.item.policies"
	SwitchCollectionAdminItemCreateBitstream = "collection-admin.item.create-bitstream"
	SwitchCollectionAdminItemDeleteBitstream = "collection-admin.item.delete-bitstream"

	SwitchItemAdminPolicies        = "item-admin.policies"
	SwitchItemAdminCreateBitstream = "item-admin.create-bitstream"
	SwitchItemAdminDeleteBitstream = "item-admin.delete-bitstream"
)

// KnownSwitches lists every recognized cascade switch name, for
// configuration validation.
var KnownSwitches = []string{
	SwitchCommunityAdminPolicies,
	SwitchCommunityAdminAdminGroup,
	SwitchCommunityAdminCollectionPolicies,
	SwitchCommunityAdminCollectionSubmitters,
	SwitchCommunityAdminCollectionWorkflows,
	SwitchCommunityAdminCollectionAdminGroup,
	SwitchCommunityAdminItemPolicies,
	SwitchCommunityAdminItemCreateBitstream,
	SwitchCommunityAdminItemDeleteBitstream,
	SwitchCollectionAdminPolicies,
	SwitchCollectionAdminSubmitters,
	SwitchCollectionAdminWorkflows,
	SwitchCollectionAdminAdminGroup,
	SwitchCollectionAdminItemPolicies,
	SwitchCollectionAdminItemCreateBitstream,
	SwitchCollectionAdminItemDeleteBitstream,
	SwitchItemAdminPolicies,
	SwitchItemAdminCreateBitstream,
	SwitchItemAdminDeleteBitstream,
}

// KnownSwitch reports whether name is a recognized switch.
func KnownSwitch(name string) bool {
	for _, s := range KnownSwitches {
		if s == name {
			return true
		}
	}
	return false
}

// Switches is the cascade configuration matrix, injected into the
// engine at construction. It is an explicit value, never ambient state,
// so evaluations stay deterministic and testable.
type Switches struct {
	flags map[string]bool
}

// NewSwitches builds a matrix from explicit overrides. Switches absent
// from the map keep their default (enabled).
func NewSwitches(overrides map[string]bool) Switches {
	flags := make(map[string]bool, len(overrides))
	for name, enabled := range overrides {
		flags[name] = enabled
	}
	return Switches{flags: flags}
}

// DefaultSwitches returns the matrix with every cascade enabled.
func DefaultSwitches() Switches {
	return Switches{}
}

// Enabled reports whether the named switch is on. Unconfigured switches
// default to enabled; the empty name (an ungated path) is always on.
func (s Switches) Enabled(name string) bool {
	if name == "" {
		return true
	}
	if enabled, ok := s.flags[name]; ok {
		return enabled
	}
	return true
}

// cascadeSwitch selects the switch gating capability cap when admin
// standing at a layer of type layerType is applied to an object of type
// targetType. An empty result means the path is ungated: the blanket
// admin capability, and layers (bundles, bitstreams, the site) that
// have no switch vocabulary of their own.
func cascadeSwitch(layerType, targetType models.ObjectType, cap Capability) string {
	if cap == CapAdmin {
		return ""
	}

	switch layerType {
	case models.TypeCommunity:
		switch targetType {
		case models.TypeCommunity:
			return "community-admin." + string(cap)
		case models.TypeCollection:
			return "community-admin.collection." + string(cap)
		default:
			return "community-admin.item." + string(cap)
		}
	case models.TypeCollection:
		if targetType == models.TypeCollection {
			return "collection-admin." + string(cap)
		}
		return "collection-admin.item." + string(cap)
	case models.TypeItem:
		return "item-admin." + string(cap)
	default:
		return ""
	}
}
