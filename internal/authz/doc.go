// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

// Package authz implements the hierarchical authorization engine.
//
// The engine decides, for a (principal, object, capability) triple,
// whether access is granted. A decision is the OR of independent paths,
// evaluated in order with short-circuit success:
//
//  1. Site administrator membership (the Administrator group authorizes
//     everything).
//  2. A direct ADMIN grant on the object (an ADMIN grant subsumes every
//     other action on that object).
//  3. Membership in the object's own bound administrator group.
//  4. Administrator standing on a container ancestor (community or
//     collection), cascaded down the containment hierarchy
//     site > community > collection > item > bundle > bitstream, with
//     each (source layer, capability) pair gated by its own
//     configuration switch.
//
// Group membership is resolved as a cycle-safe transitive closure that
// always includes the universal Anonymous group. The anonymous
// principal is a nil *models.Principal, not an error state.
//
// The engine holds no mutable shared state: group, grant, and hierarchy
// data come from the store contracts in stores.go, and memoization
// lives in a per-evaluation scratch value that is never shared across
// requests.
//
// Named capabilities are exposed as features through a Registry, and
// the Service facade adds feature applicability checks, the granted
// feature listing, the authorized-containers query, and synthetic
// authorization identifiers.
package authz
