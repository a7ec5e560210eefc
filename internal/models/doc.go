// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

// Package models defines the content-model records the authorization
// engine evaluates: principals, groups, the containment hierarchy of
// repository objects (site, community, collection, item, bundle,
// bitstream), and resource-policy grants.
//
// The types here are plain records. Relationships between them (group
// membership edges, object parentage, bound admin groups) are owned by
// the stores in internal/store and consumed through the contracts in
// internal/authz.
package models
