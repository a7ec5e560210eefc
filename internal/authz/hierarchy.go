// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"context"
	"fmt"

	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// ParentOf returns the object's parent in the containment hierarchy, or
// nil for the site root.
func (e *Engine) ParentOf(ctx context.Context, obj models.ManagedObject) (models.ManagedObject, error) {
	parent, err := e.hierarchy.ParentOf(ctx, obj)
	if err != nil {
		RecordStoreError("hierarchy")
		return nil, fmt.Errorf("parent of %s: %w", models.ObjectKey(obj), err)
	}
	return parent, nil
}

// Ancestors returns the object's ancestor chain ordered root to
// nearest. A logo bitstream owned directly by a community or collection
// yields that container and its ancestors; no item or bundle appears in
// the chain. A visited set guards against malformed parent cycles, so
// the walk always terminates.
func (e *Engine) Ancestors(ctx context.Context, obj models.ManagedObject) ([]models.ManagedObject, error) {
	var nearestFirst []models.ManagedObject

	visited := map[string]bool{models.ObjectKey(obj): true}
	current := obj
	for {
		parent, err := e.ParentOf(ctx, current)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		key := models.ObjectKey(parent)
		if visited[key] {
			break
		}
		visited[key] = true
		nearestFirst = append(nearestFirst, parent)
		current = parent
	}

	// Reverse into root-to-nearest order.
	for i, j := 0, len(nearestFirst)-1; i < j; i, j = i+1, j-1 {
		nearestFirst[i], nearestFirst[j] = nearestFirst[j], nearestFirst[i]
	}
	return nearestFirst, nil
}

// IsDescendant reports whether ancestor appears in obj's ancestor
// chain. An object is not its own descendant.
func (e *Engine) IsDescendant(ctx context.Context, obj, ancestor models.ManagedObject) (bool, error) {
	ancestors, err := e.Ancestors(ctx, obj)
	if err != nil {
		return false, err
	}
	target := models.ObjectKey(ancestor)
	for _, a := range ancestors {
		if models.ObjectKey(a) == target {
			return true, nil
		}
	}
	return false, nil
}
