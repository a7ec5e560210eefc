// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// Feature is a named authorization question the platform can answer
// about a principal and an object, such as "may this user withdraw this
// item". Features are pure: evaluating one never mutates grants,
// groups, or the hierarchy.
type Feature interface {
	// Name is the stable identifier clients use to address the feature.
	// It never contains an underscore, which the authorization ID
	// grammar reserves as a separator.
	Name() string

	// Description is a short human-readable summary.
	Description() string

	// SupportedTypes lists the object types the feature applies to.
	// Asking about any other type is answered "not authorized" without
	// evaluating the feature.
	SupportedTypes() []models.ObjectType

	// IsAuthorized answers the feature's question. p may be nil for the
	// anonymous principal. A negative answer is (false, nil); errors are
	// reserved for evaluation failures.
	IsAuthorized(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error)
}

// FeatureFunc is the decision function of a func-backed feature.
type FeatureFunc func(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error)

type funcFeature struct {
	name        string
	description string
	types       []models.ObjectType
	fn          FeatureFunc
}

// NewFeature builds a feature from a decision function.
func NewFeature(name, description string, types []models.ObjectType, fn FeatureFunc) Feature {
	return &funcFeature{name: name, description: description, types: types, fn: fn}
}

func (f *funcFeature) Name() string                        { return f.name }
func (f *funcFeature) Description() string                 { return f.description }
func (f *funcFeature) SupportedTypes() []models.ObjectType { return append([]models.ObjectType(nil), f.types...) }

func (f *funcFeature) IsAuthorized(ctx context.Context, e *Engine, p *models.Principal, obj models.ManagedObject) (bool, error) {
	return f.fn(ctx, e, p, obj)
}

// Registry holds the features known to the authorization facade. It is
// safe for concurrent use; registration normally happens once at
// startup.
type Registry struct {
	mu       sync.RWMutex
	features map[string]Feature
	ordered  []string
}

// NewRegistry creates an empty feature registry.
func NewRegistry() *Registry {
	return &Registry{features: make(map[string]Feature)}
}

// Register adds a feature. Names must be unique, non-empty, and free of
// underscores; at least one supported type must be valid.
func (r *Registry) Register(f Feature) error {
	name := f.Name()
	if name == "" {
		return fmt.Errorf("register feature: empty name")
	}
	if strings.Contains(name, "_") {
		return fmt.Errorf("register feature %q: name must not contain %q", name, "_")
	}

	types := f.SupportedTypes()
	if len(types) == 0 {
		return fmt.Errorf("register feature %q: %w", name, ErrUnsupportedType)
	}
	for _, t := range types {
		if !t.Valid() {
			return fmt.Errorf("register feature %q: invalid object type %q: %w", name, t, ErrUnsupportedType)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.features[name]; exists {
		return fmt.Errorf("register feature %q: %w", name, ErrDuplicateFeature)
	}
	r.features[name] = f
	r.ordered = append(r.ordered, name)
	sort.Strings(r.ordered)
	return nil
}

// Find returns the feature with the given name, or ErrFeatureNotFound.
func (r *Registry) Find(name string) (Feature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.features[name]
	if !ok {
		return nil, fmt.Errorf("feature %q: %w", name, ErrFeatureNotFound)
	}
	return f, nil
}

// All returns every registered feature in name order.
func (r *Registry) All() []Feature {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Feature, 0, len(r.ordered))
	for _, name := range r.ordered {
		out = append(out, r.features[name])
	}
	return out
}

// Supporting returns the features that apply to the given object type,
// in name order.
func (r *Registry) Supporting(t models.ObjectType) []Feature {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Feature
	for _, name := range r.ordered {
		f := r.features[name]
		for _, st := range f.SupportedTypes() {
			if st == t {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
