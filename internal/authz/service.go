// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package authz

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/athenaeum-dev/athenaeum/internal/models"
)

// Service is the authorization facade the presentation layer talks to:
// feature lookup, feature decisions, decision enumeration, and the
// authorized-container search.
type Service struct {
	engine   *Engine
	registry *Registry
}

// NewService creates the facade.
func NewService(engine *Engine, registry *Registry) (*Service, error) {
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	if registry == nil {
		return nil, errors.New("registry is required")
	}
	return &Service{engine: engine, registry: registry}, nil
}

// Engine returns the underlying decision engine.
func (s *Service) Engine() *Engine { return s.engine }

// Registry returns the feature registry.
func (s *Service) Registry() *Registry { return s.registry }

// IsAuthorized answers the named feature's question about (principal,
// object). An object type the feature does not support is answered
// "not authorized", not an error; an unregistered feature name is
// ErrFeatureNotFound.
func (s *Service) IsAuthorized(ctx context.Context, p *models.Principal, featureName string, obj models.ManagedObject) (bool, error) {
	f, err := s.registry.Find(featureName)
	if err != nil {
		return false, err
	}
	return s.decide(ctx, p, f, obj)
}

func (s *Service) decide(ctx context.Context, p *models.Principal, f Feature, obj models.ManagedObject) (bool, error) {
	if !featureSupports(f, obj.ObjectType()) {
		return false, nil
	}

	start := time.Now()
	allowed, err := f.IsAuthorized(ctx, s.engine, p, obj)
	if err != nil {
		return false, fmt.Errorf("feature %s on %s: %w", f.Name(), models.ObjectKey(obj), err)
	}
	RecordDecision(f.Name(), string(obj.ObjectType()), allowed, time.Since(start))
	return allowed, nil
}

// ListGranted evaluates every feature applicable to the object's type
// and returns the authorizations of those that hold.
func (s *Service) ListGranted(ctx context.Context, p *models.Principal, obj models.ManagedObject) ([]Authorization, error) {
	var granted []Authorization
	for _, f := range s.registry.Supporting(obj.ObjectType()) {
		allowed, err := s.decide(ctx, p, f, obj)
		if err != nil {
			return nil, err
		}
		if allowed {
			granted = append(granted, s.authorization(p, f, obj))
		}
	}
	return granted, nil
}

// FindAuthorization resolves a synthetic authorization identifier by
// recomputing the decision. A negative decision is
// ErrAuthorizationNotFound; authorizations are never cached across
// calls, so a revoked grant takes effect immediately.
func (s *Service) FindAuthorization(ctx context.Context, id string) (*Authorization, error) {
	parsed, err := ParseAuthorizationID(id)
	if err != nil {
		return nil, err
	}

	f, err := s.registry.Find(parsed.FeatureName)
	if err != nil {
		return nil, err
	}

	obj, err := s.resolveObject(ctx, parsed.ObjectType, parsed.ObjectID)
	if err != nil {
		return nil, err
	}

	p := parsed.Principal()
	allowed, err := s.decide(ctx, p, f, obj)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%q: %w", id, ErrAuthorizationNotFound)
	}
	auth := s.authorization(p, f, obj)
	return &auth, nil
}

// AuthorizationsForObject returns the positive authorizations of the
// principal on one object: for a single named feature when featureName
// is non-empty, otherwise for every applicable feature.
func (s *Service) AuthorizationsForObject(ctx context.Context, p *models.Principal, t models.ObjectType, objectID, featureName string) ([]Authorization, error) {
	obj, err := s.resolveObject(ctx, t, objectID)
	if err != nil {
		return nil, err
	}

	if featureName == "" {
		return s.ListGranted(ctx, p, obj)
	}

	allowed, err := s.IsAuthorized(ctx, p, featureName, obj)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, nil
	}
	f, err := s.registry.Find(featureName)
	if err != nil {
		return nil, err
	}
	return []Authorization{s.authorization(p, f, obj)}, nil
}

// FindAuthorizedContainers walks the containment tree from the site
// root and yields the containers of rootType the principal administers,
// filtered by an optional case-insensitive substring of the display
// name. The sequence is lazy and restartable: each range starts a fresh
// walk against current data. Only community and collection roots are
// supported.
func (s *Service) FindAuthorizedContainers(ctx context.Context, p *models.Principal, rootType models.ObjectType, query string) (iter.Seq2[models.ManagedObject, error], error) {
	if rootType != models.TypeCommunity && rootType != models.TypeCollection {
		return nil, fmt.Errorf("authorized-container search over %q: %w", rootType, ErrUnsupportedType)
	}
	needle := strings.ToLower(query)

	return func(yield func(models.ManagedObject, error) bool) {
		site, err := s.engine.hierarchy.Site(ctx)
		if err != nil {
			RecordStoreError("hierarchy")
			yield(nil, fmt.Errorf("resolve site: %w", err))
			return
		}
		s.walkContainers(ctx, p, site, rootType, needle, yield)
	}, nil
}

// walkContainers DFS-walks the container levels of the tree. It never
// descends below collections: items, bundles, and bitstreams cannot
// contain further containers. Returns false when the consumer stopped
// the iteration.
func (s *Service) walkContainers(ctx context.Context, p *models.Principal, node models.ManagedObject, rootType models.ObjectType, needle string, yield func(models.ManagedObject, error) bool) bool {
	children, err := s.engine.hierarchy.Children(ctx, node)
	if err != nil {
		RecordStoreError("hierarchy")
		return yield(nil, fmt.Errorf("children of %s: %w", models.ObjectKey(node), err))
	}

	for _, child := range children {
		switch child.ObjectType() {
		case models.TypeCommunity, models.TypeCollection:
		default:
			continue
		}

		if child.ObjectType() == rootType {
			match := needle == "" || strings.Contains(strings.ToLower(child.ObjectName()), needle)
			if match {
				admin, err := s.engine.IsAdmin(ctx, p, child)
				if err != nil {
					return yield(nil, err)
				}
				if admin && !yield(child, nil) {
					return false
				}
			}
		}

		if child.ObjectType() == models.TypeCommunity {
			if !s.walkContainers(ctx, p, child, rootType, needle, yield) {
				return false
			}
		}
	}
	return true
}

func (s *Service) authorization(p *models.Principal, f Feature, obj models.ManagedObject) Authorization {
	return Authorization{
		ID:        AuthorizationID(p, f.Name(), obj),
		Principal: p,
		Feature:   f,
		Object:    obj,
	}
}

func (s *Service) resolveObject(ctx context.Context, t models.ObjectType, id string) (models.ManagedObject, error) {
	if t == models.TypeGroup {
		group, err := s.engine.groups.GroupByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", id, err)
		}
		return group, nil
	}
	obj, err := s.engine.hierarchy.ObjectByTypeAndID(ctx, t, id)
	if err != nil {
		return nil, fmt.Errorf("object %s.%s: %w", t, id, err)
	}
	return obj, nil
}

func featureSupports(f Feature, t models.ObjectType) bool {
	for _, st := range f.SupportedTypes() {
		if st == t {
			return true
		}
	}
	return false
}
