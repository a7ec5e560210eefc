// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package services

import (
	"context"
	"errors"
	"time"
)

// GarbageCollector is the store maintenance loop the wrapper
// supervises. Badger's value-log GC satisfies it via Store.RunGC.
type GarbageCollector interface {
	RunGC(ctx context.Context, interval time.Duration) error
}

// GCService runs a store garbage-collection loop under supervision.
type GCService struct {
	gc       GarbageCollector
	interval time.Duration
}

// NewGCService wraps a garbage collector as a supervised service.
func NewGCService(gc GarbageCollector, interval time.Duration) *GCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &GCService{gc: gc, interval: interval}
}

// Serve implements suture.Service. Context cancellation is a normal
// stop, not a failure to restart.
func (g *GCService) Serve(ctx context.Context) error {
	err := g.gc.RunGC(ctx, g.interval)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return ctx.Err()
}

// String identifies the service in suture's event logs.
func (g *GCService) String() string {
	return "store-gc"
}
