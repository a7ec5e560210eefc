// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeGC struct {
	got time.Duration
	err error
}

func (f *fakeGC) RunGC(ctx context.Context, interval time.Duration) error {
	f.got = interval
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestGCServiceStopsOnCancel(t *testing.T) {
	t.Parallel()

	gc := &fakeGC{}
	svc := NewGCService(gc, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	if gc.got != time.Minute {
		t.Errorf("interval = %v, want 1m", gc.got)
	}
}

func TestGCServicePropagatesFailure(t *testing.T) {
	t.Parallel()

	gcErr := errors.New("value log corrupted")
	svc := NewGCService(&fakeGC{err: gcErr}, time.Minute)

	if err := svc.Serve(context.Background()); !errors.Is(err, gcErr) {
		t.Errorf("Serve = %v, want gc error", err)
	}
}

func TestGCServiceDefaultInterval(t *testing.T) {
	t.Parallel()

	gc := &fakeGC{err: errors.New("stop immediately")}
	svc := NewGCService(gc, 0)
	_ = svc.Serve(context.Background())

	if gc.got != 10*time.Minute {
		t.Errorf("default interval = %v, want 10m", gc.got)
	}
}
