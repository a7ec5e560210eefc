// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

// Package main is the entry point for the Athenaeum authorization
// server.
//
// The server answers authorization questions about the repository's
// containment tree: which features a principal holds on an object,
// which containers they administer, and which groups they may manage.
// Grant, group, and hierarchy data lives in a pluggable store (volatile
// in-memory or persistent Badger).
//
// Startup order:
//
//  1. Configuration: Koanf v2 layering of defaults, an optional YAML
//     file, and ATHENAEUM_-prefixed environment variables
//  2. Logging: global zerolog per the configured level and format
//  3. Store: memory or badger backend per store.backend
//  4. Engine and feature registry: cascade switches come from
//     authz.disabled_cascades
//  5. Supervisor tree: the HTTP server and, for the badger backend, the
//     value-log GC loop run under suture supervision
//
// The server shuts down gracefully on SIGINT and SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/athenaeum-dev/athenaeum/internal/api"
	"github.com/athenaeum-dev/athenaeum/internal/auth"
	"github.com/athenaeum-dev/athenaeum/internal/authz"
	"github.com/athenaeum-dev/athenaeum/internal/config"
	"github.com/athenaeum-dev/athenaeum/internal/logging"
	"github.com/athenaeum-dev/athenaeum/internal/store/badgerstore"
	"github.com/athenaeum-dev/athenaeum/internal/store/memory"
	"github.com/athenaeum-dev/athenaeum/internal/supervisor"
	"github.com/athenaeum-dev/athenaeum/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("backend", cfg.Store.Backend).
		Int("port", cfg.Server.Port).
		Int("disabled_cascades", len(cfg.Authz.DisabledCascades)).
		Msg("Starting Athenaeum authorization server")

	// Select the store backend. Both implement every engine contract.
	var (
		groups    authz.GroupStore
		grants    authz.GrantStore
		hierarchy authz.HierarchyStore
		gc        services.GarbageCollector
	)
	switch cfg.Store.Backend {
	case "badger":
		store, err := badgerstore.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open badger store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing store")
			}
		}()
		groups, grants, hierarchy, gc = store, store, store, store
	default:
		store := memory.New()
		if cfg.Store.SeedPath != "" {
			if err := store.LoadSeed(cfg.Store.SeedPath); err != nil {
				return fmt.Errorf("seed memory store: %w", err)
			}
		}
		groups, grants, hierarchy = store, store, store
	}

	engine, err := authz.NewEngine(groups, grants, hierarchy, cfg.Switches())
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	registry := authz.NewRegistry()
	if err := authz.RegisterBuiltinFeatures(registry); err != nil {
		return fmt.Errorf("register features: %w", err)
	}

	svc, err := authz.NewService(engine, registry)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	var tokens *auth.TokenManager
	if cfg.Server.JWTSecret != "" {
		tokens, err = auth.NewTokenManager(cfg.Server.JWTSecret, 0)
		if err != nil {
			return fmt.Errorf("create token manager: %w", err)
		}
		logging.Info().Msg("Bearer token verification enabled")
	} else {
		logging.Warn().Msg("No JWT secret configured; all requests are anonymous")
	}

	router := api.NewRouter(svc, groups, tokens, cfg.Server)
	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, fmt.Sprintf("%d", cfg.Server.Port)),
		Handler:           router.Setup(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, supervisor.DefaultTreeConfig().ShutdownTimeout))
	if gc != nil {
		tree.AddStorageService(services.NewGCService(gc, cfg.Store.GCInterval))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Listening")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}
