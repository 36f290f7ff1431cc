// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package app is the composition root: it wires router, middleware
// chain, and reactor.Server behind a fluent registration DSL
// (RouteDynamic, plus Router for the router.NewRuleTagged1/2/3 typed
// helpers; Port/BindAddr/Socket, Tick, TLSFile/TLS options;
// GetMiddleware, Validate, Run, Stop), plus lifecycle hooks and a
// startup banner.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/reactor"
	"github.com/bmcweb-go/reactor/router"
)

// App is the composition root returned by New.
type App struct {
	cfg config

	router *router.Router
	chain  *middleware.Chain
	logger *slog.Logger

	server *reactor.Server
	obs    *observability

	hooks lifecycleHooks

	mwIndex map[string]int
}

// New constructs an App, applying opts in order.
func New(opts ...Option) *App {
	c := config{
		bindAddr:       "0.0.0.0",
		port:           8080,
		serviceName:    "bmcweb-go",
		serviceVersion: "0.0.0",
		environment:    "development",
	}
	for _, o := range opts {
		o(&c)
	}
	if c.configFile != "" {
		if err := loadConfigFile(c.configFile, &c); err != nil {
			panic(fmt.Sprintf("app: config file %q: %v", c.configFile, err))
		}
	}

	a := &App{
		cfg:     c,
		router:  router.New(),
		chain:   middleware.NewChain(),
		logger:  newLogger(c),
		mwIndex: make(map[string]int),
	}
	return a
}

// Use registers a middleware under name, returning its registration
// index for building a Slot[T] handle.
func (a *App) Use(name string, mw middleware.Middleware) int {
	idx := a.chain.Use(mw)
	a.mwIndex[name] = idx
	return idx
}

// MiddlewareIndex returns the registration index a named middleware
// was given, for building a middleware.Slot[T] outside this package.
func (a *App) MiddlewareIndex(name string) (int, bool) {
	idx, ok := a.mwIndex[name]
	return idx, ok
}

// GetMiddleware returns the stable per-application Slot[T] for the
// middleware registered under name, the typed handle its own Before/
// After hooks use to read and write their per-request context slot.
// Go methods cannot introduce new type parameters, so this is a
// package-level function taking *App, the same shape as
// NewRuleTagged1/2/3.
func GetMiddleware[T any](a *App, name string) middleware.Slot[T] {
	idx, ok := a.MiddlewareIndex(name)
	if !ok {
		panic(fmt.Sprintf("app: no middleware registered under %q", name))
	}
	return middleware.NewSlot[T](idx)
}

// RouteDynamic begins registering a rule whose parameter tag is
// derived from pattern at registration time.
func (a *App) RouteDynamic(pattern string) router.RuleBuilder {
	for _, fn := range a.hooks.onRoute {
		fn(pattern)
	}
	return a.router.NewRuleDynamic(pattern)
}

// Router exposes the underlying Router for the package-level
// NewRuleTagged1/2/3 generic registration helpers, which need *Router
// directly (Go methods cannot introduce new type parameters).
func (a *App) Router() *router.Router { return a.router }

// Validate freezes the router and wires the reactor.Server, returning
// an error if route registration is inconsistent.
func (a *App) Validate() error {
	if err := a.router.Validate(); err != nil {
		return err
	}

	obs, err := setupObservability(a.cfg)
	if err != nil {
		return err
	}
	a.obs = obs

	addr := a.cfg.socket
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", a.cfg.bindAddr, a.cfg.port)
	}
	a.server = reactor.NewServer(addr, a.router, a.chain, a.logger, serverHeaderValue(a.cfg))
	if a.cfg.tlsCertFile != "" {
		a.server.TLS = &reactor.TLSConfig{
			CertFile:    a.cfg.tlsCertFile,
			KeyFile:     a.cfg.tlsKeyFile,
			ClientCAs:   a.cfg.clientCAs,
			RequireMTLS: a.cfg.requireMTLS,
		}
	}
	a.server.Tick = a.cfg.tick
	return nil
}

// Run validates (if not already done) and starts serving until ctx is
// canceled, firing OnStart/OnReady/OnShutdown/OnStop hooks around it
// and printing the startup banner between OnStart and OnReady.
func (a *App) Run(ctx context.Context) error {
	if a.server == nil {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	a.hooks.runStart(a)
	printBanner(a.cfg)
	a.hooks.runReady(a)

	err := a.server.Run(ctx)

	a.hooks.runShutdown(a)
	if a.obs != nil {
		a.obs.Shutdown(ctx)
	}
	a.hooks.runStop(a)
	return err
}

// Stop stops the running server, unblocking Run.
func (a *App) Stop() {
	if a.server != nil {
		a.server.Stop()
	}
}

func serverHeaderValue(c config) string {
	return fmt.Sprintf("%s/%s", c.serviceName, c.serviceVersion)
}
