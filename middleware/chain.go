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

// Package middleware implements an explicit two-pass before/after
// chain: every registered middleware runs its Before hook in
// registration order ahead of the handler, then its After hook in
// reverse registration order once the handler (or a deferred response)
// completes. This is deliberately not a single-pass Next()-based
// chain — the model here is two arrays, not a continuation.
package middleware

import "github.com/bmcweb-go/reactor/router"

// Before runs ahead of the handler. Returning false short-circuits the
// chain: no further Before hooks, the handler, or any After hook of a
// middleware whose Before never ran will execute; the response as left
// by the middleware is sent as-is (used for auth/privilege rejection).
type Before func(req *router.Request, resp *router.Response, ctx *Context) bool

// After runs once the handler (or a deferred completion) has produced
// a response, in reverse registration order, mirroring bmcweb's
// after-array walked back-to-front.
type After func(req *router.Request, resp *router.Response, ctx *Context)

// Middleware is a single registered concern: a process-wide singleton
// (so it must be stateless, or internally synchronized — see
// DESIGN.md) contributing an optional Before and/or After hook.
type Middleware struct {
	Name   string
	Before Before
	After  After
}

// Chain is an ordered list of registered middleware, built once at
// startup and only read at request time. Unlike Router, it is never
// frozen: Use does not refuse a late registration.
type Chain struct {
	mws []Middleware
}

// NewChain builds an empty Chain.
func NewChain() *Chain { return &Chain{} }

// Use appends mw to the chain and returns its registration index,
// which Slot[T] handles use to address their per-request context slot.
func (c *Chain) Use(mw Middleware) int {
	c.mws = append(c.mws, mw)
	return len(c.mws) - 1
}

// Len reports how many middlewares are registered, used to size a
// fresh Context block per request.
func (c *Chain) Len() int { return len(c.mws) }

// RunBefore executes every registered Before hook in order, stopping
// at the first one that returns false; that middleware is not counted
// as having run, so RunAfter skips its After hook. It reports whether
// the chain should continue into the handler.
func (c *Chain) RunBefore(req *router.Request, resp *router.Response, ctx *Context) bool {
	ran := 0
	cont := true
	for i, mw := range c.mws {
		if mw.Before == nil {
			ran = i + 1
			continue
		}
		if !mw.Before(req, resp, ctx) {
			ran = i
			cont = false
			break
		}
		ran = i + 1
	}
	ctx.ranBefore = ran
	return cont
}

// RunAfter executes the After hook of every middleware whose Before
// hook ran, in reverse order, matching bmcweb's completeRequest walking
// the after-handler array back to front.
func (c *Chain) RunAfter(req *router.Request, resp *router.Response, ctx *Context) {
	for i := ctx.ranBefore - 1; i >= 0; i-- {
		if c.mws[i].After != nil {
			c.mws[i].After(req, resp, ctx)
		}
	}
}
