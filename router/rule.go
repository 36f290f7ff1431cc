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

package router

import "fmt"

// Method is one bit of a Rule's allowed-methods bitmask.
type Method uint16

const (
	MethodGet Method = 1 << iota
	MethodHead
	MethodPost
	MethodPut
	MethodPatch
	MethodDelete
	MethodOptions
)

var methodNames = []struct {
	m Method
	s string
}{
	{MethodGet, "GET"},
	{MethodHead, "HEAD"},
	{MethodPost, "POST"},
	{MethodPut, "PUT"},
	{MethodPatch, "PATCH"},
	{MethodDelete, "DELETE"},
	{MethodOptions, "OPTIONS"},
}

// MethodFromString maps an HTTP request-line method token to its bit,
// or 0 if the method is not one this router recognizes.
func MethodFromString(s string) Method {
	for _, e := range methodNames {
		if e.s == s {
			return e.m
		}
	}
	return 0
}

// Allow renders the bitmask as an RFC 9110 Allow header value, in the
// fixed order above, so it is deterministic across calls.
func (m Method) Allow() string {
	out := ""
	for _, e := range methodNames {
		if m&e.m != 0 {
			if out != "" {
				out += ", "
			}
			out += e.s
		}
	}
	return out
}

// Handler answers a matched request. Dynamic rules and tagged rules
// both reduce to this signature at dispatch time; BindTyped1/2/3 wrap
// a typed function in a Handler that unpacks Params into typed
// arguments before calling it.
type Handler func(req *Request, resp *Response)

// UpgradeHandler is invoked instead of Handler when the matched Rule
// has one and the request is a protocol upgrade. adaptor is the
// request's Reactor field, concretely *reactor.Connection, left untyped
// here to avoid an import cycle.
type UpgradeHandler func(req *Request, adaptor any)

// Privileges is the opaque set of required privileges a Rule declares;
// middleware (not this package) decides whether a Session satisfies
// them. The zero value means "no privileges required".
type Privileges []string

// Rule is a route terminal: pattern text, allowed methods, required
// privileges, handler, optional upgrade handler, and the parameter tag
// that both were validated against at registration time.
type Rule struct {
	Pattern string
	Methods Method
	Privs   Privileges
	Handler Handler
	Upgrade UpgradeHandler
	Tag     Tag
}

// RuleBuilder accumulates a Rule's fluent configuration before it is
// bound to a handler and frozen into the trie by Router.Validate.
type RuleBuilder struct {
	r   *Router
	idx int
}

// Methods restricts the rule to the given HTTP methods. Calling it more
// than once ORs the new set in, following a fluent builder idiom of
// additive chained calls.
func (b RuleBuilder) Methods(methods ...Method) RuleBuilder {
	rule := &b.r.rules[b.idx]
	for _, m := range methods {
		rule.Methods |= m
	}
	return b
}

// Privileges sets the rule's required privilege set.
func (b RuleBuilder) Privileges(privs ...string) RuleBuilder {
	b.r.rules[b.idx].Privs = privs
	return b
}

// Handle binds the terminal handler for a rule. For a typed handler,
// wrap it with BindTyped1/2/3 and pass the result here.
func (b RuleBuilder) Handle(h Handler) RuleBuilder {
	b.r.rules[b.idx].Handler = h
	return b
}

// HandleUpgrade binds the rule's optional upgrade handler.
func (b RuleBuilder) HandleUpgrade(h UpgradeHandler) RuleBuilder {
	b.r.rules[b.idx].Upgrade = h
	return b
}

// BindTyped1 binds a rule created with NewRuleTagged1[T1] to a handler
// taking that one typed path parameter directly, unpacking it from
// Params at dispatch time — the Go analogue of bmcweb's compile-time
// `(Request&, Response&, T1)` handler binding.
func BindTyped1[T1 Param](b RuleBuilder, fn func(req *Request, resp *Response, p1 T1)) RuleBuilder {
	return b.Handle(func(req *Request, resp *Response) {
		fn(req, resp, req.Params.At(0).(T1))
	})
}

// BindTyped2 is BindTyped1 for a two-parameter handler.
func BindTyped2[T1, T2 Param](b RuleBuilder, fn func(req *Request, resp *Response, p1 T1, p2 T2)) RuleBuilder {
	return b.Handle(func(req *Request, resp *Response) {
		fn(req, resp, req.Params.At(0).(T1), req.Params.At(1).(T2))
	})
}

// BindTyped3 is BindTyped1 for a three-parameter handler.
func BindTyped3[T1, T2, T3 Param](b RuleBuilder, fn func(req *Request, resp *Response, p1 T1, p2 T2, p3 T3)) RuleBuilder {
	return b.Handle(func(req *Request, resp *Response) {
		fn(req, resp, req.Params.At(0).(T1), req.Params.At(1).(T2), req.Params.At(2).(T3))
	})
}

func (r Rule) String() string {
	return fmt.Sprintf("Rule{%s methods=%s tag=%d}", r.Pattern, r.Methods.Allow(), r.Tag)
}
