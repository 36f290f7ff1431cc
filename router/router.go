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

// Router maps (method, path) to a Rule and a decoded parameter tuple,
// dispatches to the handler, and recognizes upgrade targets. The zero
// Router is not usable; use New.
type Router struct {
	rules   []Rule
	root    *node
	frozen  bool
	fronted []string // patterns in registration order, for diagnostics
}

// New constructs an empty Router.
func New() *Router {
	return &Router{root: newNode()}
}

// NewRuleDynamic begins registering a rule whose parameter tag is
// computed from pattern at registration time rather than from a
// caller-supplied generic handler type. This is the "dynamic" path,
// in contrast with NewRuleTagged0..3.
func (r *Router) NewRuleDynamic(pattern string) RuleBuilder {
	tag, err := TagOf(pattern)
	if err != nil {
		panic(fmt.Sprintf("router: %v", err))
	}
	return r.newRule(pattern, tag)
}

func (r *Router) newRule(pattern string, tag Tag) RuleBuilder {
	if r.frozen {
		panic("router: cannot register a rule after Validate")
	}
	r.rules = append(r.rules, Rule{Pattern: pattern, Tag: tag})
	r.fronted = append(r.fronted, pattern)
	return RuleBuilder{r: r, idx: len(r.rules) - 1}
}

// NewRuleTagged0 registers a rule with no path parameters.
func NewRuleTagged0(r *Router, pattern string) RuleBuilder {
	return mustTagged(r, pattern)
}

// NewRuleTagged1 registers a rule whose handler takes one typed path
// parameter, analogous to binding a `(Request&, Response&, T1)`
// handler against a compile-time tag. T1's implied digit is cross-
// checked against the pattern's own tag right here at registration
// time, the closest Go proxy for a compile-time check in a language
// without one; a mismatch panics immediately rather than waiting for a
// request to expose it.
func NewRuleTagged1[T1 Param](r *Router, pattern string) RuleBuilder {
	return mustTagged(r, pattern, paramTagOf[T1]())
}

// NewRuleTagged2 is NewRuleTagged1 for a two-parameter handler.
func NewRuleTagged2[T1, T2 Param](r *Router, pattern string) RuleBuilder {
	return mustTagged(r, pattern, paramTagOf[T1](), paramTagOf[T2]())
}

// NewRuleTagged3 is NewRuleTagged1 for a three-parameter handler.
func NewRuleTagged3[T1, T2, T3 Param](r *Router, pattern string) RuleBuilder {
	return mustTagged(r, pattern, paramTagOf[T1](), paramTagOf[T2](), paramTagOf[T3]())
}

func mustTagged(r *Router, pattern string, kinds ...Kind) RuleBuilder {
	tag, err := TagOf(pattern)
	if err != nil {
		panic(fmt.Sprintf("router: %v", err))
	}
	if len(kinds) > 0 {
		var want uint64
		for _, k := range kinds {
			want = want*maxBaseUnit + k.digit()
		}
		if Tag(want) != tag {
			panic(fmt.Sprintf("router: pattern %q has tag %d, handler type parameters imply tag %d", pattern, tag, want))
		}
	}
	return r.newRule(pattern, tag)
}

// Validate freezes the Router: it builds the trie from every
// registered rule, rejects a rule with no handler bound, and makes the
// Router safe for concurrent Handle calls thereafter (the trie is
// read-only once built). Either inconsistency returns an error instead
// of panicking at request time. The check of a pattern's tag against
// handler type parameters is not made here; NewRuleTagged1/2/3 make it
// at registration.
func (r *Router) Validate() error {
	if r.frozen {
		return nil
	}
	for i, rule := range r.rules {
		if rule.Handler == nil && rule.Upgrade == nil {
			return fmt.Errorf("router: rule %q has no handler bound", rule.Pattern)
		}
		if err := r.root.insert(rule.Pattern, i, rule.Tag); err != nil {
			return fmt.Errorf("router: rule %q: %w", rule.Pattern, err)
		}
	}
	r.frozen = true
	return nil
}

// MatchResult describes the outcome of resolving a path against the
// frozen trie, independent of method.
type MatchResult struct {
	Rule   *Rule
	Params Params
	Found  bool
}

// Resolve finds the rule matching path, decoding its parameters. It
// does not consider method; callers check Rule.Methods themselves
// (Handle does this to distinguish 404 from 405).
func (r *Router) Resolve(path string) MatchResult {
	var params Params
	idx := r.root.match(path, &params)
	if idx < 0 {
		return MatchResult{Found: false}
	}
	return MatchResult{Rule: &r.rules[idx], Params: params, Found: true}
}

// Handle resolves method+path against the frozen trie and invokes the
// bound handler, or writes 404/405 directly onto resp: a matched path
// with a disallowed method gets 405 with an Allow header; no matching
// rule gets 404.
func (r *Router) Handle(req *Request, resp *Response) {
	res := r.Resolve(req.Path)
	if !res.Found {
		resp.StatusCode = 404
		resp.Reason = "Not Found"
		return
	}
	method := MethodFromString(req.Method)
	if res.Rule.Methods != 0 && res.Rule.Methods&method == 0 {
		resp.StatusCode = 405
		resp.Reason = "Method Not Allowed"
		if resp.Header == nil {
			resp.Header = make(map[string][]string)
		}
		resp.Header.Set("Allow", res.Rule.Methods.Allow())
		return
	}
	req.Params = res.Params
	if req.IsUpgrade && res.Rule.Upgrade != nil {
		res.Rule.Upgrade(req, req.Reactor)
		return
	}
	res.Rule.Handler(req, resp)
}
