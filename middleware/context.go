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

package middleware

// Context is the middleware context block attached to each Request:
// the Go analogue of concatenating every registered middleware's
// per-request state struct. Go has no
// compile-time struct concatenation without codegen, so this models
// the "flat concatenated block" as an ordered slice of slots indexed
// by registration position; Slot[T] (below) is the typed handle a
// middleware builds from the index Chain.Use returns, for reading/
// writing its own slot without knowing any other middleware's slot
// type.
type Context struct {
	slots     []any
	ranBefore int
}

// NewContext allocates a Context sized for a Chain, one slot per
// registered middleware. reactor.Connection allocates a fresh one for
// every request; Reset is available to callers that reuse a block.
func NewContext(size int) *Context {
	return &Context{slots: make([]any, size)}
}

// Reset clears every slot, returning the block to its zero state for
// the next request on the same connection.
func (c *Context) Reset() {
	for i := range c.slots {
		c.slots[i] = nil
	}
	c.ranBefore = 0
}

// Slot is a typed handle onto one middleware's context slot, returned
// by Chain.Use's caller wrapping the index, e.g.:
//
//	idx := chain.Use(mw)
//	slot := Slot[myState]{idx: idx}
//	...
//	slot.Set(ctx, myState{...})
type Slot[T any] struct{ idx int }

// NewSlot returns a Slot bound to the given registration index.
func NewSlot[T any](idx int) Slot[T] { return Slot[T]{idx: idx} }

// Get reads the slot's current value, or the zero value if unset.
func (s Slot[T]) Get(ctx *Context) T {
	v, _ := ctx.slots[s.idx].(T)
	return v
}

// Set writes the slot's value for the current request.
func (s Slot[T]) Set(ctx *Context, v T) {
	ctx.slots[s.idx] = v
}

// PartialContext is a read-only prefix view over a Context's slots, up
// to (not including) a given registration index — the "partial
// context": a middleware running its Before hook may read any
// earlier-registered middleware's slot, but not a later one's (which
// hasn't run yet).
type PartialContext struct {
	ctx   *Context
	limit int
}

// Partial returns a PartialContext exposing only slots registered
// before upto.
func Partial(ctx *Context, upto int) PartialContext {
	return PartialContext{ctx: ctx, limit: upto}
}

// Get reads slot s's value if its index is within the visible prefix;
// otherwise it returns the zero value and ok=false.
func Get[T any](pc PartialContext, s Slot[T]) (T, bool) {
	var zero T
	if s.idx >= pc.limit {
		return zero, false
	}
	v, ok := pc.ctx.slots[s.idx].(T)
	return v, ok
}
