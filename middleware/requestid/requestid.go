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

// Package requestid stamps every request with a UUID.
package requestid

import (
	"github.com/google/uuid"

	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/router"
)

// Header is the response header carrying the generated request ID.
const Header = "X-Request-Id"

// Slot exposes the generated ID to later middleware and handlers via
// the shared Context block.
var Slot = middleware.NewSlot[string](-1)

// New returns the request-id middleware, binding Slot to idx (the
// index Chain.Use assigned it).
func New(idx int) middleware.Middleware {
	Slot = middleware.NewSlot[string](idx)
	return middleware.Middleware{
		Name: "requestid",
		Before: func(req *router.Request, resp *router.Response, ctx *middleware.Context) bool {
			id := uuid.NewString()
			Slot.Set(ctx, id)
			if resp.Header == nil {
				resp.Header = make(map[string][]string)
			}
			resp.Header.Set(Header, id)
			return true
		},
	}
}
