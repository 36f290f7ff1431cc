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

// Package bodylimit makes the connection-level 30 MiB request body cap
// observable as a middleware. The connection parser enforces the cap
// first and closes early with 413; this middleware exists so the cap
// is also visible to anything introspecting the registered chain, and
// as a second line of defense if a future transport stops enforcing
// it upstream.
package bodylimit

import (
	"net/http"

	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/router"
)

// DefaultMax is the 30 MiB request body cap.
const DefaultMax = 30 * 1024 * 1024

// New returns the body-limit middleware enforcing max bytes.
func New(max int) middleware.Middleware {
	if max <= 0 {
		max = DefaultMax
	}
	return middleware.Middleware{
		Name: "bodylimit",
		Before: func(req *router.Request, resp *router.Response, ctx *middleware.Context) bool {
			if len(req.Body) > max {
				resp.StatusCode = http.StatusRequestEntityTooLarge
				resp.Reason = "Request Entity Too Large"
				return false
			}
			return true
		},
	}
}
