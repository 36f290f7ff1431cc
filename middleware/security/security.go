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

// Package security injects a fixed set of hardening response headers
// on every response, not just protocol upgrades.
package security

import (
	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/router"
)

// New returns the security-headers middleware.
func New() middleware.Middleware {
	return middleware.Middleware{
		Name: "security",
		After: func(req *router.Request, resp *router.Response, ctx *middleware.Context) {
			if resp.Header == nil {
				resp.Header = make(map[string][]string)
			}
			h := resp.Header
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-XSS-Protection", "1; mode=block")
			h.Set("Content-Security-Policy", "default-src 'self'")
			h.Set("X-Frame-Options", "DENY")
		},
	}
}
