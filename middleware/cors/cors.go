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

// Package cors adds cross-origin resource sharing headers.
package cors

import (
	"strings"

	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/router"
)

// Config lists the allowed origins; "*" allows any.
type Config struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// New returns the CORS middleware configured by cfg.
func New(cfg Config) middleware.Middleware {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	return middleware.Middleware{
		Name: "cors",
		Before: func(req *router.Request, resp *router.Response, ctx *middleware.Context) bool {
			origin := req.HeaderValue("Origin")
			if origin == "" {
				return true
			}
			if resp.Header == nil {
				resp.Header = make(map[string][]string)
			}
			if allowed(cfg.AllowedOrigins, origin) {
				resp.Header.Set("Access-Control-Allow-Origin", origin)
			}
			if methods != "" {
				resp.Header.Set("Access-Control-Allow-Methods", methods)
			}
			if headers != "" {
				resp.Header.Set("Access-Control-Allow-Headers", headers)
			}
			return true
		},
	}
}

func allowed(list []string, origin string) bool {
	for _, o := range list {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
