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

// Package accesslog emits one structured log line per completed
// request via log/slog.
package accesslog

import (
	"log/slog"
	"time"

	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/router"
)

var startSlot = middleware.NewSlot[time.Time](-1)

// New returns the access-log middleware, logging to logger.
func New(idx int, logger *slog.Logger) middleware.Middleware {
	startSlot = middleware.NewSlot[time.Time](idx)
	return middleware.Middleware{
		Name: "accesslog",
		Before: func(req *router.Request, resp *router.Response, ctx *middleware.Context) bool {
			startSlot.Set(ctx, time.Now())
			return true
		},
		After: func(req *router.Request, resp *router.Response, ctx *middleware.Context) {
			start := startSlot.Get(ctx)
			logger.Info("request",
				"method", req.Method,
				"path", req.Path,
				"status", resp.StatusCode,
				"bytes", len(resp.Body),
				"duration", time.Since(start).String(),
			)
		},
	}
}
