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

// Package recovery turns a panicking handler into a 500 response
// instead of taking down the connection's goroutine.
package recovery

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/router"
)

// New returns the recovery middleware. It has no Before/After hook:
// recovery only matters around the handler call itself, which the
// owning Connection wraps in a defer calling Recover below.
func New(logger *slog.Logger) middleware.Middleware {
	return middleware.Middleware{Name: "recovery"}
}

// Recover is called from the Connection's deferred recover() around
// the handler invocation; it is not a Before/After hook because the
// chain's own hooks cannot intercept a panic unwinding through them.
func Recover(logger *slog.Logger, req *router.Request, resp *router.Response) {
	if rec := recover(); rec != nil {
		if logger != nil {
			logger.Error("panic recovered", "panic", rec, "path", req.Path, "stack", string(debug.Stack()))
		}
		resp.StatusCode = http.StatusInternalServerError
		resp.Reason = "Internal Server Error"
		resp.Body = []byte("Internal Server Error")
		resp.JSON = nil
	}
}
