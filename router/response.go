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

import "net/http"

// Response is an owning, reassignable-but-not-copyable message under
// construction by a handler. A zero Response is ready to use;
// reactor.Connection builds a fresh one for every request. Reset
// returns one to that state for callers that reuse a Response;
// Connection does not call it.
type Response struct {
	StatusCode int
	Reason     string
	Header     http.Header
	Body       []byte

	// JSON is filled by handlers that prefer to hand back a structured
	// value instead of raw bytes; it is serialized lazily by
	// completeRequest, honoring content negotiation (render.go).
	JSON any

	Completed bool

	// Async tells the owning Connection that the handler is deferring
	// completion to another goroutine instead of returning with the
	// response already finished. A handler sets this to true before
	// returning without having called End; the Connection then blocks
	// the request/response cycle on End actually being called, rather
	// than force-completing the response itself.
	Async bool

	// CompleteCallback is installed by the owning Connection before the
	// handler runs: calling End triggers it, exactly once.
	CompleteCallback func()

	// IsAlive answers "is the owning Connection still open?" — handlers
	// deferring completion (writing End from another goroutine) must
	// check this before touching the Response.
	IsAlive func() bool
}

// Reset returns r to an empty state, ready for a new request on the
// same keep-alive connection.
func (r *Response) Reset() {
	r.StatusCode = 0
	r.Reason = ""
	r.Header = make(http.Header)
	r.Body = nil
	r.JSON = nil
	r.Completed = false
	r.Async = false
	r.CompleteCallback = nil
	r.IsAlive = nil
}

// WriteJSON sets the JSON payload and a 200 status if none was set yet.
func (r *Response) WriteJSON(v any) {
	if r.StatusCode == 0 {
		r.StatusCode = http.StatusOK
	}
	r.JSON = v
}

// WriteString appends to the raw body and sets a 200 status if none was
// set yet.
func (r *Response) WriteString(s string) {
	if r.StatusCode == 0 {
		r.StatusCode = http.StatusOK
	}
	r.Body = append(r.Body, s...)
}

// End marks the response complete and fires the completion callback
// installed by the Connection, analogous to a
// `response.complete_callback = [this]{ this->completeRequest(); }`
// wiring.
func (r *Response) End() {
	if r.Completed {
		return
	}
	r.Completed = true
	if r.CompleteCallback != nil {
		r.CompleteCallback()
	}
}
