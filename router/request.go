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

import (
	"net/http"
	"net/url"
)

// Session is the identity established by a successful mTLS client
// certificate verification (reactor/mtls.go), attached to a Request
// that arrived over a connection doing mutual auth.
type Session struct {
	UserName string
}

// Request is a non-owning view over a parsed HTTP message. It is built
// fresh per request by reactor.Connection and handed to the matched
// Rule's handler; nothing in this package parses wire bytes.
type Request struct {
	Method string

	// VersionMajor/VersionMinor encode the HTTP version, e.g. 1.1 as (1, 1).
	VersionMajor int
	VersionMinor int

	// Target is the request line's raw request-target, unparsed.
	Target string
	// Path is Target with the query string stripped.
	Path string
	// Query is the parsed query string.
	Query url.Values

	Header http.Header

	Body []byte

	KeepAlive bool
	IsUpgrade bool

	// Params holds the decoded path parameters matched by Router.Handle.
	Params Params

	// Context is the opaque middleware context block pointer,
	// concretely a *middleware.Context, left untyped here to avoid
	// router importing middleware.
	Context any

	// Reactor is an opaque back-reference to the owning I/O reactor
	// (concretely *reactor.Connection); handlers that need it type-assert.
	Reactor any

	// Session is non-nil only when the connection performed mTLS client
	// certificate verification and it succeeded.
	Session *Session
}

// HeaderValue returns the first value of the named header field, or "" if
// absent. Field names are matched case-insensitively per RFC 9110.
func (r *Request) HeaderValue(name string) string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get(name)
}
