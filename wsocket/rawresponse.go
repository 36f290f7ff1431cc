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

package wsocket

import (
	"bufio"
	"net"
	"net/http"
	"time"
)

// rawResponseWriter adapts a net.Conn that reactor.Connection has
// already taken off its own HTTP loop (the HANDOFF branch of its state
// machine) into the http.ResponseWriter + http.Hijacker pair
// gorilla/websocket's Upgrader expects, so UpgradeRaw can share the
// same Upgrade code path as a net/http-integrated caller.
type rawResponseWriter struct {
	conn   net.Conn
	br     *bufio.Reader
	header http.Header
	status int
}

func (w *rawResponseWriter) Header() http.Header { return w.header }

func (w *rawResponseWriter) Write(b []byte) (int, error) { return w.conn.Write(b) }

func (w *rawResponseWriter) WriteHeader(status int) { w.status = status }

func (w *rawResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	rw := bufio.NewReadWriter(w.br, bufio.NewWriter(w.conn))
	return w.conn, rw, nil
}

func deadlineNow() time.Time {
	return time.Now().Add(5 * time.Second)
}
