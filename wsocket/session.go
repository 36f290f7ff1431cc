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

// Package wsocket implements the WebSocket session: accept, read,
// write, and a single-outstanding-write discipline with a pending-
// message queue, built on github.com/gorilla/websocket rather than a
// hand-rolled frame codec.
package wsocket

import (
	"bufio"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// MaxFrameBytes caps an individual message, mirroring the original's
// fixed read-buffer discipline.
const MaxFrameBytes = 128 * 1024

// Handlers are the callbacks a caller supplies for session lifecycle
// events, the Go analogue of ConnectionImpl's open_handler/
// message_handler/close_handler function fields.
type Handlers struct {
	Open    func(s *Session)
	Message func(s *Session, data string, isText bool)
	Close   func(s *Session, reason string)
}

// Session wraps one upgraded connection. SendBinary/SendText enqueue
// onto outbox and a single writer goroutine drains it (Close writes its
// close frame directly rather than through the outbox), which
// is the Go equivalent of the original's "single outstanding write,
// queue the rest" discipline (doWrite only issues async_write if one
// isn't already in flight).
type Session struct {
	conn *websocket.Conn
	h    Handlers

	mu     sync.Mutex
	outbox [][]byte
	texts  []bool
	writing bool
	closed bool

	// UserData mirrors ConnectionImpl::userdata, an opaque slot a
	// caller can use to stash per-session application state.
	UserData any
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Upgrade completes the HTTP -> WebSocket handshake on conn, injecting
// the same fixed security headers bmcweb's ConnectionImpl::start
// writes before accepting, runs Open on the caller's goroutine, then
// starts the session's read loop on a new goroutine. Message and Close
// are invoked from that read-loop goroutine.
func Upgrade(w http.ResponseWriter, r *http.Request, br *bufio.Reader, h Handlers) (*Session, error) {
	header := http.Header{}
	header.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	header.Set("X-Content-Type-Options", "nosniff")
	header.Set("X-XSS-Protection", "1; mode=block")
	header.Set("Content-Security-Policy", "default-src 'self'")
	if proto := r.Header.Get("Sec-WebSocket-Protocol"); proto != "" {
		header.Set("Sec-WebSocket-Protocol", firstProtocol(proto))
	}

	conn, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(MaxFrameBytes)

	s := &Session{conn: conn, h: h}
	if h.Open != nil {
		h.Open(s)
	}
	go s.readLoop()
	return s, nil
}

func firstProtocol(v string) string {
	for i := 0; i < len(v); i++ {
		if v[i] == ',' {
			return v[:i]
		}
	}
	return v
}

// UpgradeRaw upgrades a connection reactor has already taken off the
// HTTP loop (the HANDOFF branch), using a minimal ResponseWriter that
// writes to conn and can be hijacked as conn/br, for callers that do not go through net/http's
// own server loop. Kept separate from Upgrade so handlers using
// net/http integration and handlers using the reactor's own connection
// loop share the same session type.
func UpgradeRaw(conn net.Conn, br *bufio.Reader, r *http.Request, h Handlers) (*Session, error) {
	rw := &rawResponseWriter{conn: conn, br: br, header: make(http.Header)}
	return Upgrade(rw, r, br, h)
}

func (s *Session) readLoop() {
	for {
		mt, data, err := s.conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			s.closed = true
			s.mu.Unlock()
			if s.h.Close != nil {
				s.h.Close(s, err.Error())
			}
			return
		}
		if s.h.Message != nil {
			s.h.Message(s, string(data), mt == websocket.TextMessage)
		}
	}
}

// SendText enqueues a text frame, matching ConnectionImpl::sendText.
func (s *Session) SendText(msg string) { s.enqueue([]byte(msg), true) }

// SendBinary enqueues a binary frame, matching ConnectionImpl::sendBinary.
func (s *Session) SendBinary(msg []byte) { s.enqueue(msg, false) }

func (s *Session) enqueue(data []byte, isText bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.outbox = append(s.outbox, data)
	s.texts = append(s.texts, isText)
	if s.writing {
		s.mu.Unlock()
		return
	}
	s.writing = true
	s.mu.Unlock()
	go s.drain()
}

func (s *Session) drain() {
	for {
		s.mu.Lock()
		if len(s.outbox) == 0 {
			s.writing = false
			s.mu.Unlock()
			return
		}
		data, isText := s.outbox[0], s.texts[0]
		s.outbox = s.outbox[1:]
		s.texts = s.texts[1:]
		s.mu.Unlock()

		mt := websocket.BinaryMessage
		if isText {
			mt = websocket.TextMessage
		}
		if err := s.conn.WriteMessage(mt, data); err != nil {
			s.Close("write error")
			return
		}
	}
}

// Close sends a close frame, matching ConnectionImpl::close.
func (s *Session) Close(reason string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, deadlineNow())
	s.conn.Close()
}
