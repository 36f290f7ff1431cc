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

// Package reactor implements the connection state machine, timer
// queue, and server/acceptor loop: one goroutine per accepted
// connection rather than a single-threaded async-IO reactor.
package reactor

import (
	"bufio"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/middleware/recovery"
	"github.com/bmcweb-go/reactor/router"
)

// State is a Connection's position in its state machine: ACCEPTED ->
// HANDSHAKING -> READ_HDR -> READ_BODY -> DISPATCH -> WRITE ->
// (READ_HDR | CLOSING), with a HANDOFF branch out of DISPATCH for
// protocol upgrades.
type State int

const (
	StateAccepted State = iota
	StateHandshaking
	StateReadHeader
	StateReadBody
	StateDispatch
	StateWrite
	StateHandoff
	StateClosing
)

// MaxBodyBytes is the fixed request body cap: a request whose body
// exceeds this is rejected with 413 before the handler ever sees it.
const MaxBodyBytes = 30 * 1024 * 1024

// idleTimeout is how long a keep-alive connection waits for the next
// request before the Connection closes it. The wait is enforced through
// the shared timerQueue rather than net.Conn.SetDeadline directly, so
// the timer queue stays a real, testable component; the value the
// queue applies is its own deadline constant (timerqueue.go), which
// equals this one.
const idleTimeout = 5 * time.Second

// Connection drives one accepted net.Conn (or *tls.Conn) through the
// state machine above on its own goroutine. Read-then-write proceeds
// strictly in sequence on that goroutine, so there is never more than
// one outstanding reader or writer; the reading/writing flags below
// exist to make that invariant independently assertable by tests, not
// to add any concurrency of their own.
type Connection struct {
	conn   net.Conn
	br     *bufio.Reader
	router *router.Router
	chain  *middleware.Chain
	dates  *dateCache
	timers *timerQueue
	logger *slog.Logger

	serverName string

	state   atomic.Int32
	reading atomic.Bool
	writing atomic.Bool

	session *router.Session

	idleTimer uint64
	closed    atomic.Bool
	handedOff atomic.Bool
}

// NewConnection wraps an accepted net.Conn. session, if non-nil, is
// the result of a successful mTLS client-certificate verification
// already performed during the TLS handshake (StateHandshaking).
func NewConnection(conn net.Conn, rt *router.Router, chain *middleware.Chain, dates *dateCache, timers *timerQueue, logger *slog.Logger, serverName string, session *router.Session) *Connection {
	c := &Connection{
		conn:       conn,
		br:         bufio.NewReader(conn),
		router:     rt,
		chain:      chain,
		dates:      dates,
		timers:     timers,
		logger:     logger,
		serverName: serverName,
		session:    session,
	}
	c.state.Store(int32(StateAccepted))
	return c
}

// Serve runs the connection to completion: one or more request/response
// cycles while the client asks for keep-alive, then StateClosing. It
// returns when the goroutine should exit; no explicit destructor is
// needed — once Serve returns and the caller drops its reference,
// ordinary Go garbage collection reclaims the Connection.
func (c *Connection) Serve() {
	defer func() {
		// A handoff hands the raw conn to an upgrade handler (e.g. a
		// WebSocket session) that owns its lifetime from here on;
		// closing it here would sever that session the instant this
		// goroutine returns.
		if !c.handedOff.Load() {
			c.conn.Close()
		}
	}()
	c.state.Store(int32(StateHandshaking))
	c.state.Store(int32(StateReadHeader))

	for {
		c.armIdleTimer()
		req, resp, ok := c.readRequest()
		c.disarmIdleTimer()
		if !ok {
			c.state.Store(int32(StateClosing))
			return
		}

		c.state.Store(int32(StateDispatch))
		ctx := middleware.NewContext(c.chain.Len())
		req.Context = ctx
		done := make(chan struct{})
		resp.CompleteCallback = func() {
			c.completeRequest(req, resp, ctx)
			close(done)
		}
		resp.IsAlive = func() bool { return !c.closed.Load() }

		if c.chain.RunBefore(req, resp, ctx) {
			c.dispatch(req, resp)
			if c.handedOff.Load() {
				// The upgrade handler called MarkHandoff and took
				// ownership of conn for the life of the WebSocket
				// session; this goroutine's HTTP loop is done.
				c.state.Store(int32(StateHandoff))
				return
			}
		}
		if !resp.Completed {
			if resp.Async {
				// The handler deferred completion to another
				// goroutine; block here rather than writing a
				// response out from under it, preserving the
				// single-outstanding-reader/writer invariant.
				<-done
			} else {
				resp.End()
			}
		}

		if c.closed.Load() {
			return
		}
		if !req.KeepAlive {
			c.state.Store(int32(StateClosing))
			return
		}
		c.state.Store(int32(StateReadHeader))
	}
}

// dispatch invokes the matched handler, recovering a panic into a 500
// response rather than letting it unwind across the goroutine boundary
// and take down the whole process.
func (c *Connection) dispatch(req *router.Request, resp *router.Response) {
	defer recovery.Recover(c.logger, req, resp)
	c.router.Handle(req, resp)
}

// readRequest implements READ_HDR/READ_BODY: parses the request line
// and headers, enforces the Host-header-required and body-size-cap
// rules, and reads the body. It returns ok=false on any parse error or
// EOF without writing a response (the client is gone or the stream is
// unrecoverable); a missing Host header or an oversized body first
// gets a 400 or 413 response written with Connection: close, then
// also ok=false. The caller treats ok=false as "close the connection".
func (c *Connection) readRequest() (*router.Request, *router.Response, bool) {
	c.reading.Store(true)
	defer c.reading.Store(false)

	hreq, err := http.ReadRequest(c.br)
	if err != nil {
		return nil, nil, false
	}

	if hreq.Host == "" && hreq.Header.Get("Host") == "" {
		resp := &router.Response{StatusCode: 400, Reason: "Bad Request"}
		c.writeResponse(&router.Request{KeepAlive: false}, resp)
		return nil, nil, false
	}

	limited := io.LimitReader(hreq.Body, MaxBodyBytes+1)
	body, err := io.ReadAll(limited)
	hreq.Body.Close()
	if err != nil {
		return nil, nil, false
	}
	if len(body) > MaxBodyBytes {
		resp := &router.Response{StatusCode: 413, Reason: "Request Entity Too Large"}
		c.writeResponse(&router.Request{KeepAlive: false}, resp)
		return nil, nil, false
	}

	path := hreq.URL.Path
	var query url.Values
	if hreq.URL.RawQuery != "" {
		query, _ = url.ParseQuery(hreq.URL.RawQuery)
	}

	req := &router.Request{
		Method:       hreq.Method,
		VersionMajor: hreq.ProtoMajor,
		VersionMinor: hreq.ProtoMinor,
		Target:       hreq.RequestURI,
		Path:         path,
		Query:        query,
		Header:       hreq.Header,
		Body:         body,
		KeepAlive:    !hreq.Close,
		IsUpgrade:    isUpgradeRequest(hreq.Header),
		Reactor:      c,
		Session:      c.session,
	}

	resp := &router.Response{Header: make(http.Header)}
	return req, resp, true
}

func isUpgradeRequest(h http.Header) bool {
	return strings.EqualFold(h.Get("Upgrade"), "websocket") &&
		strings.Contains(strings.ToLower(h.Get("Connection")), "upgrade")
}

// completeRequest ports http_connection.h::completeRequest: runs the
// after-chain, bails out if the connection died mid-flight, renders
// the body (HTML pretty-print for a browser Accept header, two-space
// indented JSON otherwise) when the handler left a JSON value and no
// raw body,
// stamps Server/Date, honors keep-alive, and writes.
func (c *Connection) completeRequest(req *router.Request, resp *router.Response, ctx *middleware.Context) {
	c.chain.RunAfter(req, resp, ctx)

	if c.closed.Load() {
		return
	}

	if resp.JSON != nil && len(resp.Body) == 0 {
		if prefersHTML(req.Header.Get("Accept")) {
			if html, err := prettyPrintJSON(resp.JSON); err == nil {
				resp.Body = []byte(html)
				resp.Header.Set("Content-Type", "text/html;charset=UTF-8")
			}
		} else {
			if js, err := compactJSON(resp.JSON); err == nil {
				resp.Body = []byte(js)
				resp.Header.Set("Content-Type", "application/json")
			}
		}
	}

	if resp.StatusCode >= 400 && len(resp.Body) == 0 {
		resp.Body = []byte(resp.Reason)
	}

	c.writeResponse(req, resp)
}

func prefersHTML(accept string) bool {
	return strings.Contains(accept, "text/html")
}

// writeResponse implements WRITE: serializes status line, headers
// (Server/Date stamped from the shared cache), and body, honoring
// keep-alive. It is the only place bytes are written to conn. It runs on
// the connection's own goroutine, except for an Async response, where
// it runs on whichever goroutine calls End while Serve blocks waiting
// for it, so there is still only one writer at a time.
func (c *Connection) writeResponse(req *router.Request, resp *router.Response) {
	c.writing.Store(true)
	defer c.writing.Store(false)
	c.state.Store(int32(StateWrite))

	if resp.StatusCode == 0 {
		resp.StatusCode = 200
	}
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	resp.Header.Set("Server", c.serverName)
	resp.Header.Set("Date", c.dates.Get())
	resp.Header.Set("Content-Length", itoa(len(resp.Body)))
	if req.KeepAlive {
		resp.Header.Set("Connection", "keep-alive")
	} else {
		resp.Header.Set("Connection", "close")
	}

	bw := bufio.NewWriter(c.conn)
	reason := resp.Reason
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	bw.WriteString("HTTP/1.1 ")
	bw.WriteString(itoa(resp.StatusCode))
	bw.WriteByte(' ')
	bw.WriteString(reason)
	bw.WriteString("\r\n")
	resp.Header.Write(bw)
	bw.WriteString("\r\n")
	bw.Write(resp.Body)
	if err := bw.Flush(); err != nil {
		c.closed.Store(true)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// armIdleTimer schedules the keep-alive idle close through the shared
// timerQueue rather than a raw net.Conn deadline, so the timer queue
// stays the single mechanism for connection-lifetime deadlines.
func (c *Connection) armIdleTimer() {
	c.idleTimer = c.timers.add(func() {
		c.closed.Store(true)
		c.conn.Close()
	})
}

func (c *Connection) disarmIdleTimer() {
	c.timers.cancel(c.idleTimer)
}

// State reports the connection's current position in the state
// machine, used by tests asserting transition ordering.
func (c *Connection) State() State { return State(c.state.Load()) }

// Reading and Writing expose the single-reader/writer assertion flags
// for tests.
func (c *Connection) Reading() bool { return c.reading.Load() }
func (c *Connection) Writing() bool { return c.writing.Load() }

// Conn exposes the underlying net.Conn for an upgrade handler taking
// ownership of the connection during StateHandoff.
func (c *Connection) Conn() net.Conn { return c.conn }

// MarkHandoff tells Serve's loop that an upgrade handler has taken
// ownership of conn (the HANDOFF branch of the state machine); Serve
// returns immediately afterward without attempting to write an HTTP
// response or read another request.
func (c *Connection) MarkHandoff() { c.handedOff.Store(true) }

// Reader exposes the buffered reader so an upgrade handler can hand
// off without losing any bytes already buffered past the headers.
func (c *Connection) Reader() *bufio.Reader { return c.br }
