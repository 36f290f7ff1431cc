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

package reactor

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/router"
)

func newTestConnection(t *testing.T, rt *router.Router) (client net.Conn, done <-chan struct{}) {
	t.Helper()
	require.NoError(t, rt.Validate())

	clientConn, serverConn := net.Pipe()
	chain := middleware.NewChain()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewConnection(serverConn, rt, chain, newDateCache(), newTimerQueue(), logger, "bmcweb-go/test", nil)

	ch := make(chan struct{})
	go func() {
		c.Serve()
		close(ch)
	}()
	return clientConn, ch
}

// TestConnectionSimpleGet covers a matched GET route replying 200
// with the handler's body.
func TestConnectionSimpleGet(t *testing.T) {
	t.Parallel()

	rt := router.New()
	rt.NewRuleDynamic("/hello").Methods(router.MethodGet).Handle(func(req *router.Request, resp *router.Response) {
		resp.WriteString("hi")
	})
	client, done := newTestConnection(t, rt)

	_, err := client.Write([]byte("GET /hello HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\n\r\n"))
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "hi", string(body))

	client.Close()
	<-done
}

// TestConnectionMethodMismatch covers scenario 2: a path that matches
// but whose method is not allowed replies 405 with an Allow header.
func TestConnectionMethodMismatch(t *testing.T) {
	t.Parallel()

	rt := router.New()
	rt.NewRuleDynamic("/hello").Methods(router.MethodGet).Handle(func(req *router.Request, resp *router.Response) {})
	client, done := newTestConnection(t, rt)

	_, err := client.Write([]byte("POST /hello HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\nContent-Length: 0\r\n\r\n"))
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	require.NoError(t, err)
	assert.Equal(t, 405, resp.StatusCode)
	assert.Equal(t, "GET", resp.Header.Get("Allow"))

	client.Close()
	<-done
}

// TestConnectionPathMiss covers scenario 3: no rule matches the path.
func TestConnectionPathMiss(t *testing.T) {
	t.Parallel()

	rt := router.New()
	rt.NewRuleDynamic("/hello").Methods(router.MethodGet).Handle(func(req *router.Request, resp *router.Response) {})
	client, done := newTestConnection(t, rt)

	_, err := client.Write([]byte("GET /missing HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\n\r\n"))
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	client.Close()
	<-done
}

// TestConnectionBodyTooLarge covers scenario 4: a body over
// MaxBodyBytes is rejected with 413 before the handler runs.
func TestConnectionBodyTooLarge(t *testing.T) {
	t.Parallel()

	rt := router.New()
	called := false
	rt.NewRuleDynamic("/upload").Methods(router.MethodPost).Handle(func(req *router.Request, resp *router.Response) {
		called = true
	})
	client, done := newTestConnection(t, rt)

	bodyLen := MaxBodyBytes + 2
	header := "POST /upload HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\nContent-Length: " +
		itoa(bodyLen) + "\r\n\r\n"

	go func() {
		_, _ = client.Write([]byte(header))
		_, _ = client.Write(bytes.Repeat([]byte("a"), bodyLen))
	}()

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	require.NoError(t, err)
	assert.Equal(t, 413, resp.StatusCode)
	assert.False(t, called)

	client.Close()
	<-done
}

// TestConnectionMissingHost covers scenario 5: an HTTP/1.1 request with
// no Host header is rejected with 400.
func TestConnectionMissingHost(t *testing.T) {
	t.Parallel()

	rt := router.New()
	rt.NewRuleDynamic("/hello").Methods(router.MethodGet).Handle(func(req *router.Request, resp *router.Response) {})
	client, done := newTestConnection(t, rt)

	_, err := client.Write([]byte("GET /hello HTTP/1.1\r\nConnection: close\r\n\r\n"))
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	client.Close()
	<-done
}

// TestConnectionHandoffSkipsHTTPResponse covers scenario 6's connection
// side: once an upgrade handler calls MarkHandoff, Serve must not write
// an HTTP response or attempt to read another request on the
// goroutine, since the handler has taken ownership of the raw conn.
func TestConnectionHandoffSkipsHTTPResponse(t *testing.T) {
	t.Parallel()

	rt := router.New()
	rt.NewRuleDynamic("/ws").Methods(router.MethodGet).HandleUpgrade(func(req *router.Request, adaptor any) {
		conn := adaptor.(*Connection)
		conn.MarkHandoff()
	})
	client, done := newTestConnection(t, rt)

	req := "GET /ws HTTP/1.1\r\nHost: localhost\r\nUpgrade: websocket\r\nConnection: Upgrade\r\n\r\n"
	_, err := client.Write([]byte(req))
	require.NoError(t, err)

	<-done // Serve must return on its own, without this test writing a response reader.

	client.Close()
}

func TestConnectionKeepAliveServesSecondRequest(t *testing.T) {
	t.Parallel()

	rt := router.New()
	n := 0
	rt.NewRuleDynamic("/count").Methods(router.MethodGet).Handle(func(req *router.Request, resp *router.Response) {
		n++
		resp.WriteString(itoa(n))
	})
	client, done := newTestConnection(t, rt)
	br := bufio.NewReader(client)

	_, err := client.Write([]byte("GET /count HTTP/1.1\r\nHost: localhost\r\n\r\n"))
	require.NoError(t, err)
	resp1, err := http.ReadResponse(br, nil)
	require.NoError(t, err)
	body1, _ := io.ReadAll(resp1.Body)
	assert.Equal(t, "1", string(body1))

	_, err = client.Write([]byte("GET /count HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\n\r\n"))
	require.NoError(t, err)
	resp2, err := http.ReadResponse(br, nil)
	require.NoError(t, err)
	body2, _ := io.ReadAll(resp2.Body)
	assert.Equal(t, "2", string(body2))

	client.Close()
	<-done
}

// TestConnectionHandlerPanicRecovers asserts that a panicking handler
// yields a 500 response instead of crashing the connection's goroutine.
func TestConnectionHandlerPanicRecovers(t *testing.T) {
	t.Parallel()

	rt := router.New()
	rt.NewRuleDynamic("/boom").Methods(router.MethodGet).Handle(func(req *router.Request, resp *router.Response) {
		panic("kaboom")
	})
	client, done := newTestConnection(t, rt)

	_, err := client.Write([]byte("GET /boom HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\n\r\n"))
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	client.Close()
	<-done
}

// TestConnectionAsyncHandlerDefersCompletion asserts that a handler
// setting resp.Async and completing from another goroutine gets its
// response written only once that goroutine calls End, not force
// completed when the handler call itself returns.
func TestConnectionAsyncHandlerDefersCompletion(t *testing.T) {
	t.Parallel()

	rt := router.New()
	rt.NewRuleDynamic("/async").Methods(router.MethodGet).Handle(func(req *router.Request, resp *router.Response) {
		resp.Async = true
		go func() {
			if resp.IsAlive() {
				resp.WriteString("done")
			}
			resp.End()
		}()
	})
	client, done := newTestConnection(t, rt)

	_, err := client.Write([]byte("GET /async HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\n\r\n"))
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(client), nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "done", string(body))

	client.Close()
	<-done
}
