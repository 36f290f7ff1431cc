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

// Package main demonstrates a quick-start embedded reactor: a simple
// typed route, a dynamic route, and a WebSocket echo endpoint.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/bmcweb-go/reactor/app"
	"github.com/bmcweb-go/reactor/middleware/accesslog"
	"github.com/bmcweb-go/reactor/middleware/recovery"
	"github.com/bmcweb-go/reactor/middleware/requestid"
	"github.com/bmcweb-go/reactor/middleware/security"
	"github.com/bmcweb-go/reactor/reactor"
	"github.com/bmcweb-go/reactor/router"
	"github.com/bmcweb-go/reactor/wsocket"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := app.New(
		app.WithServiceName("bmcweb-go"),
		app.WithServiceVersion("0.1.0"),
		app.WithEnvironment("development"),
		app.Port(8080),
		app.WithMetrics(),
	)

	a.Use("requestid", requestid.New(0))
	a.Use("accesslog", accesslog.New(1, slog.Default()))
	a.Use("recovery", recovery.New(slog.Default()))
	a.Use("security", security.New())

	// GET /a/<int>/b -> handler replies "n=<n>".
	router.BindTyped1(
		router.NewRuleTagged1[int64](a.Router(), "/a/<int>/b").Methods(router.MethodGet),
		func(req *router.Request, resp *router.Response, n int64) {
			resp.WriteString("n=" + itoa(n))
		},
	)

	a.RouteDynamic("/echo/<str>").Methods(router.MethodGet).Handle(
		func(req *router.Request, resp *router.Response) {
			resp.WriteJSON(map[string]any{"echo": req.Params.Strs[0]})
		},
	)

	a.RouteDynamic("/ws").HandleUpgrade(func(req *router.Request, adaptor any) {
		conn := adaptor.(*reactor.Connection)
		conn.MarkHandoff()

		hreq := &http.Request{Method: req.Method, URL: &url.URL{Path: req.Path}, Header: req.Header}
		_, err := wsocket.UpgradeRaw(conn.Conn(), conn.Reader(), hreq, wsocket.Handlers{
			Message: func(s *wsocket.Session, data string, isText bool) {
				s.SendText("echo: " + data)
			},
		})
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
		}
	})

	if err := a.Run(ctx); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func itoa(n int64) string {
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
