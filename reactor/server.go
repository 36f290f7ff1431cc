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
	"context"
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/router"
)

// tickInterval drives timerQueue.process() at a fixed 1 Hz.
const tickInterval = 1 * time.Second

// TLSConfig carries the certificate/mTLS settings Server needs; it is
// deliberately not *tls.Config itself so Server can rebuild the
// underlying config on SIGHUP (reload_unix.go) without the caller
// needing to know the reload mechanism.
type TLSConfig struct {
	CertFile   string
	KeyFile    string
	ClientCAs  *x509.CertPool
	RequireMTLS bool
}

// Server is the acceptor: it owns the listener, dispatches accepted
// connections, and runs a TLS/plain dual path with structured
// lifecycle logging.
type Server struct {
	Addr   string
	Router *router.Router
	Chain  *middleware.Chain
	Logger *slog.Logger

	// ServerName is stamped into every response's Server header.
	ServerName string

	TLS *TLSConfig

	// Tick, if set, is invoked once per tickInterval alongside the
	// timer queue's own processing — an application-level hook for
	// periodic housekeeping.
	Tick func()

	dates  *dateCache
	timers *timerQueue

	mu       sync.Mutex
	listener net.Listener
	stopped  bool
}

// NewServer constructs a Server ready to Run; Router.Validate must
// already have been called.
func NewServer(addr string, rt *router.Router, chain *middleware.Chain, logger *slog.Logger, serverName string) *Server {
	return &Server{
		Addr:       addr,
		Router:     rt,
		Chain:      chain,
		Logger:     logger,
		ServerName: serverName,
		dates:      newDateCache(),
		timers:     newTimerQueue(),
	}
}

// Run listens and accepts connections until ctx is canceled or Stop is
// called, logging lifecycle events as it transitions.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.listen()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logInfo("server listening", "addr", s.Addr, "tls", s.TLS != nil)

	go s.tickLoop(ctx)
	go s.signalLoop(ctx)
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	for {
		s.mu.Lock()
		cur := s.listener
		s.mu.Unlock()

		conn, err := cur.Accept()
		if err != nil {
			s.mu.Lock()
			stopped := s.stopped
			reloaded := s.listener != cur
			s.mu.Unlock()
			if stopped {
				return nil
			}
			if reloaded {
				// cur was closed by reloadTLS; resume on the new one.
				continue
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			s.logError("accept error", "err", err)
			continue
		}
		go s.serveConn(conn)
	}
}

func (s *Server) listen() (net.Listener, error) {
	if s.TLS == nil {
		return net.Listen("tcp", s.Addr)
	}
	cert, err := tls.LoadX509KeyPair(s.TLS.CertFile, s.TLS.KeyFile)
	if err != nil {
		return nil, err
	}
	cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
	if s.TLS.ClientCAs != nil {
		cfg.ClientCAs = s.TLS.ClientCAs
		if s.TLS.RequireMTLS {
			cfg.ClientAuth = tls.RequireAndVerifyClientCert
		} else {
			cfg.ClientAuth = tls.VerifyClientCertIfGiven
		}
	}
	return tls.Listen("tcp", s.Addr, cfg)
}

func (s *Server) serveConn(conn net.Conn) {
	var session *router.Session
	if tc, ok := conn.(*tls.Conn); ok {
		if err := tc.Handshake(); err != nil {
			conn.Close()
			return
		}
		state := tc.ConnectionState()
		if len(state.PeerCertificates) > 0 {
			sess, err := verifyClientCertificate(state.PeerCertificates)
			if err != nil {
				s.logError("mTLS verification failed", "err", err)
			} else {
				session = sess
			}
		}
	}
	c := NewConnection(conn, s.Router, s.Chain, s.dates, s.timers, s.Logger, s.ServerName, session)
	c.Serve()
}

// signalLoop handles SIGINT/SIGTERM (stop) and SIGHUP (reload the TLS
// certificate and swap the listener without dropping already-accepted
// connections), split by platform between reload_unix.go and
// reload_windows.go.
func (s *Server) signalLoop(ctx context.Context) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stopCh)

	hupCh, cleanup := setupReloadSignal()
	defer cleanup()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			s.logInfo("signal received, stopping")
			s.Stop()
			return
		case <-hupCh:
			s.logInfo("SIGHUP received, reloading certificate")
			if err := s.reloadTLS(); err != nil {
				s.logError("certificate reload failed", "err", err)
			}
		}
	}
}

// reloadTLS rebuilds the listener from the current TLS configuration,
// letting an operator rotate a certificate file on disk and signal
// the process to pick it up without a restart.
func (s *Server) reloadTLS() error {
	if s.TLS == nil {
		return nil
	}
	ln, err := s.listen()
	if err != nil {
		return err
	}
	s.mu.Lock()
	old := s.listener
	s.listener = ln
	s.mu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

func (s *Server) tickLoop(ctx context.Context) {
	t := time.NewTicker(tickInterval)
	defer t.Stop()
	var lastDate time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.timers.process()
			if time.Since(lastDate) >= dateCacheRefresh {
				s.dates.refresh()
				lastDate = time.Now()
			}
			if s.Tick != nil {
				s.Tick()
			}
		}
	}
}

// Stop closes the listener, causing Run's Accept loop to return.
func (s *Server) Stop() {
	s.mu.Lock()
	s.stopped = true
	ln := s.listener
	s.mu.Unlock()
	if ln != nil {
		ln.Close()
	}
}

func (s *Server) logInfo(msg string, args ...any) {
	if s.Logger != nil {
		s.Logger.Info(msg, args...)
	}
}

func (s *Server) logError(msg string, args ...any) {
	if s.Logger != nil {
		s.Logger.Error(msg, args...)
	}
}
