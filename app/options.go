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

package app

import (
	"crypto/x509"
	"log/slog"
)

// Option configures an App instance during construction.
type Option func(*config)

type config struct {
	serviceName    string
	serviceVersion string
	environment    string

	bindAddr string
	port     int
	socket   string

	tlsCertFile string
	tlsKeyFile  string
	clientCAs   *x509.CertPool
	requireMTLS bool

	tick func()

	baseLogger *slog.Logger

	metrics  *metricsConfig
	tracing  *tracingConfig
	configFile string
}

type metricsConfig struct {
	enabled       bool
	prometheusOn  bool
}

type tracingConfig struct {
	enabled  bool
	exporter string // only "stdout" (or "") is supported
}

// WithServiceName sets the service name used in observability metadata
// and the startup banner.
//
// Example:
//
//	app.New(app.WithServiceName("bmcweb-go"))
func WithServiceName(name string) Option {
	return func(c *config) { c.serviceName = name }
}

// WithServiceVersion sets the service version used in observability
// metadata and the startup banner.
func WithServiceVersion(version string) Option {
	return func(c *config) { c.serviceVersion = version }
}

// WithEnvironment sets the deployment environment ("development" or
// "production"), affecting banner color and default log level.
func WithEnvironment(env string) Option {
	return func(c *config) { c.environment = env }
}

// Port sets the TCP port to bind, mutually exclusive with Socket.
func Port(port int) Option {
	return func(c *config) { c.port = port }
}

// BindAddr sets the bind address (default "0.0.0.0").
func BindAddr(addr string) Option {
	return func(c *config) { c.bindAddr = addr }
}

// Socket sets a Unix domain socket path to listen on instead of TCP.
func Socket(path string) Option {
	return func(c *config) { c.socket = path }
}

// TLSFile configures HTTPS using a certificate/key pair on disk,
// reloadable via SIGHUP (reactor.Server.reloadTLS).
func TLSFile(certFile, keyFile string) Option {
	return func(c *config) {
		c.tlsCertFile = certFile
		c.tlsKeyFile = keyFile
	}
}

// TLS configures mutual TLS client certificate verification, populating
// an optional session handle from the verified client certificate.
func TLS(clientCAs *x509.CertPool, required bool) Option {
	return func(c *config) {
		c.clientCAs = clientCAs
		c.requireMTLS = required
	}
}

// Tick registers a callback invoked once per second alongside the
// timer queue's own processing.
func Tick(fn func()) Option {
	return func(c *config) { c.tick = fn }
}

// WithLogger sets the base structured logger. If not provided, a
// default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.baseLogger = logger }
}

// WithMetrics enables the Prometheus exporter wired in
// app/observability.go.
func WithMetrics() Option {
	return func(c *config) { c.metrics = &metricsConfig{enabled: true, prometheusOn: true} }
}

// WithTracing enables OpenTelemetry tracing, exported via exporter.
// Only "stdout" (or "") is supported; any other value, "otlp"
// included, makes Validate return an error.
func WithTracing(exporter string) Option {
	return func(c *config) { c.tracing = &tracingConfig{enabled: true, exporter: exporter} }
}

// WithConfigFile loads additional settings (bind address, port, socket,
// TLS paths, mTLS toggle) from a TOML or YAML file via app/config.go.
// Every field the file sets overrides the value any Option set for it.
// The file has no idle-timeout setting.
func WithConfigFile(path string) Option {
	return func(c *config) { c.configFile = path }
}
