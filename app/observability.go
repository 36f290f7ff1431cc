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
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// observability holds the process-wide tracer/meter providers wired
// by setupObservability, torn down by Shutdown when the server stops.
type observability struct {
	tracer   trace.Tracer
	shutdown []func(context.Context) error
}

// setupObservability wires OpenTelemetry tracing and metrics
// (go.opentelemetry.io/otel + sdk + sdk/metric +
// exporters/prometheus + exporters/stdout/stdoutmetric +
// exporters/stdout/stdouttrace).
func setupObservability(c config) (*observability, error) {
	obs := &observability{}

	if c.tracing != nil && c.tracing.enabled {
		var exp sdktrace.SpanExporter
		var err error
		switch c.tracing.exporter {
		case "stdout", "":
			exp, err = stdouttrace.New()
		default:
			return nil, fmt.Errorf("app: unsupported trace exporter %q", c.tracing.exporter)
		}
		if err != nil {
			return nil, fmt.Errorf("app: tracing exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
		otel.SetTracerProvider(tp)
		obs.tracer = tp.Tracer(c.serviceName)
		obs.shutdown = append(obs.shutdown, tp.Shutdown)
	}

	if c.metrics != nil && c.metrics.enabled {
		if c.metrics.prometheusOn {
			promExp, err := prometheus.New()
			if err != nil {
				return nil, fmt.Errorf("app: prometheus exporter: %w", err)
			}
			mp := metric.NewMeterProvider(metric.WithReader(promExp))
			otel.SetMeterProvider(mp)
			obs.shutdown = append(obs.shutdown, mp.Shutdown)
		} else {
			stdoutExp, err := stdoutmetric.New()
			if err != nil {
				return nil, fmt.Errorf("app: stdout metric exporter: %w", err)
			}
			mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(stdoutExp)))
			otel.SetMeterProvider(mp)
			obs.shutdown = append(obs.shutdown, mp.Shutdown)
		}
	}

	return obs, nil
}

// Shutdown tears down every exporter registered by setupObservability.
func (o *observability) Shutdown(ctx context.Context) {
	for _, fn := range o.shutdown {
		_ = fn(ctx)
	}
}
