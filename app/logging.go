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
	"log/slog"
	"os"
)

// newLogger returns c.baseLogger if the caller supplied one via
// WithLogger, or a default JSON logger over stderr otherwise.
func newLogger(c config) *slog.Logger {
	if c.baseLogger != nil {
		return c.baseLogger
	}
	level := slog.LevelInfo
	if c.environment == "development" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", c.serviceName, "version", c.serviceVersion)
}
