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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifecycleHooksRunInRegistrationOrder(t *testing.T) {
	a := &App{}

	var order []string
	a.OnStart(func(*App) { order = append(order, "start1") })
	a.OnStart(func(*App) { order = append(order, "start2") })
	a.OnReady(func(*App) { order = append(order, "ready") })
	a.OnShutdown(func(*App) { order = append(order, "shutdown") })
	a.OnStop(func(*App) { order = append(order, "stop") })

	a.hooks.runStart(a)
	a.hooks.runReady(a)
	a.hooks.runShutdown(a)
	a.hooks.runStop(a)

	assert.Equal(t, []string{"start1", "start2", "ready", "shutdown", "stop"}, order)
}

func TestOnRouteFiresForEveryRegisteredPattern(t *testing.T) {
	a := &App{}
	var seen []string
	a.OnRoute(func(pattern string) { seen = append(seen, pattern) })

	for _, fn := range a.hooks.onRoute {
		fn("/x")
	}
	assert.Equal(t, []string{"/x"}, seen)
}
