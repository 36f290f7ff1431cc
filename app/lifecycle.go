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

// lifecycleHooks collects the application lifecycle callbacks: OnStart
// (before the banner/listener), OnReady (after the banner, just before
// the server opens its listener), OnShutdown (after the server has
// stopped and its listener is closed), OnStop (after observability
// teardown, as Run returns), and OnRoute (fired once per registered
// route, useful for generating an OpenAPI-style listing).
type lifecycleHooks struct {
	onStart    []func(*App)
	onReady    []func(*App)
	onShutdown []func(*App)
	onStop     []func(*App)
	onRoute    []func(pattern string)
}

// OnStart registers a hook run once, before the listener is created.
func (a *App) OnStart(fn func(*App)) { a.hooks.onStart = append(a.hooks.onStart, fn) }

// OnReady registers a hook run once, after the banner and just before
// the server opens its listener; it does not wait for the listener to
// be accepting.
func (a *App) OnReady(fn func(*App)) { a.hooks.onReady = append(a.hooks.onReady, fn) }

// OnShutdown registers a hook run once the server has stopped serving
// and its listener is already closed, before observability teardown.
func (a *App) OnShutdown(fn func(*App)) { a.hooks.onShutdown = append(a.hooks.onShutdown, fn) }

// OnStop registers a hook run after Run returns.
func (a *App) OnStop(fn func(*App)) { a.hooks.onStop = append(a.hooks.onStop, fn) }

// OnRoute registers a hook fired once per route at registration time.
func (a *App) OnRoute(fn func(pattern string)) { a.hooks.onRoute = append(a.hooks.onRoute, fn) }

func (h *lifecycleHooks) runStart(a *App) {
	for _, fn := range h.onStart {
		fn(a)
	}
}

func (h *lifecycleHooks) runReady(a *App) {
	for _, fn := range h.onReady {
		fn(a)
	}
}

func (h *lifecycleHooks) runShutdown(a *App) {
	for _, fn := range h.onShutdown {
		fn(a)
	}
}

func (h *lifecycleHooks) runStop(a *App) {
	for _, fn := range h.onStop {
		fn(a)
	}
}
