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
	"net/http"
	"sync/atomic"
	"time"
)

// dateCacheRefresh is the coarse refresh interval: the Date response
// header is accurate to within 10 seconds rather than recomputed on
// every request.
const dateCacheRefresh = 10 * time.Second

// dateCache holds the current RFC 7231 IMF-fixdate Date header value,
// refreshed on a timer rather than per-request, safe for concurrent
// reads from every connection goroutine via atomic.Pointer.
type dateCache struct {
	cur atomic.Pointer[string]
}

func newDateCache() *dateCache {
	dc := &dateCache{}
	dc.refresh()
	return dc
}

func (dc *dateCache) refresh() {
	s := time.Now().UTC().Format(http.TimeFormat)
	dc.cur.Store(&s)
}

// Get returns the cached Date header value.
func (dc *dateCache) Get() string {
	return *dc.cur.Load()
}
