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
	"sync"
	"time"

	"github.com/eapache/queue"
)

// deadline is the fixed expiry window applied to every scheduled
// timer.
const deadline = 5 * time.Second

type timerEntry struct {
	t  time.Time
	cb func()
}

// timerQueue is a fixed-deadline ring buffer of pending callbacks: an
// O(1) append on add, O(1) amortized expiry walk from the front on
// process, and in-place nulling on cancel rather than removal — the
// same three properties as bmcweb's TimerQueue, backed here by
// github.com/eapache/queue's ring buffer (the retrieval pack's
// momentics-hioload-ws module uses the same package for its executor
// task queue; we reuse it for the deadline ring).
//
// The original runs on a single-threaded reactor and needs no lock;
// here every connection runs on its own goroutine and shares one
// Server-wide queue, so access is guarded by mu (documented deviation,
// see DESIGN.md).
type timerQueue struct {
	mu   sync.Mutex
	q    *queue.Queue
	step uint64
}

func newTimerQueue() *timerQueue {
	return &timerQueue{q: queue.New()}
}

// add schedules f to run once deadline has elapsed, unless canceled
// first, and returns a token for Cancel.
func (tq *timerQueue) add(f func()) uint64 {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	tq.q.Add(&timerEntry{t: time.Now(), cb: f})
	return tq.step + uint64(tq.q.Length()) - 1
}

// cancel nulls the callback for token k in place rather than removing
// the entry — process() below skips a nulled entry's call but still
// pops it as soon as it reaches the front, so a canceled timer never
// fires.
func (tq *timerQueue) cancel(k uint64) {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	idx := int(k - tq.step)
	if idx < 0 || idx >= tq.q.Length() {
		return
	}
	e := tq.q.Get(idx).(*timerEntry)
	e.cb = nil
}

// process walks entries from the front, firing and popping every one
// older than deadline (or popping immediately if canceled), and stops
// at the first entry still live. Intended to run off a 1 Hz ticker
// owned by Server.
func (tq *timerQueue) process() {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	now := time.Now()
	for tq.q.Length() > 0 {
		e := tq.q.Peek().(*timerEntry)
		if e.cb != nil {
			if now.Sub(e.t) < deadline {
				break
			}
			cb := e.cb
			tq.mu.Unlock()
			cb()
			tq.mu.Lock()
			// cb may have re-entered add/cancel; re-check queue state
			// before popping to stay consistent with it.
			if tq.q.Length() == 0 {
				break
			}
		}
		tq.q.Remove()
		tq.step++
	}
}
