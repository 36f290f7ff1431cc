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

package recovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bmcweb-go/reactor/middleware/recovery"
	"github.com/bmcweb-go/reactor/router"
)

func callAndRecover(req *router.Request, resp *router.Response) {
	defer recovery.Recover(nil, req, resp)
	panic("boom")
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	req := &router.Request{Path: "/a"}
	resp := &router.Response{}

	assert.NotPanics(t, func() {
		callAndRecover(req, resp)
	})
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "Internal Server Error", string(resp.Body))
}

func TestRecoverIsNoOpWithoutPanic(t *testing.T) {
	req := &router.Request{}
	resp := &router.Response{}
	func() {
		defer recovery.Recover(nil, req, resp)
	}()
	assert.Equal(t, 0, resp.StatusCode)
}
