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

package bodylimit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/middleware/bodylimit"
	"github.com/bmcweb-go/reactor/router"
)

func TestBodyLimitRejectsOversizedBody(t *testing.T) {
	mw := bodylimit.New(4)
	ctx := middleware.NewContext(1)
	req := &router.Request{Body: []byte("too long")}
	resp := &router.Response{}

	cont := mw.Before(req, resp, ctx)
	assert.False(t, cont)
	assert.Equal(t, 413, resp.StatusCode)
}

func TestBodyLimitAllowsBodyWithinLimit(t *testing.T) {
	mw := bodylimit.New(8)
	ctx := middleware.NewContext(1)
	req := &router.Request{Body: []byte("fits")}
	resp := &router.Response{}

	cont := mw.Before(req, resp, ctx)
	assert.True(t, cont)
	assert.Equal(t, 0, resp.StatusCode)
}

func TestBodyLimitDefaultsWhenMaxNonPositive(t *testing.T) {
	mw := bodylimit.New(0)
	ctx := middleware.NewContext(1)
	req := &router.Request{Body: make([]byte, bodylimit.DefaultMax)}
	resp := &router.Response{}

	cont := mw.Before(req, resp, ctx)
	assert.True(t, cont)
}
