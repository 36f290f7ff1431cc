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

package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmcweb-go/reactor/router"
)

// TestParamsTagRoundTrips asserts that a request matched against a
// pattern decodes into Params whose own recomputed Tag equals the
// pattern's declared tag.
func TestParamsTagRoundTrips(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.NewRuleDynamic("/x/<int>/<str>/<uint>").Methods(router.MethodGet).
		Handle(func(req *router.Request, resp *router.Response) {})
	require.NoError(t, r.Validate())

	res := r.Resolve("/x/42/hello/9")
	require.True(t, res.Found)

	want := router.MustTagOf("/x/<int>/<str>/<uint>")
	assert.Equal(t, want, res.Params.Tag())

	require.Equal(t, 3, res.Params.Len())
	assert.Equal(t, int64(42), res.Params.At(0))
	assert.Equal(t, "hello", res.Params.At(1))
	assert.Equal(t, uint64(9), res.Params.At(2))

	assert.Equal(t, []int64{42}, res.Params.Ints)
	assert.Equal(t, []string{"hello"}, res.Params.Strs)
	assert.Equal(t, []uint64{9}, res.Params.Uints)
}

func TestParamsFloatCapture(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.NewRuleDynamic("/f/<float>").Methods(router.MethodGet).
		Handle(func(req *router.Request, resp *router.Response) {})
	require.NoError(t, r.Validate())

	res := r.Resolve("/f/3.25")
	require.True(t, res.Found)
	assert.InDelta(t, 3.25, res.Params.At(0).(float64), 0.0001)
}
