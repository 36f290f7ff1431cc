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

package accesslog_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmcweb-go/reactor/middleware"
	"github.com/bmcweb-go/reactor/middleware/accesslog"
	"github.com/bmcweb-go/reactor/router"
)

func TestAccessLogEmitsOneLineWithRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	mw := accesslog.New(0, logger)
	ctx := middleware.NewContext(1)
	req := &router.Request{Method: "GET", Path: "/redfish/v1"}
	resp := &router.Response{StatusCode: 200, Body: []byte("ok")}

	require.True(t, mw.Before(req, resp, ctx))
	mw.After(req, resp, ctx)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/redfish/v1", line["path"])
	assert.Equal(t, float64(200), line["status"])
	assert.Equal(t, float64(2), line["bytes"])
	assert.NotEmpty(t, line["duration"])
}
