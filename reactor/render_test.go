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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	in := `a & b "quoted" 'single' <tag>`
	want := `a &amp; b &quot;quoted&quot; &apos;single&apos; &lt;tag&gt;`
	assert.Equal(t, want, escapeHTML(in))
}

func TestConvertToLinksLinkifiesRedfishPath(t *testing.T) {
	t.Parallel()

	escaped := escapeHTML(`{"@odata.id": "/redfish/v1/Chassis/1"}`)
	out := convertToLinks(escaped)
	assert.Contains(t, out, `<a href="/redfish/v1/Chassis/1">`)
}

func TestConvertToLinksLeavesNonRedfishValuesAlone(t *testing.T) {
	t.Parallel()

	escaped := escapeHTML(`{"name": "not a path"}`)
	out := convertToLinks(escaped)
	assert.NotContains(t, out, "<a href")
}

func TestPrettyPrintJSONWrapsFixedShell(t *testing.T) {
	t.Parallel()

	html, err := prettyPrintJSON(map[string]string{"@odata.id": "/redfish/v1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(html, "<html>"))
	assert.Contains(t, html, "<pre>\n<code class=\"json\">")
	assert.Contains(t, html, "/redfish/v1")
}

func TestCompactJSONIsPlainIndentedJSON(t *testing.T) {
	t.Parallel()

	out, err := compactJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out)
}
