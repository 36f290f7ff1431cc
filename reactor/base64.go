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

import "encoding/base64"

// base64Encode is utility::base64encode's standard-alphabet table,
// wired to the stdlib codec rather than the original's hand-rolled
// loop (justified in DESIGN.md: encoding/base64 is a correct drop-in
// and the original only hand-rolls it for lack of a C++ stdlib
// equivalent).
func base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// base64EncodeURLSafe is utility::base64encodeUrlsafe.
func base64EncodeURLSafe(data []byte) string {
	return base64.URLEncoding.EncodeToString(data)
}

// base64Decode is utility::base64Decode, reporting false on malformed
// input exactly as the original does rather than returning an error.
func base64Decode(input string) ([]byte, bool) {
	out, err := base64.StdEncoding.DecodeString(input)
	if err != nil {
		return nil, false
	}
	return out, true
}
