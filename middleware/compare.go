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

package middleware

import "crypto/subtle"

// ConstantTimeCompare reports whether a and b are equal without
// leaking their common-prefix length through timing, the Go stdlib
// equivalent of bmcweb's utility::constantTimeStringCompare (which
// hand-rolls the same guarantee on top of CRYPTO_memcmp). Intended for
// an auth middleware comparing a presented token against a stored one.
func ConstantTimeCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
