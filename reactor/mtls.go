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
	"crypto/x509"
	"fmt"

	"github.com/bmcweb-go/reactor/router"
)

// verifyClientCertificate ports http_connection.h's verify_callback:
// accept only the final (depth-0) certificate of the chain, require
// KeyUsage to include both digital signature and key agreement,
// require ExtendedKeyUsage to include clientAuth, then extract the
// leaf's Common Name as the session username. peerCerts is the chain
// as crypto/tls hands it to a VerifyPeerCertificate callback, leaf
// first — so peerCerts[0] is the depth-0 certificate the original
// waits for via X509_STORE_CTX_get_error_depth.
func verifyClientCertificate(peerCerts []*x509.Certificate) (*router.Session, error) {
	if len(peerCerts) == 0 {
		return nil, fmt.Errorf("reactor: no client certificate presented")
	}
	leaf := peerCerts[0]

	if leaf.KeyUsage&x509.KeyUsageDigitalSignature == 0 || leaf.KeyUsage&x509.KeyUsageKeyAgreement == 0 {
		return nil, fmt.Errorf("reactor: certificate KeyUsage does not contain digitalSignature and keyAgreement")
	}

	hasClientAuth := false
	for _, eku := range leaf.ExtKeyUsage {
		if eku == x509.ExtKeyUsageClientAuth {
			hasClientAuth = true
			break
		}
	}
	if !hasClientAuth {
		return nil, fmt.Errorf("reactor: certificate ExtendedKeyUsage does not contain clientAuth")
	}

	if leaf.Subject.CommonName == "" {
		return nil, fmt.Errorf("reactor: certificate has no CommonName")
	}

	return &router.Session{UserName: leaf.Subject.CommonName}, nil
}
