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

package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape for WithConfigFile, supporting both
// TOML and YAML for bind address, port, socket, TLS paths, and the mTLS
// toggle. It has no timeout setting.
type fileConfig struct {
	BindAddr    string `toml:"bind_addr" yaml:"bind_addr"`
	Port        int    `toml:"port" yaml:"port"`
	Socket      string `toml:"socket" yaml:"socket"`
	TLSCertFile string `toml:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile  string `toml:"tls_key_file" yaml:"tls_key_file"`
	RequireMTLS bool   `toml:"require_mtls" yaml:"require_mtls"`
}

// loadConfigFile reads path (TOML if it ends in .toml, YAML otherwise)
// and layers its values onto c, only overriding fields the file
// actually sets.
func loadConfigFile(path string, c *config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("app: reading config file: %w", err)
	}

	var fc fileConfig
	if strings.HasSuffix(path, ".toml") {
		if _, err := toml.Decode(string(raw), &fc); err != nil {
			return fmt.Errorf("app: decoding TOML config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return fmt.Errorf("app: decoding YAML config: %w", err)
		}
	}

	if fc.BindAddr != "" {
		c.bindAddr = fc.BindAddr
	}
	if fc.Port != 0 {
		c.port = fc.Port
	}
	if fc.Socket != "" {
		c.socket = fc.Socket
	}
	if fc.TLSCertFile != "" {
		c.tlsCertFile = fc.TLSCertFile
	}
	if fc.TLSKeyFile != "" {
		c.tlsKeyFile = fc.TLSKeyFile
	}
	if fc.RequireMTLS {
		c.requireMTLS = true
	}
	return nil
}
