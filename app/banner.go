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
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"
	"golang.org/x/term"
)

// printBanner prints the startup banner to stdout: ASCII art of the
// service name with an environment-tinted gradient, width-limited to
// the current terminal, colors stripped outright in production,
// composing lipgloss + go-figure + colorprofile + x/term.
func printBanner(c config) {
	w := colorprofile.NewWriter(os.Stdout, os.Environ())
	if c.environment == "production" {
		w.Profile = colorprofile.NoTTY
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	art := figure.NewFigure(c.serviceName, "", false).Slicify()

	gradient := []string{"12", "14", "10", "11"}
	if c.environment == "production" {
		gradient = []string{"10", "11"}
	}

	var b strings.Builder
	for _, line := range art {
		if strings.TrimSpace(line) == "" {
			b.WriteString("\n")
			continue
		}
		for i, ch := range line {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradient[i%len(gradient)])).Bold(true)
			b.WriteString(style.Render(string(ch)))
		}
		b.WriteString("\n")
	}

	meta := lipgloss.NewStyle().Faint(true).Width(width).Render(
		"version " + c.serviceVersion + " · env " + c.environment)

	_, _ = w.Write([]byte(b.String()))
	_, _ = w.Write([]byte(meta + "\n\n"))
}
