// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dealer426/eknova/lib/environment"
)

// Styles renders table headers and environment status labels for one
// output stream. Color is used only when the stream is a terminal and
// NO_COLOR is unset; otherwise every style renders plain text.
type Styles struct {
	renderer *lipgloss.Renderer
	header   lipgloss.Style
	dim      lipgloss.Style
	status   map[environment.Status]lipgloss.Style
}

// NewStyles creates Styles bound to w.
func NewStyles(w io.Writer) *Styles {
	return newStyles(w, colorProfile(w))
}

func colorProfile(w io.Writer) termenv.Profile {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return termenv.Ascii
	}
	file, ok := w.(*os.File)
	if !ok || !IsTerminal(file) {
		return termenv.Ascii
	}
	return termenv.NewOutput(file).EnvColorProfile()
}

func newStyles(w io.Writer, profile termenv.Profile) *Styles {
	// NewRenderer's profile option is only a hint; SetColorProfile pins
	// it so a piped stream never receives escape sequences.
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	status := map[environment.Status]lipgloss.Style{
		environment.Running:    renderer.NewStyle().Foreground(lipgloss.Color("2")),
		environment.Stopped:    renderer.NewStyle().Foreground(lipgloss.Color("3")),
		environment.Installing: renderer.NewStyle().Foreground(lipgloss.Color("6")),
		environment.Terminated: renderer.NewStyle().Foreground(lipgloss.Color("1")),
		environment.Unknown:    renderer.NewStyle().Foreground(lipgloss.Color("8")),
	}

	return &Styles{
		renderer: renderer,
		header:   renderer.NewStyle().Bold(true),
		dim:      renderer.NewStyle().Faint(true),
		status:   status,
	}
}

// Header renders a table header cell.
func (s *Styles) Header(text string) string { return s.header.Render(text) }

// Dim renders secondary text such as hints and placeholders.
func (s *Styles) Dim(text string) string { return s.dim.Render(text) }

// Status renders the display label of status in its color.
func (s *Styles) Status(status environment.Status) string {
	style, ok := s.status[status]
	if !ok {
		return status.Label()
	}
	return style.Render(status.Label())
}
