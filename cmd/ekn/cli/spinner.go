// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Spin runs work while showing an animated spinner and message on
// stream. When stream is not a terminal the work runs without any
// animation. The spinner never reads input; interrupts reach the
// caller through ctx.
func Spin(ctx context.Context, stream io.Writer, message string, work func(context.Context) error) error {
	if !IsTerminal(stream) {
		return work(ctx)
	}

	program := tea.NewProgram(newSpinModel(message),
		tea.WithOutput(stream),
		tea.WithInput(nil),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	done := make(chan error, 1)
	go func() {
		err := work(ctx)
		done <- err
		program.Send(spinDoneMsg{})
	}()

	// A display failure is not a work failure: the result below is
	// authoritative either way.
	_, _ = program.Run()
	return <-done
}

type spinDoneMsg struct{}

type spinModel struct {
	spinner spinner.Model
	message string
	done    bool
}

func newSpinModel(message string) spinModel {
	return spinModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		message: message,
	}
}

func (m spinModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.message + "\n"
}
