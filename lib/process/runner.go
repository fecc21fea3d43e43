// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync/atomic"
	"time"

	"github.com/dealer426/eknova/lib/clock"
)

const (
	// DefaultTimeout bounds an invocation when the caller passes a
	// non-positive timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultProbeTimeout bounds the where/which lookup done by
	// IsCommandAvailable.
	DefaultProbeTimeout = 5 * time.Second

	// MaxOutputLines is the default number of output lines kept per
	// invocation.
	MaxOutputLines = 10000

	// DrainTimeout is how long the reader may keep going after the
	// process exits. A grandchild that inherited the pipe can hold it
	// open indefinitely.
	DrainTimeout = 2 * time.Second
)

// Executor is the process-running surface the rest of eknova depends
// on. *Runner implements it; tests substitute a scripted fake.
type Executor interface {
	Execute(ctx context.Context, command []string, timeout time.Duration) Result
	ExecuteStreaming(ctx context.Context, command []string, timeout time.Duration, onLine func(string)) Result
	IsCommandAvailable(ctx context.Context, name string) bool
}

// Options configures a Runner. The zero value is usable.
type Options struct {
	// Clock supplies the timeout timer. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives one debug record per invocation. Defaults to a
	// discarding logger.
	Logger *slog.Logger

	// Env holds extra KEY=VALUE entries appended to the inherited
	// environment of every child.
	Env []string

	DefaultTimeout time.Duration
	ProbeTimeout   time.Duration
	MaxOutputLines int
	DrainTimeout   time.Duration
}

// Runner launches external programs. It holds no per-call state, so
// one Runner may be shared by concurrent callers.
type Runner struct {
	clock          clock.Clock
	logger         *slog.Logger
	env            []string
	defaultTimeout time.Duration
	probeTimeout   time.Duration
	maxOutputLines int
	drainTimeout   time.Duration
}

var _ Executor = (*Runner)(nil)

// NewRunner returns a Runner with zero-valued options replaced by the
// package defaults.
func NewRunner(options Options) *Runner {
	runner := &Runner{
		clock:          options.Clock,
		logger:         options.Logger,
		env:            append([]string(nil), options.Env...),
		defaultTimeout: options.DefaultTimeout,
		probeTimeout:   options.ProbeTimeout,
		maxOutputLines: options.MaxOutputLines,
		drainTimeout:   options.DrainTimeout,
	}
	if runner.clock == nil {
		runner.clock = clock.Real()
	}
	if runner.logger == nil {
		runner.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if runner.defaultTimeout <= 0 {
		runner.defaultTimeout = DefaultTimeout
	}
	if runner.probeTimeout <= 0 {
		runner.probeTimeout = DefaultProbeTimeout
	}
	if runner.maxOutputLines <= 0 {
		runner.maxOutputLines = MaxOutputLines
	}
	if runner.drainTimeout <= 0 {
		runner.drainTimeout = DrainTimeout
	}
	return runner
}

// Execute runs command (program followed by arguments) and waits for
// it to finish, time out, or be cancelled through ctx. A non-positive
// timeout selects the runner's default.
func (r *Runner) Execute(ctx context.Context, command []string, timeout time.Duration) Result {
	return r.run(ctx, command, timeout, nil)
}

// ExecuteStreaming is Execute with every captured line also passed to
// onLine as soon as it is read. onLine runs on the reader goroutine and
// must not block for long.
func (r *Runner) ExecuteStreaming(ctx context.Context, command []string, timeout time.Duration, onLine func(string)) Result {
	return r.run(ctx, command, timeout, onLine)
}

func (r *Runner) run(ctx context.Context, command []string, timeout time.Duration, onLine func(string)) Result {
	if len(command) == 0 {
		return failure(-1, "no command specified")
	}
	if timeout <= 0 {
		timeout = r.defaultTimeout
	}

	cmd := exec.Command(command[0], command[1:]...)
	isolateProcessGroup(cmd)
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}

	// One pipe for both streams keeps stdout and stderr lines in the
	// order the child wrote them.
	reader, writer, err := os.Pipe()
	if err != nil {
		return failure(-1, fmt.Sprintf("process execution failed: %v", err))
	}
	cmd.Stdout = writer
	cmd.Stderr = writer

	started := r.clock.Now()
	if err := cmd.Start(); err != nil {
		writer.Close()
		reader.Close()
		r.logger.Debug("process launch failed",
			"command", command,
			"error", err,
		)
		return failure(-1, fmt.Sprintf("process execution failed: %v", err))
	}
	// The child holds its own copy of the write end. Closing ours lets
	// the reader see EOF once every writer in the child tree is gone.
	writer.Close()

	captured := make(chan capture, 1)
	go func() {
		captured <- readLines(reader, r.maxOutputLines, onLine)
	}()

	var timedOut, cancelled atomic.Bool
	timer := r.clock.AfterFunc(timeout, func() {
		timedOut.Store(true)
		killProcessGroup(cmd.Process)
	})
	stopWatchingContext := context.AfterFunc(ctx, func() {
		cancelled.Store(true)
		killProcessGroup(cmd.Process)
	})

	waitErr := cmd.Wait()
	timer.Stop()
	stopWatchingContext()

	var output capture
	drain := time.NewTimer(r.drainTimeout)
	select {
	case output = <-captured:
		drain.Stop()
	case <-drain.C:
		// Closing the read end unblocks the reader; what it has
		// collected so far is still returned.
		reader.Close()
		output = <-captured
	}
	reader.Close()

	result := classify(ctx, waitErr, timedOut.Load(), cancelled.Load(), timeout)
	result.Output = output.lines
	result.Truncated = output.truncated

	r.logger.Debug("process finished",
		"command", command,
		"exit_code", result.ExitCode,
		"success", result.Success,
		"duration", r.clock.Now().Sub(started),
		"lines", len(result.Output),
		"truncated", result.Truncated,
	)
	return result
}

// formatTimeout renders whole-second timeouts as "N seconds" and
// anything finer as a time.Duration string.
func formatTimeout(timeout time.Duration) string {
	if timeout%time.Second == 0 {
		return fmt.Sprintf("%d seconds", int64(timeout/time.Second))
	}
	return timeout.String()
}

// classify turns the outcome of cmd.Wait into a Result. A timeout or
// cancellation takes precedence over the exit status the kill produced,
// but a process that exited cleanly before the kill landed is reported
// as a success.
func classify(ctx context.Context, waitErr error, timedOut, cancelled bool, timeout time.Duration) Result {
	if waitErr == nil {
		return Result{Success: true, ExitCode: 0}
	}
	if timedOut {
		return failure(-1, "process timed out after "+formatTimeout(timeout))
	}
	if cancelled {
		return failure(-1, fmt.Sprintf("process cancelled: %v", context.Cause(ctx)))
	}

	var exitError *exec.ExitError
	if errors.As(waitErr, &exitError) {
		code := exitError.ExitCode()
		if code < 0 {
			// Killed by a signal from outside the runner.
			return failure(-1, fmt.Sprintf("process terminated: %v", exitError))
		}
		return failure(code, fmt.Sprintf("exit code %d", code))
	}
	return failure(-1, fmt.Sprintf("process execution failed: %v", waitErr))
}
