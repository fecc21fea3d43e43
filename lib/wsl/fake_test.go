// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package wsl

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dealer426/eknova/lib/process"
)

// fakeExecutor answers commands from a script keyed by the full
// command line. Unscripted commands fail with exit code 1.
type fakeExecutor struct {
	mu        sync.Mutex
	available map[string]bool
	script    map[string]process.Result
	calls     []string
	timeouts  []time.Duration
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		available: map[string]bool{"wsl": true},
		script:    make(map[string]process.Result),
	}
}

func (f *fakeExecutor) on(commandLine string, result process.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script[commandLine] = result
}

func (f *fakeExecutor) succeed(commandLine string, output ...string) {
	f.on(commandLine, process.Result{Success: true, Output: output})
}

func (f *fakeExecutor) Execute(_ context.Context, command []string, timeout time.Duration) process.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	commandLine := strings.Join(command, " ")
	f.calls = append(f.calls, commandLine)
	f.timeouts = append(f.timeouts, timeout)
	if result, ok := f.script[commandLine]; ok {
		return result
	}
	return process.Result{ExitCode: 1, Error: "exit code 1"}
}

func (f *fakeExecutor) ExecuteStreaming(ctx context.Context, command []string, timeout time.Duration, onLine func(string)) process.Result {
	result := f.Execute(ctx, command, timeout)
	for _, line := range result.Output {
		onLine(line)
	}
	return result
}

func (f *fakeExecutor) IsCommandAvailable(_ context.Context, name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "lookup "+name)
	return f.available[name]
}

func (f *fakeExecutor) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

var _ process.Executor = (*fakeExecutor)(nil)
