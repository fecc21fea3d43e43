// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/dealer426/eknova/cmd/ekn/cli"
	"github.com/dealer426/eknova/lib/blueprint"
	"github.com/dealer426/eknova/lib/config"
	"github.com/dealer426/eknova/lib/environment"
	"github.com/dealer426/eknova/lib/process"
	"github.com/dealer426/eknova/lib/wsl"
)

// fakeRegistry is an in-memory WSL. Lifecycle calls mutate the
// installed list the way WSL would and are recorded in calls.
type fakeRegistry struct {
	mu sync.Mutex

	unavailable  bool
	info         wsl.Info
	installed    []environment.Environment
	failing      map[string]bool // "start dev", "remove dev", ...
	execResult   process.Result
	calls        []string
	imports      []fakeImport
	execCommands []string
}

type fakeImport struct {
	name, archivePath, installPath string
	archiveContent                 []byte
}

func newFakeRegistry(installed ...environment.Environment) *fakeRegistry {
	return &fakeRegistry{installed: installed, failing: map[string]bool{}}
}

func managed(name string, status environment.Status) environment.Environment {
	return environment.Environment{
		Name:             name,
		DistributionName: environment.DistributionName(name),
		Status:           status,
		Version:          "2",
	}
}

func (f *fakeRegistry) record(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return !f.failing[call]
}

func (f *fakeRegistry) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Contains(f.calls, call)
}

func (f *fakeRegistry) setStatus(name string, status environment.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.installed {
		if f.installed[i].Name == name && f.installed[i].Managed() {
			f.installed[i].Status = status
		}
	}
}

func (f *fakeRegistry) IsAvailable(context.Context) bool { return !f.unavailable }

func (f *fakeRegistry) Info(context.Context) wsl.Info { return f.info }

func (f *fakeRegistry) ListDistributions(context.Context) []environment.Environment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.installed)
}

func (f *fakeRegistry) ListEnvironments(ctx context.Context) []environment.Environment {
	var result []environment.Environment
	for _, env := range f.ListDistributions(ctx) {
		if env.Managed() {
			result = append(result, env)
		}
	}
	return result
}

func (f *fakeRegistry) FindEnvironment(ctx context.Context, name string) (environment.Environment, bool) {
	for _, env := range f.ListEnvironments(ctx) {
		if env.Name == name {
			return env, true
		}
	}
	return environment.Environment{}, false
}

func (f *fakeRegistry) EnvironmentExists(ctx context.Context, name string) bool {
	_, found := f.FindEnvironment(ctx, name)
	return found
}

func (f *fakeRegistry) StartEnvironment(_ context.Context, name string) bool {
	if !f.record("start " + name) {
		return false
	}
	f.setStatus(name, environment.Running)
	return true
}

func (f *fakeRegistry) StopEnvironment(_ context.Context, name string) bool {
	if !f.record("stop " + name) {
		return false
	}
	f.setStatus(name, environment.Stopped)
	return true
}

func (f *fakeRegistry) RemoveEnvironment(_ context.Context, name string) bool {
	if !f.record("remove " + name) {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.installed = slices.DeleteFunc(f.installed, func(env environment.Environment) bool {
		return env.Name == name && env.Managed()
	})
	return true
}

func (f *fakeRegistry) ImportEnvironment(_ context.Context, name, sourceArchivePath, installPath string) bool {
	if !f.record("import " + name) {
		return false
	}
	content, _ := os.ReadFile(sourceArchivePath)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imports = append(f.imports, fakeImport{name, sourceArchivePath, installPath, content})
	f.installed = append(f.installed, managed(name, environment.Stopped))
	return true
}

func (f *fakeRegistry) ExecStreaming(_ context.Context, name, command string, onLine func(string)) process.Result {
	f.record("exec " + name)
	f.mu.Lock()
	f.execCommands = append(f.execCommands, command)
	result := f.execResult
	f.mu.Unlock()
	for _, line := range result.Output {
		onLine(line)
	}
	return result
}

// harness runs commands against a fake registry with captured output.
type harness struct {
	registry *fakeRegistry
	config   *config.Config
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	deps     *Dependencies
}

func newHarness(t *testing.T, installed ...environment.Environment) *harness {
	t.Helper()
	configuration := config.Default()
	configuration.Paths.InstallRoot = t.TempDir()
	configuration.Paths.Temp = t.TempDir()

	h := &harness{
		registry: newFakeRegistry(installed...),
		config:   configuration,
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	}
	h.deps = &Dependencies{
		Registry: h.registry,
		Config:   configuration,
		Resolver: blueprint.Unimplemented{},
		IO:       cli.IO{In: strings.NewReader(""), Out: h.stdout, Err: h.stderr},
	}
	return h
}

func (h *harness) run(args ...string) error {
	root := &cli.Command{Name: "ekn", Subcommands: Commands(h.deps)}
	return root.Execute(context.Background(), args, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func requireCategory(t *testing.T, err error, want cli.ErrorCategory) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %s error, got nil", want)
	}
	if got := cli.CategoryOf(err); got != want {
		t.Fatalf("error category = %s, want %s (error: %v)", got, want, err)
	}
}
