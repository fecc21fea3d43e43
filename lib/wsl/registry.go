// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package wsl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dealer426/eknova/lib/environment"
	"github.com/dealer426/eknova/lib/process"
)

const (
	// DefaultBinary is the WSL command-line tool.
	DefaultBinary = "wsl"

	// DefaultImportTimeout bounds "wsl --import". Root filesystem
	// archives run to gigabytes.
	DefaultImportTimeout = 10 * time.Minute

	// DefaultExecTimeout bounds commands run inside an environment.
	DefaultExecTimeout = time.Hour
)

// RegistryOptions configures a Registry. The zero value is usable.
type RegistryOptions struct {
	// Binary is the WSL executable. Defaults to DefaultBinary.
	Binary string

	// Timeout bounds every invocation except imports. A non-positive
	// value leaves the choice to the executor's default.
	Timeout time.Duration

	// ImportTimeout bounds "wsl --import". Defaults to
	// DefaultImportTimeout.
	ImportTimeout time.Duration

	// ExecTimeout bounds Exec and ExecStreaming. Defaults to
	// DefaultExecTimeout.
	ExecTimeout time.Duration

	// Logger receives failure diagnostics at warn level. Defaults to a
	// discarding logger.
	Logger *slog.Logger
}

// Registry is the inventory of eknova environments backed by WSL.
type Registry struct {
	executor      process.Executor
	binary        string
	timeout       time.Duration
	importTimeout time.Duration
	execTimeout   time.Duration
	logger        *slog.Logger
}

// NewRegistry returns a Registry that runs WSL through executor.
// Panics if executor is nil.
func NewRegistry(executor process.Executor, options RegistryOptions) *Registry {
	if executor == nil {
		panic("wsl.NewRegistry: executor is nil")
	}
	registry := &Registry{
		executor:      executor,
		binary:        options.Binary,
		timeout:       options.Timeout,
		importTimeout: options.ImportTimeout,
		execTimeout:   options.ExecTimeout,
		logger:        options.Logger,
	}
	if registry.binary == "" {
		registry.binary = DefaultBinary
	}
	if registry.importTimeout <= 0 {
		registry.importTimeout = DefaultImportTimeout
	}
	if registry.execTimeout <= 0 {
		registry.execTimeout = DefaultExecTimeout
	}
	if registry.logger == nil {
		registry.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return registry
}

// run invokes the WSL binary with args under the registry's timeout.
func (r *Registry) run(ctx context.Context, timeout time.Duration, args ...string) process.Result {
	command := append([]string{r.binary}, args...)
	return r.executor.Execute(ctx, command, timeout)
}

// runChecked is run plus a warn-level log record when the invocation
// fails. operation names the attempted action in the log record.
func (r *Registry) runChecked(ctx context.Context, operation, distribution string, timeout time.Duration, args ...string) bool {
	result := r.run(ctx, timeout, args...)
	if !result.Success {
		r.logger.Warn("wsl operation failed",
			"operation", operation,
			"distribution", distribution,
			"exit_code", result.ExitCode,
			"error", result.Error,
			"detail", result.LastLine(),
		)
	}
	return result.Success
}

// IsAvailable reports whether the WSL binary can be found on PATH.
func (r *Registry) IsAvailable(ctx context.Context) bool {
	return r.executor.IsCommandAvailable(ctx, r.binary)
}

// Info probes the local WSL installation. It never fails: problems are
// folded into Available and Version.
//
// The version comes from the most precise probe that answers: "wsl
// --version", then "wsl --status", then a bare quiet listing as proof
// that WSL works at all.
func (r *Registry) Info(ctx context.Context) Info {
	if !r.IsAvailable(ctx) {
		return Info{Available: false, Version: VersionNotAvailable}
	}

	info, ok := r.versionInfo(ctx)
	if !ok {
		return Info{Available: false, Version: VersionNotFunctional}
	}
	info.Available = true
	info.DistributionCount = r.distributionCount(ctx)
	return info
}

func (r *Registry) versionInfo(ctx context.Context) (Info, bool) {
	if result := r.run(ctx, r.timeout, "--version"); result.Success {
		if info, found := parseVersionOutput(result.Output); found {
			return info, true
		}
	}

	if result := r.run(ctx, r.timeout, "--status"); result.Success {
		if version, found := parseStatusVersion(result.Output); found {
			return Info{Version: version}, true
		}
	}

	if result := r.run(ctx, r.timeout, "--list", "--quiet"); result.Success {
		return Info{Version: VersionUnknown}, true
	}
	return Info{}, false
}

// distributionCount is best-effort: any failure counts as zero.
func (r *Registry) distributionCount(ctx context.Context) int {
	result := r.run(ctx, r.timeout, "--list", "--quiet")
	if !result.Success {
		return 0
	}
	return countDistributions(result.Output)
}

// ListDistributions returns every installed distribution, managed by
// eknova or not, in WSL's listing order. A failed listing yields an
// empty slice.
func (r *Registry) ListDistributions(ctx context.Context) []environment.Environment {
	result := r.run(ctx, r.timeout, "--list", "--verbose")
	if !result.Success {
		r.logger.Warn("listing wsl distributions failed",
			"exit_code", result.ExitCode,
			"error", result.Error,
			"detail", result.LastLine(),
		)
		return []environment.Environment{}
	}
	return ParseListing(result.Output)
}

// ListEnvironments returns the eknova-managed distributions in WSL's
// listing order. A failed listing yields an empty slice.
func (r *Registry) ListEnvironments(ctx context.Context) []environment.Environment {
	all := r.ListDistributions(ctx)
	managed := make([]environment.Environment, 0, len(all))
	for _, candidate := range all {
		if strings.HasPrefix(candidate.DistributionName, environment.Prefix) {
			managed = append(managed, candidate)
		}
	}
	return managed
}

// FindEnvironment returns the managed environment called name. The
// first exact match wins.
func (r *Registry) FindEnvironment(ctx context.Context, name string) (environment.Environment, bool) {
	for _, candidate := range r.ListEnvironments(ctx) {
		if candidate.Name == name {
			return candidate, true
		}
	}
	return environment.Environment{}, false
}

// EnvironmentExists reports whether a managed environment called name
// is installed.
func (r *Registry) EnvironmentExists(ctx context.Context, name string) bool {
	_, found := r.FindEnvironment(ctx, name)
	return found
}

// StartEnvironment boots the environment by running a trivial command
// inside it. WSL starts a distribution on first use.
func (r *Registry) StartEnvironment(ctx context.Context, name string) bool {
	distribution := environment.DistributionName(name)
	return r.runChecked(ctx, "start", distribution, r.timeout, "-d", distribution, "echo", "started")
}

// StopEnvironment terminates the environment's distribution.
func (r *Registry) StopEnvironment(ctx context.Context, name string) bool {
	distribution := environment.DistributionName(name)
	return r.runChecked(ctx, "stop", distribution, r.timeout, "--terminate", distribution)
}

// RemoveEnvironment unregisters the distribution, deleting its root
// filesystem. This cannot be undone.
func (r *Registry) RemoveEnvironment(ctx context.Context, name string) bool {
	distribution := environment.DistributionName(name)
	return r.runChecked(ctx, "remove", distribution, r.timeout, "--unregister", distribution)
}

// ImportEnvironment registers a new distribution for name from a root
// filesystem archive, storing its virtual disk under installPath.
func (r *Registry) ImportEnvironment(ctx context.Context, name, sourceArchivePath, installPath string) bool {
	distribution := environment.DistributionName(name)
	return r.runChecked(ctx, "import", distribution, r.importTimeout,
		"--import", distribution, installPath, sourceArchivePath)
}

// Exec runs a shell command inside the environment and returns the raw
// result, so the caller sees the command's own exit code and output.
func (r *Registry) Exec(ctx context.Context, name, command string) process.Result {
	distribution := environment.DistributionName(name)
	return r.run(ctx, r.execTimeout, "-d", distribution, "sh", "-c", command)
}

// ExecStreaming is Exec with each output line passed to onLine as it is
// produced.
func (r *Registry) ExecStreaming(ctx context.Context, name, command string, onLine func(string)) process.Result {
	distribution := environment.DistributionName(name)
	return r.executor.ExecuteStreaming(ctx,
		[]string{r.binary, "-d", distribution, "sh", "-c", command}, r.execTimeout, onLine)
}
