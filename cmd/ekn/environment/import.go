// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package environment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"filippo.io/age"
	"github.com/spf13/pflag"

	"github.com/dealer426/eknova/cmd/ekn/cli"
	"github.com/dealer426/eknova/lib/archive"
	"github.com/dealer426/eknova/lib/environment"
)

type importParams struct {
	cli.JSONOutput
	InstallPath string `json:"install_path" flag:"install-path" desc:"directory for the environment's virtual disk (default: <install_root>/<name>)"`
	Identity    string `json:"identity"     flag:"identity,i"   desc:"age identity file for encrypted archives"`
	Checksum    string `json:"checksum"     flag:"checksum"     desc:"expected BLAKE3 digest of the archive (hex, optional blake3: prefix)"`
}

// importResult is the --json shape of a successful import.
type importResult struct {
	Name         string `json:"name"`
	Distribution string `json:"distribution"`
	InstallPath  string `json:"install_path"`
	Format       string `json:"format"`
	Digest       string `json:"digest"`
}

func importCommand(deps *Dependencies) *cli.Command {
	var params importParams

	return &cli.Command{
		Name:    "import",
		Summary: "Create an environment from a root filesystem archive",
		Description: `Register a new environment from a root filesystem archive.

Accepted archives: tar, gzip tar, zstd tar (.tar.zst), lz4 tar
(.tar.lz4), and any of these encrypted with age (binary or armored),
which needs --identity. Compressed and encrypted archives are unpacked
to a temporary tar first, since WSL only reads tar and gzip.

The environment's virtual disk goes to <install_root>/<name> unless
--install-path is given. --checksum verifies the archive's BLAKE3
digest before anything is imported.`,
		Usage: "ekn import <name> <archive> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("import", &params)
		},
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Import an Ubuntu root filesystem",
				Command:     "ekn import dev ./ubuntu-24.04-rootfs.tar.gz",
			},
			{
				Description: "Import an encrypted, zstd-compressed snapshot",
				Command:     "ekn import dev ./dev-snapshot.tar.zst.age --identity ~/.config/eknova/key.txt",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return cli.Validation("expected <name> <archive>, got %d argument(s)\n\nUsage: ekn import <name> <archive> [flags]", len(args))
			}
			name, source := args[0], args[1]

			if err := environment.ValidateName(name); err != nil {
				return cli.Validation("%v", err)
			}
			source, err := filepath.Abs(source)
			if err != nil {
				return cli.Internal("resolving archive path: %w", err)
			}
			if _, err := os.Stat(source); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return cli.NotFound("archive %s does not exist", source)
				}
				return cli.Internal("reading archive: %w", err)
			}

			if err := requireWSL(ctx, deps.Registry); err != nil {
				return err
			}
			if deps.Registry.EnvironmentExists(ctx, name) {
				return cli.Conflict("environment %q already exists\n\nDestroy it first with 'ekn destroy %s', or pick another name.", name, name)
			}

			if err := deps.Config.EnsurePaths(); err != nil {
				return cli.Internal("%w", err)
			}

			var identities []age.Identity
			if params.Identity != "" {
				identities, err = archive.LoadIdentities(params.Identity)
				if err != nil {
					return cli.Validation("%v", err)
				}
			}

			var prepared *archive.Prepared
			err = cli.Spin(ctx, deps.IO.Err, "Preparing archive...", func(ctx context.Context) error {
				var prepareErr error
				prepared, prepareErr = archive.Prepare(ctx, source, archive.PrepareOptions{
					Identities:     identities,
					ExpectedDigest: params.Checksum,
					TempDir:        deps.Config.Paths.Temp,
				})
				return prepareErr
			})
			if err != nil {
				return prepareError(err)
			}
			defer func() {
				if err := prepared.Cleanup(); err != nil {
					logger.Warn("removing temporary archive failed", "path", prepared.Path, "error", err)
				}
			}()
			logger.Debug("archive prepared",
				"format", prepared.Format.String(),
				"inner", prepared.Inner.String(),
				"converted", prepared.Converted(),
				"digest", prepared.Digest,
			)

			installPath := params.InstallPath
			if installPath == "" {
				installPath = deps.Config.InstallPath(name)
			}
			if err := os.MkdirAll(installPath, 0o755); err != nil {
				return cli.Internal("creating install directory: %w", err)
			}

			var imported bool
			_ = cli.Spin(ctx, deps.IO.Err, fmt.Sprintf("Importing %s...", name), func(ctx context.Context) error {
				imported = deps.Registry.ImportEnvironment(ctx, name, prepared.Path, installPath)
				return nil
			})
			if !imported {
				return cli.Transient("importing environment %q failed\n\nRun with EKNOVA_LOG_LEVEL=debug for the WSL output.", name)
			}
			logger.Info("environment imported", "environment", name, "install_path", installPath, "digest", prepared.Digest)

			result := importResult{
				Name:         name,
				Distribution: environment.DistributionName(name),
				InstallPath:  installPath,
				Format:       prepared.Format.String(),
				Digest:       "blake3:" + prepared.Digest,
			}
			if done, err := params.EmitJSON(deps.IO.Out, result); done {
				return err
			}
			deps.note("Environment %q imported (%s, %s).", name, result.Format, result.Digest)
			deps.note("Start it with: ekn start %s", name)
			return nil
		},
	}
}

// prepareError categorizes an archive.Prepare failure.
func prepareError(err error) error {
	var noMatch *age.NoIdentityMatchError
	switch {
	case errors.Is(err, archive.ErrDigestMismatch):
		return cli.Validation("%v", err)
	case errors.Is(err, archive.ErrIdentityRequired):
		return cli.Validation("%v\n\nPass the age identity file with --identity.", err)
	case errors.As(err, &noMatch):
		return cli.Validation("%v\n\nThe --identity file does not hold a key this archive was encrypted to.", err)
	case errors.Is(err, archive.ErrUnsupportedFormat):
		return cli.Validation("%v (expected tar, gzip, zstd or lz4, optionally age-encrypted)", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return cli.Transient("preparing archive: %v", err)
	default:
		return cli.Internal("preparing archive: %w", err)
	}
}
