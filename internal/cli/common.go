package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/source"
	"github.com/spf13/cobra"
)

// loadConfig loads the effective configuration for cmd.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigInvalid(err)
	}
	return cfg, nil
}

// inputsFor returns the command line inputs, falling back to the configured ones.
func inputsFor(args []string, cfg *config.Configuration) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(cfg.Input) > 0 {
		return cfg.Input, nil
	}
	return nil, clierrors.NewArgumentErrorWithUsage(
		"no releases input given",
		"relnotes render <releases.yaml|url>...",
		"Pass one or more releases files or URLs",
		"Or set 'input' in .relnotes/config.yml",
	)
}

// loadReleases loads and combines every input, translating failures into
// CLI errors with remediation.
func loadReleases(ctx context.Context, inputs []string, cfg *config.Configuration) ([]changelog.Release, error) {
	releases, err := source.LoadAll(ctx, inputs, source.Options{
		Timeout: cfg.RemoteTimeout,
		Logger:  slog.Default().With("component", "source"),
	})
	if err != nil {
		return nil, classifyLoadError(err)
	}
	return releases, nil
}

func classifyLoadError(err error) error {
	var pathErr *fs.PathError
	var fetchErr *source.FetchError
	switch {
	case errors.As(err, &pathErr) && errors.Is(err, fs.ErrNotExist):
		return clierrors.InputNotFound(pathErr.Path)
	case changelog.IsValidationError(err), errors.Is(err, changelog.ErrMalformed):
		return clierrors.InvalidInput(err)
	case errors.As(err, &fetchErr):
		return clierrors.RemoteFetchFailed(err)
	default:
		return err
	}
}
