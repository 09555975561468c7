// Package cli implements the relnotes command line.
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ariel-frischer/relnotes/internal/build"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupRender = "render"
	GroupSetup  = "setup"
)

var (
	configPath  string
	verboseFlag bool
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "relnotes",
	Short: "Render release notes from structured release data",
	Long: `relnotes turns a releases document (YAML or JSON) into a Markdown changelog.

Each release becomes a "## name - date" section with one "#### Category"
subsection per configured category. Issue titles that start with a closing
reference ("fixes #12") link to the issue tracker, and security test targets
listed in issue bodies are collected into an appendix per release.

Configuration is loaded with the following priority (highest to lowest):
  1. Command line flags
  2. Environment variables (RELNOTES_*)
  3. Project config (.relnotes/config.yml)
  4. User config (~/.config/relnotes/config.yml)
  5. Built-in defaults`,
	Example: `  # Create an example releases file and config
  relnotes init

  # Render CHANGELOG.md from releases.yaml
  relnotes render releases.yaml -o CHANGELOG.md

  # Validate the releases file
  relnotes check releases.yaml`,
	Version:           build.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRender, Title: "Rendering:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup:"},
	)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Project config file (default: .relnotes/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// setupLogging installs the process logger for the chosen verbosity.
func setupLogging(cmd *cobra.Command, _ []string) error {
	if noColorFlag {
		color.NoColor = true
	}
	logger := newLogger(cmd.ErrOrStderr(), verboseFlag)
	slog.SetDefault(logger)
	git.SetLogger(logger.With("component", "git"))
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Silent {
		return exitErr.Code
	}

	clierrors.Fprint(cmd.ErrOrStderr(), err)
	return exitCodeFor(err)
}
