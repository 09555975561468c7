package cli

import (
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	checkStrict bool
	checkPlain  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [input...]",
	Short: "Validate releases documents",
	Long: `Validate one or more releases documents without rendering them.

Structural errors (missing names, duplicate releases, more than one
"unreleased" release, malformed dates, issues without an author) fail
the check. Lint findings such as non-semver release names or commits
without categories are reported as warnings.`,
	Example: `  # Validate the configured inputs
  relnotes check

  # Treat warnings as errors in CI
  relnotes check releases.yaml --strict`,
	GroupID: GroupRender,
	RunE:    runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Fail when lint warnings are found")
	checkCmd.Flags().BoolVar(&checkPlain, "plain", false, "Plain text output (no colors/icons)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	inputs, err := inputsFor(args, cfg)
	if err != nil {
		return err
	}

	releases, err := loadReleases(cmd.Context(), inputs, cfg)
	if err != nil {
		return err
	}

	opts := changelog.FormatOptions{Plain: checkPlain}
	warnings := changelog.Lint(releases)
	for _, warn := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), changelog.FormatWarning(warn, opts))
	}

	if checkStrict && len(warnings) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d warning(s) found (--strict)\n", len(warnings))
		return NewExitError(ExitValidationFailed)
	}

	summary := fmt.Sprintf("%d release(s), %d commit(s) OK", len(releases), changelog.Releases(releases).CommitCount())
	if checkPlain {
		fmt.Fprintln(cmd.OutOrStdout(), summary)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓")+" "+summary)
	}
	return nil
}
