package cli

import (
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/spf13/cobra"
)

var (
	listPlain bool
	listWidth int
)

var listCmd = &cobra.Command{
	Use:     "list [input...]",
	Aliases: []string{"ls"},
	Short:   "Summarize releases in the terminal",
	Long: `Show each release with its per-category commit counts and issue titles.

Categories and the unreleased heading follow the configuration, so the
summary matches what 'relnotes render' would produce.`,
	Example: `  # Summarize the configured inputs
  relnotes list

  # Plain output for scripts
  relnotes list releases.yaml --plain`,
	GroupID: GroupRender,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "Plain text output (no colors/icons)")
	listCmd.Flags().IntVar(&listWidth, "width", 0, "Maximum line width (default: terminal width)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
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

	if len(releases) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No releases found.")
		return nil
	}

	renderer := changelog.NewRenderer(cfg.RendererOptions())
	opts := changelog.FormatOptions{Plain: listPlain, MaxWidth: listWidth}
	if err := changelog.FormatSummary(releases, renderer, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting releases: %w", err)
	}
	return nil
}
