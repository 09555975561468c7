package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/ariel-frischer/relnotes/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect relnotes configuration",
	Long: `Inspect relnotes configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELNOTES_*)
  2. Project config (.relnotes/config.yml)
  3. User config (~/.config/relnotes/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  relnotes config show

  # List the known keys and their environment variables
  relnotes config keys

  # Convert a legacy .relnotes/config.json to YAML
  relnotes config migrate`,
	GroupID: GroupSetup,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, err := cfg.YAML()
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the known configuration keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTYPE\tENV\tDESCRIPTION")
		for _, schema := range config.SortedKeys() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", schema.Path, schema.Type, config.EnvName(schema.Path), schema.Description)
		}
		return tw.Flush()
	},
}

var (
	migrateDryRun       bool
	migrateRemoveLegacy bool
)

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert the legacy JSON project config to YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := config.MigrateProjectConfig(migrateDryRun)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)

		if result.Success && migrateRemoveLegacy {
			if err := config.RemoveLegacyConfig(result.SourcePath, migrateDryRun); err != nil {
				return err
			}
			if !migrateDryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s.bak\n", result.SourcePath, result.SourcePath)
			}
		}
		return nil
	},
}

func init() {
	configMigrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Report the planned migration without writing")
	configMigrateCmd.Flags().BoolVar(&migrateRemoveLegacy, "remove-legacy", false, "Rename the JSON config to .bak after migrating")

	configCmd.AddCommand(configShowCmd, configKeysCmd, configMigrateCmd)
	rootCmd.AddCommand(configCmd)
}
