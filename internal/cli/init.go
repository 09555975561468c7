package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [releases-file]",
	Short: "Create an example releases file and project config",
	Long: `Create an example releases document (default: releases.yaml) and a
commented project config at .relnotes/config.yml.

Existing files are left untouched unless --force is given.`,
	Example: `  # Create releases.yaml and .relnotes/config.yml
  relnotes init

  # Use another file name and overwrite existing files
  relnotes init notes.yaml --force`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: GroupSetup,
	RunE:    runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	releasesPath := "releases.yaml"
	if len(args) == 1 {
		releasesPath = args[0]
	}
	projectConfig := configPath
	if projectConfig == "" {
		projectConfig = config.ProjectConfigPath()
	}

	files := []struct {
		path    string
		content []byte
	}{
		{path: releasesPath, content: changelog.Example()},
		{path: projectConfig, content: []byte(config.GetDefaultConfigTemplate())},
	}

	if !initForce {
		for _, f := range files {
			if _, err := os.Stat(f.path); err == nil {
				return clierrors.FileExists(f.path)
			}
		}
	}

	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return clierrors.FileNotWritable(f.path, err)
		}
		if err := os.WriteFile(f.path, f.content, 0o644); err != nil {
			return clierrors.FileNotWritable(f.path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", f.path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nNext: relnotes render %s\n", releasesPath)
	return nil
}
