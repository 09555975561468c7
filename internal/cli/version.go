package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ariel-frischer/relnotes/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display version, commit, build date, and Go version information for relnotes",
	Example: `  # Show version info
  relnotes version

  # Plain output (for scripts)
  relnotes version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout())
			return
		}
		printPrettyVersion(cmd.OutOrStdout())
	},
}

func init() {
	versionCmd.GroupID = GroupSetup
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "relnotes %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func printPrettyVersion(w io.Writer) {
	label := color.New(color.FgCyan).SprintFunc()
	name := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", name("relnotes"), build.Version)
	if build.IsDevBuild() {
		fmt.Fprintln(w, color.YellowString("  development build"))
	}
	fmt.Fprintf(w, "  %s %s\n", label("commit:  "), build.Commit)
	fmt.Fprintf(w, "  %s %s\n", label("built:   "), build.BuildDate)
	fmt.Fprintf(w, "  %s %s\n", label("go:      "), runtime.Version())
	fmt.Fprintf(w, "  %s %s/%s\n", label("platform:"), runtime.GOOS, runtime.GOARCH)
}
