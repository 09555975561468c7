package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/source"
	"github.com/ariel-frischer/relnotes/internal/watch"
	"github.com/spf13/cobra"
)

var (
	renderOutput         string
	renderCategories     []string
	renderBaseIssueURL   string
	renderUnreleasedName string
	renderReleases       []string
	renderRemote         string
	renderWatch          bool
)

var renderCmd = &cobra.Command{
	Use:   "render [input...]",
	Short: "Render the changelog as Markdown",
	Long: `Render one or more releases documents as a Markdown changelog.

Inputs are local YAML/JSON files or http(s) URLs. They are read in parallel
and concatenated in argument order; release names must stay unique across
inputs. Without arguments, the configured 'input' list is used.

When no issue base URL is configured, it is derived from the git remote
(e.g. git@github.com:owner/repo.git gives https://github.com/owner/repo/issues/).`,
	Example: `  # Print the changelog for releases.yaml
  relnotes render releases.yaml

  # Write CHANGELOG.md and keep it up to date while editing
  relnotes render releases.yaml -o CHANGELOG.md --watch

  # Only the Added and Fixed sections of two releases
  relnotes render --category Added --category Fixed --release 1.2.0 --release unreleased

  # Combine a local file with a remote one
  relnotes render next.yaml https://example.com/releases.yaml`,
	GroupID: GroupRender,
	RunE:    runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOutput, "output", "o", "", "Output file path (default: stdout)")
	f.StringSliceVar(&renderCategories, "category", nil, "Category to render, in order (repeatable)")
	f.StringVar(&renderBaseIssueURL, "base-issue-url", "", "Prefix for issue links (default: derived from git remote)")
	f.StringVar(&renderUnreleasedName, "unreleased-name", "", "Heading for the \"unreleased\" release")
	f.StringSliceVar(&renderReleases, "release", nil, "Only render the named release (repeatable)")
	f.StringVar(&renderRemote, "remote", git.DefaultRemote, "Git remote used to derive the issue base URL")
	f.BoolVarP(&renderWatch, "watch", "w", false, "Re-render when local inputs change")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyRenderFlags(cmd, cfg)

	inputs, err := inputsFor(args, cfg)
	if err != nil {
		return err
	}

	if cfg.BaseIssueURL == "" {
		cfg.BaseIssueURL = inferBaseIssueURL(renderRemote)
	}

	renderer := changelog.NewRenderer(cfg.RendererOptions())
	render := func(ctx context.Context) error {
		return renderOnce(ctx, cmd, renderer, inputs, cfg)
	}

	if !renderWatch {
		return render(cmd.Context())
	}
	return watchAndRender(cmd, inputs, cfg, render)
}

// applyRenderFlags overrides configuration with explicitly set flags.
func applyRenderFlags(cmd *cobra.Command, cfg *config.Configuration) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = renderOutput
	}
	if flags.Changed("category") {
		cfg.Categories = renderCategories
	}
	if flags.Changed("base-issue-url") {
		cfg.BaseIssueURL = renderBaseIssueURL
	}
	if flags.Changed("unreleased-name") {
		cfg.UnreleasedName = renderUnreleasedName
	}
}

// inferBaseIssueURL derives the issue base URL from a git remote.
// Failures are logged and yield an empty URL.
func inferBaseIssueURL(remote string) string {
	base, err := git.IssueBaseURL("", remote)
	if err != nil {
		slog.Debug("no issue base URL from git", "remote", remote, "error", err)
		return ""
	}
	slog.Debug("derived issue base URL", "remote", remote, "url", base)
	return base
}

func renderOnce(ctx context.Context, cmd *cobra.Command, renderer *changelog.Renderer, inputs []string, cfg *config.Configuration) error {
	releases, err := loadReleases(ctx, inputs, cfg)
	if err != nil {
		return err
	}

	releases, err = selectReleases(releases, renderReleases)
	if err != nil {
		return err
	}

	return writeDocument(cmd.OutOrStdout(), cfg.Output, renderer.RenderDocument(releases))
}

// selectReleases keeps the named releases in document order.
// An empty name list keeps every release.
func selectReleases(releases []changelog.Release, names []string) ([]changelog.Release, error) {
	if len(names) == 0 {
		return releases, nil
	}

	all := changelog.Releases(releases)
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		rel, err := all.GetRelease(name)
		if err != nil {
			return nil, clierrors.ReleaseNotFound(name, all.ListNames())
		}
		wanted[rel.Name] = true
	}

	var selected []changelog.Release
	for _, rel := range releases {
		if wanted[rel.Name] {
			selected = append(selected, rel)
		}
	}
	return selected, nil
}

// writeDocument writes doc followed by a newline to path, or to w when path is empty.
func writeDocument(w io.Writer, path, doc string) error {
	if !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}

	if path == "" {
		_, err := io.WriteString(w, doc)
		return err
	}

	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	slog.Info("changelog written", "path", path)
	return nil
}

// watchAndRender renders once, then again whenever a local input changes,
// until interrupted.
func watchAndRender(cmd *cobra.Command, inputs []string, cfg *config.Configuration, render func(context.Context) error) error {
	var local []string
	for _, input := range inputs {
		if !source.IsRemote(input) {
			local = append(local, input)
		}
	}
	if len(local) == 0 {
		return clierrors.InvalidFlagCombination("--watch", "--watch needs at least one local input file")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	w, err := watch.New(local, watch.Options{Logger: slog.Default().With("component", "watch")})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	if err := render(ctx); err != nil {
		clierrors.Fprint(cmd.ErrOrStderr(), err)
	}
	if cfg.Output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", strings.Join(local, ", "))
	}

	return w.Run(ctx, func(ctx context.Context) error {
		if err := render(ctx); err != nil {
			clierrors.Fprint(cmd.ErrOrStderr(), err)
		}
		return nil
	})
}
