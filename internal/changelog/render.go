package changelog

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// releaseSeparator joins rendered release blocks in the final document.
const releaseSeparator = "\n\n\n"

// Options configures a Renderer.
type Options struct {
	// Categories lists the category names to render, in section order.
	Categories []string
	// BaseIssueURL prefixes issue numbers in rewritten closing references,
	// e.g. "https://github.com/owner/repo/issues/".
	BaseIssueURL string
	// UnreleasedName is the heading shown for the "unreleased" release.
	UnreleasedName string
}

// Renderer turns releases into a Markdown changelog document.
// A Renderer only holds its options and is safe for concurrent use.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer. The options are copied, so later changes
// to the caller's slice do not affect rendering.
func NewRenderer(opts Options) *Renderer {
	opts.Categories = slices.Clone(opts.Categories)
	return &Renderer{opts: opts}
}

// Options returns a copy of the renderer configuration.
func (r *Renderer) Options() Options {
	opts := r.opts
	opts.Categories = slices.Clone(r.opts.Categories)
	return opts
}

// RenderDocument renders every release and joins the non-empty blocks.
// Releases without a commit in any configured category are left out.
// The result is empty when no release produced output.
//
// The function is idempotent and never modifies its input.
func (r *Renderer) RenderDocument(releases []Release) string {
	blocks := make([]string, 0, len(releases))
	for _, rel := range releases {
		if block := r.RenderRelease(rel); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, releaseSeparator)
}

// Render writes the document for releases to w.
func (r *Renderer) Render(w io.Writer, releases []Release) error {
	if _, err := io.WriteString(w, r.RenderDocument(releases)); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// RenderRelease renders a single release block: the heading, one section per
// non-empty category and, when any issue lists security test targets, the
// target appendix. It returns "" when no configured category has a commit.
func (r *Renderer) RenderRelease(rel Release) string {
	categories := nonEmptyCategories(r.GroupByCategory(rel.Commits))
	if len(categories) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(r.releaseHeading(rel))

	var targets SecurityTestTarget
	for _, cat := range categories {
		b.WriteString("\n\n#### ")
		b.WriteString(cat.Name)

		targets.Merge(ExtractSecurityTargets(cat.Commits))

		if list := r.RenderContributionList(cat.Commits, ""); list != "" {
			b.WriteString("\n\n")
			b.WriteString(list)
		}
	}

	if !targets.IsEmpty() {
		b.WriteString("\n\n")
		b.WriteString(targets.Render())
	}

	return b.String()
}

// DisplayName returns the heading title of a release.
func (r *Renderer) DisplayName(rel Release) string {
	if rel.IsUnreleased() {
		return r.opts.UnreleasedName
	}
	return rel.Name
}

// releaseHeading formats the level-2 heading line of a release.
func (r *Renderer) releaseHeading(rel Release) string {
	title := r.DisplayName(rel)
	if rel.Date == "" {
		return "## " + title
	}
	return fmt.Sprintf("## %s - %s", title, rel.Date)
}

// GroupByCategory partitions commits into one CategoryInfo per configured
// category, in configured order. A commit appears under every category it
// is tagged with; commits matching no configured category are dropped.
func (r *Renderer) GroupByCategory(commits []Commit) []CategoryInfo {
	groups := make([]CategoryInfo, 0, len(r.opts.Categories))
	for _, name := range r.opts.Categories {
		info := CategoryInfo{Name: name}
		for _, c := range commits {
			if c.HasCategory(name) {
				info.Commits = append(info.Commits, c)
			}
		}
		groups = append(groups, info)
	}
	return groups
}

// nonEmptyCategories keeps the categories that have at least one commit.
func nonEmptyCategories(groups []CategoryInfo) []CategoryInfo {
	var kept []CategoryInfo
	for _, g := range groups {
		if len(g.Commits) > 0 {
			kept = append(kept, g)
		}
	}
	return kept
}
