package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps lowercased category names to their terminal styling.
var categoryStyles = map[string]CategoryStyle{
	"added":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"changed":    {Color: color.New(color.FgBlue), Icon: "~"},
	"deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
	"removed":    {Color: color.New(color.FgRed), Icon: "✗"},
	"fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

var defaultStyle = CategoryStyle{Color: color.New(color.FgCyan), Icon: "•"}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatSummary writes a terminal overview of releases: one header per
// release, then per configured category the commit count and issue titles.
// The renderer's unreleased label and category order are used.
func FormatSummary(releases []Release, r *Renderer, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, rel := range releases {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeReleaseHeader(r.DisplayName(rel), rel.Date, w, opts); err != nil {
			return fmt.Errorf("formatting release %s: %w", rel.Name, err)
		}

		groups := nonEmptyCategories(r.GroupByCategory(rel.Commits))
		if len(groups) == 0 {
			if _, err := fmt.Fprintln(w, "  (nothing to render)"); err != nil {
				return err
			}
			continue
		}
		for _, g := range groups {
			if err := writeCategorySection(g, w, opts, width); err != nil {
				return fmt.Errorf("formatting release %s: %w", rel.Name, err)
			}
		}
	}

	return nil
}

// writeReleaseHeader writes the release header line.
func writeReleaseHeader(title, date string, w io.Writer, opts FormatOptions) error {
	header := title
	if date != "" {
		header = fmt.Sprintf("%s (%s)", title, date)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeCategorySection writes a category header and one line per issue.
func writeCategorySection(g CategoryInfo, w io.Writer, opts FormatOptions, width int) error {
	style := styleFor(g.Name)
	label := fmt.Sprintf("%s (%d)", g.Name, len(g.Commits))

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", label); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(label)); err != nil {
			return err
		}
	}

	for _, c := range g.Commits {
		if err := writeCommit(c, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeCommit writes the issue title of a commit with optional wrapping.
func writeCommit(c Commit, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	const prefix = "  - "

	text := "(no linked issue)"
	if c.GitHubIssue != nil {
		text = c.GitHubIssue.Title
		if n, ok := c.GitHubIssue.IssueNumber(); ok {
			text = fmt.Sprintf("#%d %s", n, text)
		}
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")
	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// FormatWarning returns a one-line lint warning, truncated for terminals.
func FormatWarning(warn Warning, opts FormatOptions) string {
	text := truncateText(warn.String(), 100)
	if opts.Plain {
		return "warning: " + text
	}
	yellow := color.New(color.FgYellow).SprintFunc()
	return yellow("⚠") + " " + text
}

// styleFor returns the style of a category, matched case-insensitively.
func styleFor(category string) CategoryStyle {
	if style, ok := categoryStyles[strings.ToLower(category)]; ok {
		return style
	}
	return defaultStyle
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Break at the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
