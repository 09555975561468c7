package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// closingRefPattern matches titles that start with a closing keyword followed
// by an issue reference, e.g. "Fixes #42" or "resolved T7".
// Group 3 captures the issue id.
var closingRefPattern = regexp.MustCompile(`(?i)^(fix|fixes|fixed|close|closes|closed|resolve|resolves|resolved) (T|#)(\d+)`)

// RenderContribution formats a commit as a single contribution line.
// It reports false when the commit has no linked issue.
func (r *Renderer) RenderContribution(c Commit) (string, bool) {
	issue := c.GitHubIssue
	if issue == nil {
		return "", false
	}

	var b strings.Builder
	if number, ok := issue.IssueNumber(); ok {
		if prURL := issue.PullRequestURL(); prURL != "" {
			fmt.Fprintf(&b, "[#%d](%s) ", number, prURL)
		}
	}

	b.WriteString(RewriteClosingReference(issue.Title, r.opts.BaseIssueURL))
	fmt.Fprintf(&b, " ([@%s](%s))", issue.User.Login, issue.User.HTMLURL)

	return b.String(), true
}

// RenderContributionList renders commits as a Markdown bullet list.
// Each line is prefixed with prefix followed by "* ". Commits without a
// linked issue are skipped.
func (r *Renderer) RenderContributionList(commits []Commit, prefix string) string {
	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		line, ok := r.RenderContribution(c)
		if !ok {
			continue
		}
		lines = append(lines, prefix+"* "+line)
	}
	return strings.Join(lines, "\n")
}

// RewriteClosingReference replaces a leading "fixes #N" style reference in
// title with "Closes [#N](<baseIssueURL>N)". Only the first match is
// rewritten; titles without a closing reference are returned unchanged.
func RewriteClosingReference(title, baseIssueURL string) string {
	loc := closingRefPattern.FindStringSubmatchIndex(title)
	if loc == nil {
		return title
	}

	id := title[loc[6]:loc[7]]
	return "Closes [#" + id + "](" + baseIssueURL + id + ")" + title[loc[1]:]
}
