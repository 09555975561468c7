package changelog

import (
	"slices"
	"strings"
)

// SecurityTargetHeader is the comma-joined header of the issue-body table
// that lists security test targets (columns: type, target).
const SecurityTargetHeader = "種別,診断対象"

// Target type tags recognised in the first column of the targets table.
const (
	TargetURL          = "URL"
	TargetMutation     = "Mutation"
	TargetQuery        = "Query"
	TargetSubscription = "Subscription"
)

const (
	securityTargetTitle = "#### 脆弱性診断対象"
	securityURLTitle    = "##### URL"
	securityAPITitle    = "##### API"
)

// SecurityTestTarget collects the URLs and API operations listed for
// security testing. Entries keep extraction order and may repeat until the
// list is rendered.
type SecurityTestTarget struct {
	URLs []string
	APIs []string
}

// ExtractSecurityTargets scans the parsed issue bodies of commits for the
// security targets table. Rows are collected in commit order, then row
// order. Rows with an empty target or an unknown type are skipped.
func ExtractSecurityTargets(commits []Commit) SecurityTestTarget {
	var targets SecurityTestTarget
	for _, c := range commits {
		if c.GitHubIssue == nil {
			continue
		}
		for _, block := range c.GitHubIssue.ParsedBody {
			table, ok := block.Table()
			if !ok || strings.Join(table.Header, ",") != SecurityTargetHeader {
				continue
			}
			for _, row := range table.Cells {
				targets.addRow(row)
			}
		}
	}
	return targets
}

// addRow records a single table row.
func (t *SecurityTestTarget) addRow(row []string) {
	kind := cell(row, 0)
	name := cell(row, 1)
	if name == "" {
		return
	}

	switch kind {
	case TargetURL:
		t.URLs = append(t.URLs, name)
	case TargetMutation, TargetQuery, TargetSubscription:
		t.APIs = append(t.APIs, "("+kind+") "+name)
	}
}

// cell returns row[i], or "" when the row is too short.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// Merge appends the entries of other to t.
func (t *SecurityTestTarget) Merge(other SecurityTestTarget) {
	t.URLs = append(t.URLs, other.URLs...)
	t.APIs = append(t.APIs, other.APIs...)
}

// IsEmpty returns true if no URL or API target has been collected.
func (t SecurityTestTarget) IsEmpty() bool {
	return len(t.URLs) == 0 && len(t.APIs) == 0
}

// Render formats the targets as an appendix section. Each subsection lists
// distinct entries in lexicographic order and is omitted when empty.
func (t SecurityTestTarget) Render() string {
	sections := []string{securityTargetTitle}
	if urls := uniqueSorted(t.URLs); len(urls) > 0 {
		sections = append(sections, securityURLTitle, bulletList(urls))
	}
	if apis := uniqueSorted(t.APIs); len(apis) > 0 {
		sections = append(sections, securityAPITitle, bulletList(apis))
	}
	return strings.Join(sections, "\n\n")
}

// uniqueSorted drops repeated entries, keeping the first occurrence, and
// sorts the result.
func uniqueSorted(entries []string) []string {
	seen := make(map[string]bool, len(entries))
	unique := make([]string, 0, len(entries))
	for _, e := range entries {
		if seen[e] {
			continue
		}
		seen[e] = true
		unique = append(unique, e)
	}
	slices.Sort(unique)
	return unique
}

func bulletList(entries []string) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = "* " + e
	}
	return strings.Join(lines, "\n")
}
